package window

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Type identifies a built-in 2-D apodization window.
type Type int

const (
	TypeNone Type = iota
	TypeHamming
	TypeTrapezoid
	TypeHann
	TypeBlackman
	TypeTukey
	TypeKaiser
	TypeWelch
	TypeExactBlackman
	TypeBlackmanHarris3Term
	TypeBlackmanHarris4Term
	TypeBlackmanNuttall
	TypeNuttallCTD
	TypeNuttallCFD
	TypeFlatTop
	TypeAlbrecht2Term
	TypeTriangle
	TypeCosine
	TypeLanczos
	TypeGauss
	// TypeFreeCosine takes its cosine-sum coefficients from the descriptor.
	TypeFreeCosine
	// TypeCustom marks windows added through [Registry.Register].
	TypeCustom
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeHamming:
		return "hamming"
	case TypeTrapezoid:
		return "trapezoid"
	case TypeHann:
		return "hann"
	case TypeBlackman:
		return "blackman"
	case TypeTukey:
		return "tukey"
	case TypeKaiser:
		return "kaiser"
	case TypeWelch:
		return "welch"
	case TypeExactBlackman:
		return "exact-blackman"
	case TypeBlackmanHarris3Term:
		return "blackman-harris-3t"
	case TypeBlackmanHarris4Term:
		return "blackman-harris-4t"
	case TypeBlackmanNuttall:
		return "blackman-nuttall"
	case TypeNuttallCTD:
		return "nuttall-ctd"
	case TypeNuttallCFD:
		return "nuttall-cfd"
	case TypeFlatTop:
		return "flat-top"
	case TypeAlbrecht2Term:
		return "albrecht-2t"
	case TypeTriangle:
		return "triangle"
	case TypeCosine:
		return "cosine"
	case TypeLanczos:
		return "lanczos"
	case TypeGauss:
		return "gauss"
	case TypeFreeCosine:
		return "free-cosine"
	case TypeCustom:
		return "custom"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Descriptor selects a registered window and its parameters.
type Descriptor struct {
	Name   string
	Params []float64
}

// None is the default descriptor: unity weights.
func None() Descriptor { return Descriptor{Name: "none"} }

// Generator maps two coordinate axes to a weight grid of shape (len(y), len(x)).
type Generator interface {
	Weights(x, y, params []float64) (*mat.Dense, error)
}

// GeneratorFunc adapts a function to [Generator].
type GeneratorFunc func(x, y, params []float64) (*mat.Dense, error)

// Weights calls f.
func (f GeneratorFunc) Weights(x, y, params []float64) (*mat.Dense, error) {
	return f(x, y, params)
}

var (
	hannCoeffs            = []float64{0.5, -0.5}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	exactBlackmanCoeffs   = []float64{7938.0 / 18608, -9240.0 / 18608, 1430.0 / 18608}
	blackmanHarris3Coeffs = []float64{0.42323, -0.49755, 0.07922}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	blackmanNuttallCoeffs = []float64{0.3635819, -0.4891775, 0.1365995, -0.0106411}
	nuttallCTDCoeffs      = []float64{0.338946, -0.481973, 0.161054, -0.018027}
	nuttallCFDCoeffs      = []float64{0.355768, -0.487396, 0.144232, -0.012604}
	flatTopCoeffs         = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
	albrecht2Coeffs       = []float64{0.5383553946707251, -0.4616446053292749}

	defaultHamming   = []float64{0.53836, -0.46164, 0.53836, -0.46164}
	defaultTrapezoid = []float64{0.1, 0.1}
)

const (
	defaultTukeyAlpha   = 0.5
	defaultKaiserBeta   = 8.6
	defaultGaussAlpha   = 2.5
	defaultLanczosAlpha = 1.0
)

// Separable builds w[iy][ix] = wx(u[ix]) * wy(v[iy]) where u and v are the
// axes mapped onto [0,1].
func Separable(x, y []float64, wx, wy func(u float64) float64) (*mat.Dense, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, errEmptyAxis
	}

	px := profile(normalizedAxis(x), wx)
	py := profile(normalizedAxis(y), wy)

	out := mat.NewDense(len(y), len(x), nil)
	for iy, s := range py {
		vecmath.ScaleBlock(out.RawRowView(iy), px, s)
	}

	return out, nil
}

func builtin(t Type) Generator {
	switch t {
	case TypeNone:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			if err := validateArity("none", params, 0); err != nil {
				return nil, err
			}
			return Separable(x, y, unity, unity)
		})
	case TypeHamming:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			if len(params) == 0 {
				params = defaultHamming
			}
			if err := validateArity("hamming", params, 2, 4); err != nil {
				return nil, err
			}
			bx, by := params[0:2], params[0:2]
			if len(params) == 4 {
				by = params[2:4]
			}
			return Separable(x, y, cosineTerms(bx), cosineTerms(by))
		})
	case TypeTrapezoid:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			if len(params) == 0 {
				params = defaultTrapezoid
			}
			if err := validateArity("trapezoid", params, 1, 2); err != nil {
				return nil, err
			}
			fx, fy := params[0], params[len(params)-1]
			if err := validateFraction("trapezoid", fx); err != nil {
				return nil, err
			}
			if err := validateFraction("trapezoid", fy); err != nil {
				return nil, err
			}
			return Separable(x, y, trapezoid(fx), trapezoid(fy))
		})
	case TypeHann:
		return fixedCosine("hann", hannCoeffs)
	case TypeBlackman:
		return fixedCosine("blackman", blackmanCoeffs)
	case TypeTukey:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			alpha := defaultTukeyAlpha
			if err := validateArity("tukey", params, 0, 1); err != nil {
				return nil, err
			}
			if len(params) == 1 {
				alpha = params[0]
			}
			if err := validateTukey(alpha); err != nil {
				return nil, err
			}
			f := func(u float64) float64 { return tukeyAt(u, alpha) }
			return Separable(x, y, f, f)
		})
	case TypeKaiser:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			beta := defaultKaiserBeta
			if err := validateArity("kaiser", params, 0, 1); err != nil {
				return nil, err
			}
			if len(params) == 1 {
				beta = params[0]
			}
			if err := validateKaiser(beta); err != nil {
				return nil, err
			}
			f := func(u float64) float64 { return kaiserAt(u, beta) }
			return Separable(x, y, f, f)
		})
	case TypeWelch:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			if err := validateArity("welch", params, 0); err != nil {
				return nil, err
			}
			return Separable(x, y, welchAt, welchAt)
		})
	case TypeExactBlackman:
		return fixedCosine("exact-blackman", exactBlackmanCoeffs)
	case TypeBlackmanHarris3Term:
		return fixedCosine("blackman-harris-3t", blackmanHarris3Coeffs)
	case TypeBlackmanHarris4Term:
		return fixedCosine("blackman-harris-4t", blackmanHarris4Coeffs)
	case TypeBlackmanNuttall:
		return fixedCosine("blackman-nuttall", blackmanNuttallCoeffs)
	case TypeNuttallCTD:
		return fixedCosine("nuttall-ctd", nuttallCTDCoeffs)
	case TypeNuttallCFD:
		return fixedCosine("nuttall-cfd", nuttallCFDCoeffs)
	case TypeFlatTop:
		return fixedCosine("flat-top", flatTopCoeffs)
	case TypeAlbrecht2Term:
		return fixedCosine("albrecht-2t", albrecht2Coeffs)
	case TypeTriangle:
		return fixedProfile("triangle", triangleAt)
	case TypeCosine:
		return fixedProfile("cosine", cosineAt)
	case TypeLanczos:
		return shaped("lanczos", defaultLanczosAlpha, lanczosAt)
	case TypeGauss:
		return shaped("gauss", defaultGaussAlpha, gaussAt)
	case TypeFreeCosine:
		return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
			if len(params) == 0 {
				return Separable(x, y, unity, unity)
			}
			if err := validateFinite("free-cosine", params); err != nil {
				return nil, err
			}
			f := cosineTerms(params)
			return Separable(x, y, f, f)
		})
	default:
		return nil
	}
}

func fixedCosine(name string, coeffs []float64) Generator {
	return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
		if err := validateArity(name, params, 0); err != nil {
			return nil, err
		}
		f := cosineTerms(coeffs)
		return Separable(x, y, f, f)
	})
}

func fixedProfile(name string, f func(float64) float64) Generator {
	return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
		if err := validateArity(name, params, 0); err != nil {
			return nil, err
		}
		return Separable(x, y, f, f)
	})
}

// shaped wraps a profile with one optional non-negative shape parameter.
func shaped(name string, def float64, at func(u, alpha float64) float64) Generator {
	return GeneratorFunc(func(x, y, params []float64) (*mat.Dense, error) {
		alpha := def
		if err := validateArity(name, params, 0, 1); err != nil {
			return nil, err
		}
		if len(params) == 1 {
			alpha = params[0]
		}
		if err := validateShape(name, alpha); err != nil {
			return nil, err
		}
		f := func(u float64) float64 { return at(u, alpha) }
		return Separable(x, y, f, f)
	})
}

func normalizedAxis(axis []float64) []float64 {
	out := make([]float64, len(axis))
	extent := axis[len(axis)-1] - axis[0]
	if len(axis) == 1 || extent == 0 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	for i, v := range axis {
		out[i] = (v - axis[0]) / extent
	}
	return out
}

func profile(u []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(u))
	for i, v := range u {
		out[i] = f(clamp01(v))
	}
	return out
}

func clamp01(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

func unity(float64) float64 { return 1 }

func cosineTerms(coeffs []float64) func(float64) float64 {
	c := append([]float64(nil), coeffs...)
	return func(u float64) float64 {
		phase := 2 * math.Pi * u
		sum := 0.0
		for k, a := range c {
			sum += a * math.Cos(float64(k)*phase)
		}
		return sum
	}
}

func trapezoid(frac float64) func(float64) float64 {
	return func(u float64) float64 {
		if frac <= 0 {
			return 1
		}
		switch {
		case u < frac:
			return u / frac
		case u > 1-frac:
			return (1 - u) / frac
		default:
			return 1
		}
	}
}

func welchAt(u float64) float64 {
	d := u - 0.5
	return 1 - 4*d*d
}

func triangleAt(u float64) float64 {
	return 1 - math.Abs(2*u-1)
}

func cosineAt(u float64) float64 {
	return math.Sin(math.Pi * u)
}

func lanczosAt(u, alpha float64) float64 {
	return sinc((2*u - 1) * alpha)
}

func gaussAt(u, alpha float64) float64 {
	v := (2*u - 1) * alpha
	return math.Exp(-math.Ln2 * v * v)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

func tukeyAt(u, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}
	if alpha >= 1 {
		return cosineTerms(hannCoeffs)(u)
	}

	a := alpha / 2
	switch {
	case u < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*u/alpha-1)))
	case u <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*u/alpha-2/alpha+1)))
	}
}

func kaiserAt(u, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*u - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
