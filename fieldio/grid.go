package fieldio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyGrid is returned when the input holds no values.
	ErrEmptyGrid = errors.New("fieldio: empty grid")
	// ErrRaggedRows is returned when rows have different lengths.
	ErrRaggedRows = errors.New("fieldio: rows have different lengths")
	// ErrEmptyCell is returned for a missing value between delimiters.
	ErrEmptyCell = errors.New("fieldio: empty cell")
	// ErrNotAxis is returned by ReadAxis for inputs with more than one row
	// and more than one column.
	ErrNotAxis = errors.New("fieldio: axis must be a single row or column")
)

func isSeparator(r rune) bool { return r == ',' || r == ';' }

// splitCells splits a line on commas and semicolons when it has any, and on
// runs of whitespace otherwise. It returns the 1-based position of the
// first empty cell, or 0.
func splitCells(text string) ([]string, int) {
	if !strings.ContainsFunc(text, isSeparator) {
		return strings.Fields(text), 0
	}

	cells := make([]string, 0, 16)
	for {
		i := strings.IndexFunc(text, isSeparator)
		cell := text
		if i >= 0 {
			cell = text[:i]
		}
		cell = strings.TrimFunc(cell, unicode.IsSpace)
		if cell == "" {
			return nil, len(cells) + 1
		}
		cells = append(cells, cell)
		if i < 0 {
			return cells, 0
		}
		text = text[i+1:]
	}
}

// ReadGrid parses a delimited text grid.
func ReadGrid(r io.Reader) (*mat.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		data []float64
		cols int
		rows int
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields, empty := splitCells(text)
		if empty > 0 {
			return nil, fmt.Errorf("%w: line %d cell %d", ErrEmptyCell, line, empty)
		}
		if rows == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrRaggedRows, line, len(fields), cols)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("fieldio: line %d: %w", line, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyGrid
	}
	return mat.NewDense(rows, cols, data), nil
}

// LoadGrid reads a grid file.
func LoadGrid(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteGrid writes m one row per line with values joined by delim. Values
// are formatted with the shortest representation that parses back exactly.
func WriteGrid(w io.Writer, m mat.Matrix, delim string) error {
	bw := bufio.NewWriter(w)
	r, c := m.Dims()
	buf := make([]byte, 0, 32)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteString(delim)
			}
			buf = strconv.AppendFloat(buf[:0], m.At(i, j), 'g', -1, 64)
			bw.Write(buf)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveGrid writes m to path, comma separated for ".csv" files and space
// separated otherwise. Parent directories are created as needed.
func SaveGrid(path string, m mat.Matrix) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	delim := " "
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		delim = ","
	}
	if err := WriteGrid(f, m, delim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Axis returns n points evenly spaced over [0, extent].
func Axis(n int, extent float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	out := floats.Span(make([]float64, n), 0, extent)
	out[n-1] = extent
	return out
}

// ReadAxis parses a single row or column of values.
func ReadAxis(r io.Reader) ([]float64, error) {
	m, err := ReadGrid(r)
	if err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	switch {
	case rows == 1:
		return mat.Row(nil, 0, m), nil
	case cols == 1:
		return mat.Col(nil, 0, m), nil
	default:
		return nil, fmt.Errorf("%w: got %dx%d", ErrNotAxis, rows, cols)
	}
}

// LoadAxis reads an axis file.
func LoadAxis(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := ReadAxis(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
