// Package table reads the whitespace-delimited numeric tables written by the
// NEP trainer (energy_*.out, force_*.out, stress_*.out).
//
// Files have no header row. Blank lines and lines starting with '#' are
// skipped. Every remaining line is one row and all rows must have the same
// number of columns. Files ending in .gz or .zst are decompressed on the fly.
package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Table is a row-major numeric matrix.
type Table [][]float64

func (t Table) Rows() int { return len(t) }

// Width returns the column count of the first row, or 0 for an empty table.
func (t Table) Width() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Column copies column i into a new slice.
func (t Table) Column(i int) []float64 {
	out := make([]float64, len(t))
	for r, row := range t {
		out[r] = row[i]
	}
	return out
}

// Columns flattens columns [lo, hi) in row-major order.
func (t Table) Columns(lo, hi int) []float64 {
	out := make([]float64, 0, len(t)*(hi-lo))
	for _, row := range t {
		out = append(out, row[lo:hi]...)
	}
	return out
}

// Require reports ErrTooNarrow if the table cannot be sliced to width columns.
// Wider tables are accepted; the extra columns are ignored by callers.
func (t Table) Require(width int) error {
	if len(t) > 0 && t.Width() < width {
		return &ShapeError{Want: width, Got: t.Width(), Wrapped: ErrTooNarrow}
	}
	return nil
}

func Parse(r io.Reader) (Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	t := Table{}
	width := -1
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if width < 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, &ParseError{
				Line:    line,
				Token:   fmt.Sprintf("%d columns, want %d", len(fields), width),
				Wrapped: ErrRagged,
			}
		}

		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Token: f, Wrapped: ErrMalformed}
			}
			row[i] = v
		}
		t = append(t, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	t, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
