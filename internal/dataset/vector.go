// Package dataset writes and reads the two-line vector text format used for
// labelled spin configurations, and generates such datasets by heat-bath
// sampling on either side of the critical temperature.
//
// The format is
//
//	rows,cols
//	v00,v01,...,v(rows-1)(cols-1),
//
// with every value followed by a comma and a terminating newline. Values are
// written with six significant digits.
package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Matrix is a row-major table of samples.
type Matrix [][]float64

// ErrMalformed is returned when a vector file cannot be parsed.
var ErrMalformed = errors.New("malformed vector data")

// Write encodes m. All rows must have the length of the first.
func Write(w io.Writer, m Matrix) error {
	if len(m) == 0 || len(m[0]) == 0 {
		return errors.New("write vector: empty matrix")
	}
	cols := len(m[0])
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(len(m)))
	bw.WriteByte(',')
	bw.WriteString(strconv.Itoa(cols))
	bw.WriteByte('\n')
	for i, row := range m {
		if len(row) != cols {
			return errors.Errorf("write vector: row %d has %d values, want %d", i, len(row), cols)
		}
		for _, v := range row {
			bw.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
			bw.WriteByte(',')
		}
	}
	bw.WriteByte('\n')
	return errors.Wrap(bw.Flush(), "write vector")
}

// Read decodes a matrix written by Write. Values beyond rows*cols are ignored.
func Read(r io.Reader) (Matrix, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && header == "" {
		return nil, errors.Wrap(ErrMalformed, "missing header")
	}
	dims := strings.Split(strings.TrimSpace(header), ",")
	if len(dims) < 2 {
		return nil, errors.Wrapf(ErrMalformed, "header %q", header)
	}
	rows, err := strconv.Atoi(dims[0])
	if err != nil || rows < 0 {
		return nil, errors.Wrapf(ErrMalformed, "rows %q", dims[0])
	}
	cols, err := strconv.Atoi(dims[1])
	if err != nil || cols < 0 {
		return nil, errors.Wrapf(ErrMalformed, "cols %q", dims[1])
	}

	body, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "read vector body")
	}
	fields := strings.Split(strings.TrimRight(body, "\r\n"), ",")
	// Only comma-terminated values count.
	fields = fields[:len(fields)-1]
	// Bound rows by the values present before multiplying so a forged
	// header can neither overflow nor force a large allocation.
	if rows > 0 && cols == 0 {
		return nil, errors.Wrapf(ErrMalformed, "header %q has no columns", strings.TrimSpace(header))
	}
	if cols > 0 && rows > len(fields)/cols {
		return nil, errors.Wrapf(ErrMalformed, "%d values, want %dx%d", len(fields), rows, cols)
	}

	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			s := fields[i*cols+j]
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "value %d %q", i*cols+j, s)
			}
			m[i][j] = v
		}
	}
	return m, nil
}

// WriteFile writes m to path, replacing any existing file.
func WriteFile(path string, m Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// ReadFile reads the matrix stored at path.
func ReadFile(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return m, nil
}
