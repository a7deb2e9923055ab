package core

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Cell constrains lattice values to spins or numeric samples.
type Cell interface {
	bool | float64
}

// Lattice stores a fixed rows x cols grid of cell values in row-major order.
// The dimensions never change after construction.
type Lattice[T Cell] struct {
	rows, cols int
	data       []T
	rng        *RNG
}

// NewLattice allocates a lattice with the given dimensions. Non-positive
// dimensions are a programming error and panic.
func NewLattice[T Cell](rows, cols int) *Lattice[T] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("core: invalid lattice size %dx%d", rows, cols))
	}
	return &Lattice[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
		rng:  NewRNG(rand.Int64()),
	}
}

// NewLatticeOf allocates a lattice and sets every cell to value.
func NewLatticeOf[T Cell](rows, cols int, value T) *Lattice[T] {
	l := NewLattice[T](rows, cols)
	l.Init(value)
	return l
}

// Rows returns the number of rows.
func (l *Lattice[T]) Rows() int { return l.rows }

// Cols returns the number of columns.
func (l *Lattice[T]) Cols() int { return l.cols }

// Len returns rows*cols.
func (l *Lattice[T]) Len() int { return len(l.data) }

// Size reports the lattice dimensions as width (cols) by height (rows).
func (l *Lattice[T]) Size() Size { return Size{W: l.cols, H: l.rows} }

// Cells exposes the backing slice so callers can read/write values directly.
func (l *Lattice[T]) Cells() []T { return l.data }

// Index returns the linear slice index for (row, col).
func (l *Lattice[T]) Index(row, col int) int { return row*l.cols + col }

// At returns the value stored at (row, col).
func (l *Lattice[T]) At(row, col int) T { return l.data[row*l.cols+col] }

// Set stores value at (row, col).
func (l *Lattice[T]) Set(row, col int, value T) { l.data[row*l.cols+col] = value }

// SetMirrored stores value at (row, col) and copies it onto the opposite edge
// of the same column when the row is a boundary row, and onto the opposite
// edge of the same row when the column is a boundary column. The first and
// last rows (and columns) are kept as images of each other this way, which
// is how the update rules realize periodic boundaries.
func (l *Lattice[T]) SetMirrored(row, col int, value T) {
	l.Set(row, col, value)

	lastRow := l.rows - 1
	if row == 0 {
		l.Set(lastRow, col, value)
	} else if row == lastRow {
		l.Set(0, col, value)
	}

	lastCol := l.cols - 1
	if col == 0 {
		l.Set(row, lastCol, value)
	} else if col == lastCol {
		l.Set(row, 0, value)
	}
}

// Init fills every cell with value.
func (l *Lattice[T]) Init(value T) {
	for i := range l.data {
		l.data[i] = value
	}
}

// InitRand randomizes every cell. Spin lattices pick true or false with equal
// probability and ignore the bounds; numeric lattices draw from [min, max).
func (l *Lattice[T]) InitRand(min, max T) {
	switch cells := any(l.data).(type) {
	case []bool:
		for i := range cells {
			cells[i] = l.rng.IntN(2) == 0
		}
	case []float64:
		lo, hi := any(min).(float64), any(max).(float64)
		for i := range cells {
			cells[i] = l.rng.Uniform(lo, hi)
		}
	}
}

// SetSeed reseeds the generator used by InitRand.
func (l *Lattice[T]) SetSeed(seed int64) { l.rng.Seed(seed) }

// Flatten returns the cells as float64 values in row-major order. Spins map
// to 1 (true) and 0 (false).
func (l *Lattice[T]) Flatten() []float64 {
	out := make([]float64, len(l.data))
	switch cells := any(l.data).(type) {
	case []bool:
		for i, v := range cells {
			if v {
				out[i] = 1
			}
		}
	case []float64:
		copy(out, cells)
	}
	return out
}

// Clone returns a deep copy of the cells and of the generator state, so
// InitRand on the copy draws what the receiver would have drawn next.
func (l *Lattice[T]) Clone() *Lattice[T] {
	return &Lattice[T]{
		rows: l.rows,
		cols: l.cols,
		data: slices.Clone(l.data),
		rng:  l.rng.Clone(),
	}
}

// CopyFrom overwrites the receiver's cells with src's. Both lattices must
// share the same dimensions.
func (l *Lattice[T]) CopyFrom(src *Lattice[T]) {
	if !l.SameShape(src) {
		panic(fmt.Sprintf("core: copy from %dx%d into %dx%d lattice", src.rows, src.cols, l.rows, l.cols))
	}
	copy(l.data, src.data)
}

// SameShape reports whether other has the receiver's dimensions.
func (l *Lattice[T]) SameShape(other *Lattice[T]) bool {
	return l.rows == other.rows && l.cols == other.cols
}

// Equal reports whether both lattices have identical dimensions and cells.
func (l *Lattice[T]) Equal(other *Lattice[T]) bool {
	return l.SameShape(other) && slices.Equal(l.data, other.data)
}
