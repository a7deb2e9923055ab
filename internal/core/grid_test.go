package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLatticeRejectsEmptyDimensions(t *testing.T) {
	assert.Panics(t, func() { NewLattice[bool](0, 4) })
	assert.Panics(t, func() { NewLattice[float64](3, 0) })
	assert.Panics(t, func() { NewLattice[bool](-1, -1) })
}

func TestInitSetsEveryCell(t *testing.T) {
	l := NewLattice[bool](3, 5)
	l.Init(true)
	for r := 0; r < l.Rows(); r++ {
		for c := 0; c < l.Cols(); c++ {
			require.True(t, l.At(r, c), "cell (%d,%d)", r, c)
		}
	}

	f := NewLatticeOf(2, 2, 0.25)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, f.Cells())
}

func TestInitRandDeterministic(t *testing.T) {
	a := NewLattice[bool](16, 16)
	b := NewLattice[bool](16, 16)
	a.SetSeed(7)
	b.SetSeed(7)
	a.InitRand(false, false)
	b.InitRand(false, false)
	require.True(t, a.Equal(b), "equal seeds must give equal spins")

	trues := 0
	for _, v := range a.Cells() {
		if v {
			trues++
		}
	}
	assert.Greater(t, trues, 0)
	assert.Less(t, trues, a.Len())

	b.SetSeed(8)
	b.InitRand(false, false)
	assert.False(t, a.Equal(b), "different seeds should give different spins")
}

func TestInitRandFloatRange(t *testing.T) {
	l := NewLattice[float64](10, 10)
	l.SetSeed(3)
	l.InitRand(-2, 5)
	for i, v := range l.Cells() {
		require.GreaterOrEqual(t, v, -2.0, "cell %d", i)
		require.Less(t, v, 5.0, "cell %d", i)
	}
}

func TestFlattenRowMajor(t *testing.T) {
	l := NewLattice[bool](2, 3)
	l.Set(0, 1, true)
	l.Set(1, 2, true)
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 1}, l.Flatten())

	f := NewLattice[float64](2, 2)
	f.Set(0, 0, 1.5)
	f.Set(1, 0, -3)
	assert.Equal(t, []float64{1.5, 0, -3, 0}, f.Flatten())
}

func TestSetMirroredBoundaries(t *testing.T) {
	const rows, cols = 5, 4
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			l := NewLattice[bool](rows, cols)
			l.SetMirrored(r, c, true)

			want := map[[2]int]bool{{r, c}: true}
			switch r {
			case 0:
				want[[2]int{rows - 1, c}] = true
			case rows - 1:
				want[[2]int{0, c}] = true
			}
			switch c {
			case 0:
				want[[2]int{r, cols - 1}] = true
			case cols - 1:
				want[[2]int{r, 0}] = true
			}

			for rr := 0; rr < rows; rr++ {
				for cc := 0; cc < cols; cc++ {
					assert.Equal(t, want[[2]int{rr, cc}], l.At(rr, cc),
						"write at (%d,%d): cell (%d,%d)", r, c, rr, cc)
				}
			}
		}
	}
}

func TestCloneAndCopyFrom(t *testing.T) {
	l := NewLattice[bool](3, 3)
	l.Set(1, 1, true)

	clone := l.Clone()
	require.True(t, clone.Equal(l))
	clone.Set(0, 0, true)
	assert.False(t, l.At(0, 0), "clone must not share cells")

	l.CopyFrom(clone)
	assert.True(t, slices.Equal(l.Cells(), clone.Cells()))

	assert.Panics(t, func() { l.CopyFrom(NewLattice[bool](2, 3)) })
	assert.True(t, l.SameShape(clone))
	assert.False(t, l.SameShape(NewLattice[bool](3, 2)))
}

func TestCloneReplaysGenerator(t *testing.T) {
	l := NewLattice[float64](8, 8)
	l.SetSeed(7)
	clone := l.Clone()

	l.InitRand(-1, 1)
	clone.InitRand(-1, 1)
	assert.True(t, l.Equal(clone), "a clone continues the source's random sequence")

	clone.InitRand(-1, 1)
	assert.False(t, l.Equal(clone), "after cloning the generators advance independently")
}
