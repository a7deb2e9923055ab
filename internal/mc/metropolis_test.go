package mc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

// scriptedModel flips a fixed site and delegates energy and acceptance.
type scriptedModel struct {
	energy  func(*core.Lattice[bool]) float64
	accept  func(prev, next float64) bool
	row     int
	col     int
	accepts [][2]float64
}

func (s *scriptedModel) Energy(l *core.Lattice[bool]) float64 { return s.energy(l) }

func (s *scriptedModel) ProposeAction(l *core.Lattice[bool]) {
	l.SetMirrored(s.row, s.col, !l.At(s.row, s.col))
}

func (s *scriptedModel) Accept(prev, next float64) bool {
	s.accepts = append(s.accepts, [2]float64{prev, next})
	return s.accept(prev, next)
}

func countUp(l *core.Lattice[bool]) float64 {
	n := 0.0
	for _, v := range l.Cells() {
		if v {
			n++
		}
	}
	return n
}

func TestMetropolisAlwaysAcceptsLowerEnergy(t *testing.T) {
	model := &scriptedModel{
		energy: func(l *core.Lattice[bool]) float64 { return -countUp(l) },
		accept: func(float64, float64) bool { return false },
		row:    1,
		col:    1,
	}
	rule := NewMetropolis[*core.Lattice[bool]](model)
	l := core.NewLattice[bool](3, 3)

	require.True(t, rule.Update(l))
	assert.True(t, l.At(1, 1))
	assert.Empty(t, model.accepts, "a strictly lower energy must not consult the acceptance test")

	// Flipping back raises the energy and the scripted test rejects it.
	require.False(t, rule.Update(l))
	assert.True(t, l.At(1, 1), "rejected proposals leave the state untouched")
	assert.Equal(t, [][2]float64{{-1, 0}}, model.accepts)
}

func TestMetropolisConsultsAcceptOnIncrease(t *testing.T) {
	model := &scriptedModel{
		energy: func(l *core.Lattice[bool]) float64 { return countUp(l) },
		accept: func(float64, float64) bool { return true },
	}
	rule := NewMetropolis[*core.Lattice[bool]](model)
	l := core.NewLattice[bool](3, 3)

	require.True(t, rule.Update(l))
	// (0,0) mirrors onto (2,0) and (0,2).
	assert.Equal(t, 3.0, countUp(l))
	assert.Equal(t, [][2]float64{{0, 3}}, model.accepts)
}

func TestMetropolisTwoByTwoScenario(t *testing.T) {
	params := ising.Params{N: 1, Z: 4, J: 1, T: 0.1, Kb: 1}
	model := ising.NewSeeded(params, 1)

	// Flipping (0,0) on an all-up 2x2 lattice also flips its mirrors (1,0)
	// and (0,1). Energy before: -J*1*(1+1) = -2. After: -J*(-1)*(-1-1) = -2.
	// The delta is zero, exp(0) = 1 and the proposal is always accepted.
	script := &scriptedModel{
		energy: model.Energy,
		accept: model.RandomAccept,
		row:    0,
		col:    0,
	}
	rule := NewMetropolis[*core.Lattice[bool]](script)
	l := core.NewLatticeOf(2, 2, true)

	require.Equal(t, -2.0, model.Energy(l))
	require.True(t, rule.Update(l))
	assert.Equal(t, [][2]float64{{-2, -2}}, script.accepts)
	assert.Equal(t, 1.0, model.AcceptanceProbability(0))
	assert.Equal(t, []bool{false, false, false, true}, l.Cells())
	assert.Equal(t, -2.0, model.Energy(l))

	// Flipping (1,1) instead mirrors onto (0,1) and (1,0): energy +2, a delta
	// of 4 and an acceptance probability of exp(-40).
	script.row, script.col = 1, 1
	l.Init(true)
	script.accepts = nil
	assert.False(t, rule.Update(l))
	assert.Equal(t, [][2]float64{{-2, 2}}, script.accepts)
	assert.InDelta(t, math.Exp(-40), model.AcceptanceProbability(4), 1e-30)
	assert.Equal(t, []bool{true, true, true, true}, l.Cells())
}

func TestMetropolisDeterministic(t *testing.T) {
	run := func() *core.Lattice[bool] {
		params := ising.DefaultParams()
		params.Z = 4
		params.T = 2.5
		model := ising.NewSeeded(params, 42)
		l := core.NewLattice[bool](12, 12)
		l.SetSeed(42)
		l.InitRand(false, false)
		NewMetropolis[*core.Lattice[bool]](model).Optimize(l, 5000)
		return l
	}
	a, b := run(), run()
	assert.True(t, a.Equal(b), "equal seeds and call counts must give identical lattices")
}

func TestMetropolisOptimizeRunsExactSteps(t *testing.T) {
	calls := 0
	model := &scriptedModel{
		energy: func(*core.Lattice[bool]) float64 { calls++; return 0 },
		accept: func(float64, float64) bool { return false },
	}
	rule := NewMetropolis[*core.Lattice[bool]](model)
	accepted := rule.Optimize(core.NewLattice[bool](4, 4), 37)
	assert.Equal(t, 0, accepted)
	assert.Equal(t, 74, calls, "each step evaluates the state and the candidate")
	assert.Equal(t, "metropolis", rule.Name())
}

func TestMetropolisAcceptsLatticesOfDifferentSizes(t *testing.T) {
	model := &scriptedModel{
		energy: func(l *core.Lattice[bool]) float64 { return countUp(l) },
		accept: func(float64, float64) bool { return false },
	}
	rule := NewMetropolis[*core.Lattice[bool]](model)

	small := core.NewLatticeOf(4, 4, true)
	require.True(t, rule.Update(small))
	assert.False(t, small.At(0, 0))

	large := core.NewLatticeOf(6, 6, true)
	require.NotPanics(t, func() { rule.Update(large) })
	assert.False(t, large.At(0, 0))
	assert.Equal(t, 6, large.Rows())

	require.NotPanics(t, func() { rule.Update(small) })
}
