// Package ising implements the 2D Ising model: its physical parameters, the
// energy of a spin configuration, the stochastic primitives used by the
// Metropolis rule and the mean-field free energy.
package ising

import (
	"math"
	"math/rand/v2"

	"ising-mc/internal/core"
)

// Params holds the physical parameters of the model.
type Params struct {
	N  int     // system size used by the mean-field free energy
	Z  int     // coordination number
	J  float64 // coupling strength
	T  float64 // temperature
	Kb float64 // Boltzmann constant
}

// DefaultParams returns the reference parameter set (N=1, z=1, J=1, T=0.1, kb=1).
func DefaultParams() Params {
	return Params{N: 1, Z: 1, J: 1, T: 0.1, Kb: 1}
}

// Model evaluates energies and acceptance probabilities for spin lattices.
// It owns its random generator but never owns a lattice.
type Model struct {
	Params Params
	rng    *core.RNG
}

// New returns a model with the given parameters and an entropy-seeded generator.
func New(p Params) *Model {
	return &Model{Params: p, rng: core.NewRNG(rand.Int64())}
}

// NewSeeded returns a model whose generator starts from seed.
func NewSeeded(p Params, seed int64) *Model {
	return &Model{Params: p, rng: core.NewRNG(seed)}
}

// SetSeed reseeds the generator used by RandomAction and RandomAccept.
func (m *Model) SetSeed(seed int64) { m.rng.Seed(seed) }

// SetTemperature updates T.
func (m *Model) SetTemperature(t float64) { m.Params.T = t }

// Tc returns the mean-field critical temperature z*J/kb.
func (m *Model) Tc() float64 {
	return float64(m.Params.Z) * m.Params.J / m.Params.Kb
}

// OnsagerTc returns the exact critical temperature of the square lattice,
// 2J / (kb ln(1+sqrt 2)).
func (m *Model) OnsagerTc() float64 {
	return 2 * m.Params.J / (m.Params.Kb * math.Log(math.Sqrt2+1))
}

// KbT returns kb*T.
func (m *Model) KbT() float64 { return m.Params.Kb * m.Params.T }

// FreeEnergy evaluates the mean-field free energy at magnetization m.
// m must lie strictly inside (-1, 1); the logarithms diverge at the ends and
// the value is not clamped.
func (m *Model) FreeEnergy(mag float64) float64 {
	p := m.Params
	n, z := float64(p.N), float64(p.Z)
	entropy := -(1+mag)*math.Log(1+mag) - (1-mag)*math.Log(1-mag)
	return -0.5*n*z*p.J*mag*mag - 0.5*n*p.Kb*p.T*entropy
}

// Spin maps a boolean cell to its physical value.
func Spin(b bool) float64 {
	if b {
		return 1
	}
	return -1
}

// Energy sums -J*s(r,c)*(s(r,c+1)+s(r+1,c)) over the interior range
// r < rows-1, c < cols-1. The last row and column do not wrap; periodicity
// comes from the mirrored boundary writes of the update rules instead. Only
// energy differences are meaningful.
func (m *Model) Energy(l *core.Lattice[bool]) float64 {
	rows, cols := l.Rows(), l.Cols()
	j := m.Params.J
	energy := 0.0
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			energy += -j * Spin(l.At(r, c)) * (Spin(l.At(r, c+1)) + Spin(l.At(r+1, c)))
		}
	}
	return energy
}

// RandomAction flips one uniformly chosen spin and mirrors it onto the
// opposite boundary when the site lies on an edge.
func (m *Model) RandomAction(l *core.Lattice[bool]) {
	row := m.rng.IntN(l.Rows())
	col := m.rng.IntN(l.Cols())
	l.SetMirrored(row, col, !l.At(row, col))
}

// RandomAccept draws u in [0, 1) and reports u < exp(-(next-prev)/kbT).
// Equal energies always accept, including at T = 0.
func (m *Model) RandomAccept(prevEnergy, nextEnergy float64) bool {
	return m.rng.Float64() < acceptance(nextEnergy-prevEnergy, m.KbT())
}

// AcceptanceProbability returns min(1, exp(-delta/kbT)).
func (m *Model) AcceptanceProbability(delta float64) float64 {
	return math.Min(1, acceptance(delta, m.KbT()))
}

func acceptance(delta, kbT float64) float64 {
	if delta == 0 {
		return 1
	}
	return math.Exp(-delta / kbT)
}

// ProposeAction is RandomAction; it lets the model drive a Metropolis rule.
func (m *Model) ProposeAction(l *core.Lattice[bool]) { m.RandomAction(l) }

// Accept is RandomAccept.
func (m *Model) Accept(prevEnergy, nextEnergy float64) bool {
	return m.RandomAccept(prevEnergy, nextEnergy)
}
