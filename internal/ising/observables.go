package ising

import (
	"gonum.org/v1/gonum/floats"

	"ising-mc/internal/core"
)

// Observables bundles the quantities read off a lattice after a step or batch.
type Observables struct {
	Energy        float64
	Magnetization float64
	AverageSpin   float64
}

// Spins returns the physical spin values (+1/-1) in row-major order.
func Spins(l *core.Lattice[bool]) []float64 {
	cells := l.Cells()
	out := make([]float64, len(cells))
	for i, v := range cells {
		out[i] = Spin(v)
	}
	return out
}

// Magnetization sums the physical spins over every cell.
func Magnetization(l *core.Lattice[bool]) float64 {
	return floats.Sum(Spins(l))
}

// AverageSpin returns the magnetization per site. Lattices are never empty,
// so the division is always defined.
func AverageSpin(l *core.Lattice[bool]) float64 {
	return Magnetization(l) / float64(l.Len())
}

// Observe computes all observables for l.
func (m *Model) Observe(l *core.Lattice[bool]) Observables {
	mag := Magnetization(l)
	return Observables{
		Energy:        m.Energy(l),
		Magnetization: mag,
		AverageSpin:   mag / float64(l.Len()),
	}
}
