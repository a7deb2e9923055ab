package mc

import (
	"math"
	"math/rand/v2"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

// HeatBath samples a site's new spin directly from its conditional
// equilibrium distribution given the neighbor spins. There is no
// accept/reject step.
type HeatBath struct {
	model    *ising.Model
	topology Topology
	rng      *core.RNG
}

// NewHeatBath binds the rule to a model (not owned) and a topology.
func NewHeatBath(model *ising.Model, topology Topology) *HeatBath {
	return NewHeatBathSeeded(model, topology, rand.Int64())
}

// NewHeatBathSeeded is NewHeatBath with a deterministic generator.
func NewHeatBathSeeded(model *ising.Model, topology Topology, seed int64) *HeatBath {
	if !topology.Valid() {
		panic("mc: invalid topology " + topology.String())
	}
	return &HeatBath{model: model, topology: topology, rng: core.NewRNG(seed)}
}

// Name identifies the rule.
func (h *HeatBath) Name() string { return MethodHeatBath.String() }

// Topology reports the neighbor pattern in use.
func (h *HeatBath) Topology() Topology { return h.topology }

// SetSeed reseeds the rule's generator.
func (h *HeatBath) SetSeed(seed int64) { h.rng.Seed(seed) }

// UpProbability returns the probability that a site with the given neighbor
// spin sum is set up: (tanh(J/kbT * sum) + 1) / 2. A zero sum or a zero
// coupling yields 1/2 even when kbT is zero.
func (h *HeatBath) UpProbability(neighborSpin float64) float64 {
	x := 0.0
	if neighborSpin != 0 && h.model.Params.J != 0 {
		x = h.model.Params.J / h.model.KbT() * neighborSpin
	}
	return 0.5 * (math.Tanh(x) + 1)
}

// Update resamples one random site and reports whether its value changed.
func (h *HeatBath) Update(l *core.Lattice[bool]) bool {
	row := h.rng.IntN(l.Rows())
	col := h.rng.IntN(l.Cols())

	spin := h.topology.NeighborSpin(l, row, col)
	value := h.rng.Float64() < h.UpProbability(spin)

	changed := l.At(row, col) != value
	l.SetMirrored(row, col, value)
	return changed
}

// Optimize runs exactly steps updates and returns how many changed a site.
func (h *HeatBath) Optimize(l *core.Lattice[bool], steps int) int {
	changed := 0
	for i := 0; i < steps; i++ {
		if h.Update(l) {
			changed++
		}
	}
	return changed
}
