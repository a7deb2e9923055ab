// Package ising adapts the Monte Carlo engine to the core.Sim contract so the
// viewer can drive a spin lattice tick by tick and tune it at runtime.
package ising

import (
	"ising-mc/internal/core"
	isingmodel "ising-mc/internal/ising"
	"ising-mc/internal/mc"
)

// World is a spin lattice evolved by one of the update rules.
type World struct {
	cfg   Config
	state *core.Lattice[bool]
	model *isingmodel.Model
	rule  mc.UpdateRule
	seed  int64
	steps int
	cells []uint8

	onStep func(step int)
}

// New returns a world built from the default configuration.
func New() *World {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig constructs a world and initializes it from cfg.Seed.
func NewWithConfig(cfg Config) *World {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.StepsPerTick <= 0 {
		cfg.StepsPerTick = 1
	}
	if !cfg.Method.Valid() {
		cfg.Method = mc.MethodMetropolis
	}
	if !cfg.Topology.Valid() {
		cfg.Topology = mc.Square
	}
	params := isingmodel.DefaultParams()
	params.J = cfg.J
	if cfg.KbT > 0 {
		params.T = cfg.KbT / params.Kb
	}

	w := &World{
		cfg:   cfg,
		state: core.NewLattice[bool](cfg.Height, cfg.Width),
		model: isingmodel.NewSeeded(params, cfg.Seed),
		cells: make([]uint8, cfg.Width*cfg.Height),
	}
	w.Reset(cfg.Seed)
	return w
}

// Name identifies the simulation.
func (w *World) Name() string { return "ising" }

// Size returns the lattice dimensions.
func (w *World) Size() core.Size { return w.state.Size() }

// Cells exposes the spins as 1 (up) and 0 (down).
func (w *World) Cells() []uint8 { return w.cells }

// Lattice returns the live spin lattice.
func (w *World) Lattice() *core.Lattice[bool] { return w.state }

// Model returns the model evaluating the lattice.
func (w *World) Model() *isingmodel.Model { return w.model }

// StepCount returns the number of updates since the last reset.
func (w *World) StepCount() int { return w.steps }

// Observables measures the current lattice.
func (w *World) Observables() isingmodel.Observables { return w.model.Observe(w.state) }

// OnStep registers fn to be called after every completed update with the new
// step count, and with 0 after a reset.
func (w *World) OnStep(fn func(step int)) { w.onStep = fn }

// Reset randomizes the spins and reseeds every generator from seed.
func (w *World) Reset(seed int64) {
	w.seed = seed
	w.state.SetSeed(seed)
	w.state.InitRand(false, true)
	w.model.SetSeed(seed)
	w.rebuildRule()
	w.steps = 0
	w.syncCells()
	w.notify()
}

// Step runs StepsPerTick updates, stopping at MaxCount.
func (w *World) Step() {
	for i := 0; i < w.cfg.StepsPerTick; i++ {
		if w.cfg.MaxCount > 0 && w.steps >= w.cfg.MaxCount {
			break
		}
		w.rule.Update(w.state)
		w.steps++
		w.notify()
	}
	w.syncCells()
}

// Done reports whether the update cap has been reached.
func (w *World) Done() bool {
	return w.cfg.MaxCount > 0 && w.steps >= w.cfg.MaxCount
}

func (w *World) rebuildRule() {
	rule, err := mc.NewRule(w.cfg.Method, w.model, w.cfg.Topology, w.seed)
	if err != nil {
		// Method and topology are validated before they reach the config.
		panic(err)
	}
	w.rule = rule
}

func (w *World) notify() {
	if w.onStep != nil {
		w.onStep(w.steps)
	}
}

func (w *World) syncCells() {
	for i, up := range w.state.Cells() {
		if up {
			w.cells[i] = 1
		} else {
			w.cells[i] = 0
		}
	}
}

func init() {
	core.Register("ising", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
