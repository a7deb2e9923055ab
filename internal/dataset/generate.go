package dataset

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
	"ising-mc/internal/mc"
)

// Labels of the two temperature regimes.
var (
	LabelOrdered    = []float64{0, 1}
	LabelDisordered = []float64{1, 0}
)

// Config controls dataset generation.
type Config struct {
	Rows      int
	Cols      int
	HalfCount int // samples per split and regime
	Steps     int // heat-bath updates per sample
	Topology  mc.Topology
	Seed      int64
	Params    ising.Params
	// Progress, if set, is called before each sample is simulated.
	Progress func(i int, t float64)
}

// DefaultConfig returns 20x20 samples, 10 per split and regime, each after
// a million square-lattice heat-bath updates.
func DefaultConfig() Config {
	return Config{
		Rows:      20,
		Cols:      20,
		HalfCount: 10,
		Steps:     1000000,
		Topology:  mc.Square,
		Seed:      1,
		Params:    ising.DefaultParams(),
	}
}

// Set holds the train and test splits with their one-hot labels.
type Set struct {
	TrainX Matrix
	TrainT Matrix
	TestX  Matrix
	TestT  Matrix
}

// Generate samples 2*HalfCount configurations with T drawn uniformly from
// [0, Tc) and as many from [Tc, 2Tc), Tc being the exact square-lattice
// critical temperature. Within each regime the first HalfCount samples go
// to the train split and the rest to the test split.
func Generate(ctx context.Context, cfg Config) (*Set, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, errors.Errorf("invalid lattice %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.HalfCount <= 0 {
		return nil, errors.Errorf("invalid sample count %d", cfg.HalfCount)
	}

	model := ising.NewSeeded(cfg.Params, cfg.Seed)
	rule, err := mc.NewRule(mc.MethodHeatBath, model, cfg.Topology, cfg.Seed)
	if err != nil {
		return nil, err
	}
	temps := core.NewRNG(cfg.Seed)
	state := core.NewLattice[bool](cfg.Rows, cfg.Cols)
	state.SetSeed(cfg.Seed)

	tc := model.OnsagerTc()
	regimes := []struct {
		lo, hi float64
		label  []float64
	}{
		{0, tc, LabelOrdered},
		{tc, 2 * tc, LabelDisordered},
	}

	set := &Set{}
	n := 0
	for _, reg := range regimes {
		for i := 0; i < 2*cfg.HalfCount; i++ {
			t := temps.Uniform(reg.lo, reg.hi)
			if cfg.Progress != nil {
				cfg.Progress(n, t)
			}
			n++

			model.SetTemperature(t)
			state.InitRand(false, true)
			if _, err := mc.Run(ctx, rule, state, cfg.Steps); err != nil {
				return nil, errors.Wrapf(err, "sample %d", n-1)
			}

			label := append([]float64(nil), reg.label...)
			if i < cfg.HalfCount {
				set.TrainX = append(set.TrainX, state.Flatten())
				set.TrainT = append(set.TrainT, label)
			} else {
				set.TestX = append(set.TestX, state.Flatten())
				set.TestT = append(set.TestT, label)
			}
		}
	}
	return set, nil
}

// Save writes train_x.txt, train_t.txt, test_x.txt and test_t.txt into dir,
// creating it if needed.
func (s *Set) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	files := []struct {
		name string
		m    Matrix
	}{
		{"train_x.txt", s.TrainX},
		{"train_t.txt", s.TrainT},
		{"test_x.txt", s.TestX},
		{"test_t.txt", s.TestT},
	}
	for _, f := range files {
		if err := WriteFile(filepath.Join(dir, f.name), f.m); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a set previously written by Save.
func Load(dir string) (*Set, error) {
	var s Set
	for _, f := range []struct {
		name string
		dst  *Matrix
	}{
		{"train_x.txt", &s.TrainX},
		{"train_t.txt", &s.TrainT},
		{"test_x.txt", &s.TestX},
		{"test_t.txt", &s.TestT},
	} {
		m, err := ReadFile(filepath.Join(dir, f.name))
		if err != nil {
			return nil, err
		}
		*f.dst = m
	}
	return &s, nil
}
