// Package sweep runs independent Monte Carlo simulations across a
// temperature grid and collects the average spin reached at each
// temperature. Points are spread over a pool of workers; every point owns
// its lattice, model and rule, so results do not depend on the worker count.
package sweep

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"runtime"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
	"ising-mc/internal/mc"
)

// Config describes a temperature sweep.
type Config struct {
	Rows       int
	Cols       int
	Method     mc.Method
	Topology   mc.Topology
	Steps      int     // updates per point
	TMaxFactor float64 // upper temperature bound as a multiple of Tc (exclusive)
	TStep      float64 // absolute temperature increment
	Seed       int64
	// FixedSeed reuses Seed for every point and runs each temperature twice,
	// once from the all-up and once from the all-down state.
	FixedSeed bool
	Workers   int
	Params    ising.Params
	// Progress, if set, is called from the collecting goroutine after each
	// finished point.
	Progress func(done, total int)
}

// DefaultConfig returns a 20x20 Metropolis sweep over [0, 4Tc).
func DefaultConfig() Config {
	return Config{
		Rows:       20,
		Cols:       20,
		Method:     mc.MethodMetropolis,
		Topology:   mc.Square,
		Steps:      100000,
		TMaxFactor: 4,
		TStep:      0.005,
		Seed:       1,
		Workers:    runtime.NumCPU(),
		Params:     ising.DefaultParams(),
	}
}

// Point is the outcome of one temperature.
type Point struct {
	Index   int
	T       float64
	Reduced float64 // T / Tc
	// AverageSpin is the final average spin; in FixedSeed mode the run
	// started from all spins up.
	AverageSpin float64
	// AverageSpinDown is the all-down run in FixedSeed mode, NaN otherwise.
	AverageSpinDown float64
	Energy          float64
}

func (c Config) validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return errors.Errorf("invalid lattice %dx%d", c.Rows, c.Cols)
	case c.Steps < 0:
		return errors.Errorf("invalid step count %d", c.Steps)
	case c.TStep <= 0 || math.IsNaN(c.TStep):
		return errors.Errorf("invalid temperature step %g", c.TStep)
	case !c.Method.Valid():
		return errors.Wrapf(mc.ErrUnknownMethod, "%d", int(c.Method))
	case !c.Topology.Valid():
		return errors.Wrapf(mc.ErrUnknownTopology, "%d", int(c.Topology))
	}
	return nil
}

// Temperatures returns the grid 0, TStep, 2*TStep, ... below TMaxFactor*Tc.
func Temperatures(cfg Config) []float64 {
	tc := ising.New(cfg.Params).Tc()
	limit := cfg.TMaxFactor * tc
	if cfg.TStep <= 0 || limit <= 0 {
		return nil
	}
	n := int(math.Ceil(limit / cfg.TStep))
	if float64(n-1)*cfg.TStep >= limit {
		n--
	}
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, float64(n-1)*cfg.TStep)
}

type outcome struct {
	point Point
	err   error
}

// Run simulates every temperature of the grid and returns the points ordered
// by temperature. A cancelled context stops the pool and returns ctx.Err().
func Run(ctx context.Context, cfg Config) ([]Point, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	temps := Temperatures(cfg)
	tc := ising.New(cfg.Params).Tc()

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				p, err := runPoint(ctx, cfg, idx, temps[idx])
				p.Reduced = temps[idx] / tc
				select {
				case results <- outcome{point: p, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for idx := range temps {
			select {
			case jobs <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	points := make([]Point, len(temps))
	done := 0
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		points[res.point.Index] = res.point
		done++
		if cfg.Progress != nil {
			cfg.Progress(done, len(temps))
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if done < len(temps) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return points, nil
}

func runPoint(ctx context.Context, cfg Config, idx int, t float64) (Point, error) {
	params := cfg.Params
	params.T = t
	p := Point{Index: idx, T: t, AverageSpinDown: math.NaN()}

	if !cfg.FixedSeed {
		seed := cfg.Seed + int64(idx)
		l := core.NewLattice[bool](cfg.Rows, cfg.Cols)
		l.SetSeed(seed)
		l.InitRand(false, true)
		model, err := simulate(ctx, cfg, params, seed, l)
		if err != nil {
			return p, errors.Wrapf(err, "T=%g", t)
		}
		p.AverageSpin = ising.AverageSpin(l)
		p.Energy = model.Energy(l)
		return p, nil
	}

	up := core.NewLatticeOf(cfg.Rows, cfg.Cols, true)
	model, err := simulate(ctx, cfg, params, cfg.Seed, up)
	if err != nil {
		return p, errors.Wrapf(err, "T=%g up", t)
	}
	p.AverageSpin = ising.AverageSpin(up)
	p.Energy = model.Energy(up)

	down := core.NewLatticeOf(cfg.Rows, cfg.Cols, false)
	if _, err := simulate(ctx, cfg, params, cfg.Seed, down); err != nil {
		return p, errors.Wrapf(err, "T=%g down", t)
	}
	p.AverageSpinDown = ising.AverageSpin(down)
	return p, nil
}

func simulate(ctx context.Context, cfg Config, params ising.Params, seed int64, l *core.Lattice[bool]) (*ising.Model, error) {
	model := ising.NewSeeded(params, seed)
	rule, err := mc.NewRule(cfg.Method, model, cfg.Topology, seed)
	if err != nil {
		return nil, err
	}
	if _, err := mc.Run(ctx, rule, l, cfg.Steps); err != nil {
		return nil, err
	}
	return model, nil
}

// Curve splits points into reduced temperatures and average spins, the
// shape the chart package plots.
func Curve(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Reduced
		ys[i] = p.AverageSpin
	}
	return xs, ys
}

// WriteCSV writes one line per point: T/Tc, average spin, the all-down
// average spin when the sweep used a fixed seed, and the final energy.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	for _, p := range points {
		rec := []string{format(p.Reduced), format(p.AverageSpin)}
		if !math.IsNaN(p.AverageSpinDown) {
			rec = append(rec, format(p.AverageSpinDown))
		}
		rec = append(rec, format(p.Energy))
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write point %d", p.Index)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func format(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
