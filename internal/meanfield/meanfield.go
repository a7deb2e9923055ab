// Package meanfield solves the mean-field self-consistency equation
// m = tanh(Tc/T m) numerically with the gradient-descent steppers, either by
// minimizing the free energy directly or by minimizing the squared residual
// of the equation.
package meanfield

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"ising-mc/internal/gradient"
	"ising-mc/internal/ising"
)

// Row is one output record. The first column is the step index or the
// reduced temperature T/Tc; the rest are magnetizations.
type Row []float64

// Config drives every run in the package. Fields that a run does not use
// are ignored.
type Config struct {
	Steps   int       // fixed steps, or max iterations per minimizer for the Solve runs
	M0      float64   // initial magnetization
	TFactor float64   // fixed temperature as a multiple of Tc
	TMax    float64   // temperature scan upper bound as a multiple of Tc (exclusive)
	TStep   float64   // absolute temperature increment of a scan
	LR      float64   // learning rate
	Alpha   float64   // momentum decay
	Rates   []float64 // learning rates for LearningRateScan
}

// DefaultCompareConfig returns the settings of the optimizer comparison run.
func DefaultCompareConfig() Config {
	return Config{Steps: 5000, M0: 1e-2, TFactor: 0.8, LR: 0.01, Alpha: 0.9}
}

// DefaultScanConfig returns the settings of the learning-rate scan.
func DefaultScanConfig() Config {
	return Config{Steps: 2000, M0: 1 - 1e-3, TFactor: 0.8, Rates: []float64{0.01, 0.1, 0.15}}
}

// DefaultFreeEnergyConfig returns the settings of the free-energy temperature scan.
func DefaultFreeEnergyConfig() Config {
	return Config{Steps: 3000, M0: 1e-2, TMax: 3, TStep: 0.002, LR: 0.01, Alpha: 0.9}
}

// DefaultLossConfig returns the settings of the residual-loss temperature scan.
func DefaultLossConfig() Config {
	return Config{Steps: 10000, M0: 0.5 + 1e-2, TMax: 3, TStep: 0.002, LR: 0.01, Alpha: 0.9}
}

// CompareOptimizers fixes T = TFactor*Tc and runs SGD, Momentum and AdaGrad
// side by side on the free energy for Steps steps. Each row is
// (i, m_sgd, m_momentum, m_adagrad) after step i.
func CompareOptimizers(p ising.Params, cfg Config) []Row {
	model := ising.New(p)
	model.SetTemperature(cfg.TFactor * model.Tc())
	f := gradient.Func(model.FreeEnergy)

	steppers := []gradient.Stepper{
		&gradient.SGD{LR: cfg.LR},
		&gradient.Momentum{Alpha: cfg.Alpha, LR: cfg.LR},
		&gradient.AdaGrad{LR: cfg.LR},
	}
	return fixedSteps(f, cfg, steppers)
}

// LearningRateScan fixes T = TFactor*Tc and runs plain SGD once per entry of
// Rates. Each row is (i, m_rate0, m_rate1, ...).
func LearningRateScan(p ising.Params, cfg Config) []Row {
	model := ising.New(p)
	model.SetTemperature(cfg.TFactor * model.Tc())
	f := gradient.Func(model.FreeEnergy)

	steppers := make([]gradient.Stepper, len(cfg.Rates))
	for i, lr := range cfg.Rates {
		steppers[i] = &gradient.SGD{LR: lr}
	}
	return fixedSteps(f, cfg, steppers)
}

func fixedSteps(f gradient.Func, cfg Config, steppers []gradient.Stepper) []Row {
	ms := make([]float64, len(steppers))
	for i := range ms {
		ms[i] = cfg.M0
	}
	rows := make([]Row, 0, cfg.Steps)
	for i := 0; i < cfg.Steps; i++ {
		row := make(Row, 0, len(ms)+1)
		row = append(row, float64(i))
		for j, s := range steppers {
			ms[j] = s.Step(ms[j], gradient.Derivative(f, ms[j]))
			row = append(row, ms[j])
		}
		rows = append(rows, row)
	}
	return rows
}

// SolveFreeEnergy scans T from 0 to TMax*Tc in TStep increments and
// minimizes the free energy at each temperature with all three minimizers,
// each capped at Steps iterations. Rows are (T/Tc, m_sgd, m_momentum, m_adagrad).
func SolveFreeEnergy(p ising.Params, cfg Config) []Row {
	model := ising.New(p)
	return scan(model, cfg, model.FreeEnergy)
}

// Loss returns the squared residual of the self-consistency equation at the
// model's current temperature.
func Loss(model *ising.Model) gradient.Func {
	return func(m float64) float64 {
		d := m - math.Tanh(model.Tc()/model.Params.T*m)
		return d * d
	}
}

// SolveLoss is SolveFreeEnergy with the residual loss as the objective.
func SolveLoss(p ising.Params, cfg Config) []Row {
	model := ising.New(p)
	return scan(model, cfg, Loss(model))
}

func scan(model *ising.Model, cfg Config, f gradient.Func) []Row {
	tc := model.Tc()
	limit := cfg.TMax * tc
	opts := gradient.Options{MaxIter: cfg.Steps, Tolerance: gradient.DefaultOptions().Tolerance}

	var rows []Row
	for i := 0; ; i++ {
		t := float64(i) * cfg.TStep
		if t >= limit || cfg.TStep <= 0 {
			break
		}
		model.SetTemperature(t)
		rows = append(rows, Row{
			t / tc,
			gradient.MinimizeSGD(f, cfg.M0, cfg.LR, opts).X,
			gradient.MinimizeMomentum(f, cfg.M0, cfg.Alpha, cfg.LR, opts).X,
			gradient.MinimizeAdaGrad(f, cfg.M0, cfg.LR, opts).X,
		})
	}
	return rows
}

// WriteCSV writes rows as comma-separated values with six significant digits.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	for i, row := range rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', 6, 64)
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}
