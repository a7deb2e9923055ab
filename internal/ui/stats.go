package ui

import (
	"fmt"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

type stepCounter interface {
	StepCount() int
}

type observer interface {
	Observables() ising.Observables
}

type modelProvider interface {
	Model() *ising.Model
}

// statsLines formats the live readouts a simulation exposes.
func statsLines(sim core.Sim) []string {
	var lines []string
	if s, ok := sim.(stepCounter); ok {
		lines = append(lines, fmt.Sprintf("step  %d", s.StepCount()))
	}
	if m, ok := sim.(modelProvider); ok {
		model := m.Model()
		lines = append(lines, fmt.Sprintf("kT    %.5g", model.KbT()))
		if tc := model.OnsagerTc(); tc != 0 {
			lines = append(lines, fmt.Sprintf("T/Tc  %.3f", model.Params.T/tc))
		}
	}
	if o, ok := sim.(observer); ok {
		obs := o.Observables()
		lines = append(lines,
			fmt.Sprintf("<s>   %+.4f", obs.AverageSpin),
			fmt.Sprintf("E     %.0f", obs.Energy),
		)
	}
	return lines
}
