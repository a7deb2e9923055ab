package ising

import (
	"strconv"

	"ising-mc/internal/core"
	"ising-mc/internal/mc"
)

// Bounds of the runtime-adjustable physical parameters.
const (
	minKbT = 1e-5
	maxKbT = 1000
	maxJ   = 1000
)

func (w *World) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.seed),
				intParam("step", "Step", w.steps),
			},
		},
		{
			Name: "Model",
			Params: []core.Parameter{
				floatParam("j", "J", w.model.Params.J),
				floatParam("kbt", "kT", w.model.KbT()),
			},
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				choiceParam("method", "Method", int(w.cfg.Method)),
				choiceParam("topology", "Topology", int(w.cfg.Topology)),
				intParam("max_count", "Max count", w.cfg.MaxCount),
				intParam("steps_per_tick", "Steps per tick", w.cfg.StepsPerTick),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	methods := make([]string, len(mc.Methods))
	for i, m := range mc.Methods {
		methods[i] = m.String()
	}
	topologies := make([]string, len(mc.Topologies))
	for i, t := range mc.Topologies {
		topologies[i] = t.String()
	}
	return []core.ParameterControl{
		{Key: "j", Label: "J", Type: core.ParamTypeFloat, Step: 0.1, Min: -maxJ, Max: maxJ, HasMin: true, HasMax: true},
		{Key: "kbt", Label: "kT", Type: core.ParamTypeFloat, Step: 0.05, Min: minKbT, Max: maxKbT, HasMin: true, HasMax: true},
		{Key: "method", Label: "Method", Type: core.ParamTypeChoice, Options: methods},
		{Key: "topology", Label: "Topology", Type: core.ParamTypeChoice, Options: topologies},
		{Key: "steps_per_tick", Label: "Steps/tick", Type: core.ParamTypeInt, Step: 10, Min: 1, HasMin: true},
		{Key: "max_count", Label: "Max count", Type: core.ParamTypeInt, Step: 1000, Min: 0, HasMin: true},
	}
}

// SetIntParameter updates an integer or choice parameter. Changing the
// method or topology rebuilds the update rule and keeps the lattice.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "method":
		m := mc.Method(value)
		if !m.Valid() {
			return false
		}
		w.cfg.Method = m
		w.rebuildRule()
	case "topology":
		t := mc.Topology(value)
		if !t.Valid() {
			return false
		}
		w.cfg.Topology = t
		w.rebuildRule()
	case "max_count":
		if value < 0 {
			return false
		}
		w.cfg.MaxCount = value
	case "steps_per_tick":
		if value <= 0 {
			return false
		}
		w.cfg.StepsPerTick = value
	default:
		return false
	}
	return true
}

// SetFloatParameter updates J or kT. kT is clamped to [1e-5, 1000] and J to
// [-1000, 1000].
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "j":
		w.cfg.J = clamp(value, -maxJ, maxJ)
		w.model.Params.J = w.cfg.J
	case "kbt":
		w.cfg.KbT = clamp(value, minKbT, maxKbT)
		w.model.SetTemperature(w.cfg.KbT / w.model.Params.Kb)
	default:
		return false
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func choiceParam(key, label string, index int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeChoice,
		Value: strconv.Itoa(index),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
