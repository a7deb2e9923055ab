package ising

import (
	"strconv"

	"ising-mc/internal/mc"
)

// Config controls the lattice dimensions, the dynamics and the physical
// parameters of the viewer simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	Method   mc.Method
	Topology mc.Topology

	J   float64
	KbT float64

	// MaxCount caps the number of updates after a reset; 0 disables the cap.
	MaxCount     int
	StepsPerTick int
}

// DefaultConfig returns a 50x50 Metropolis lattice at J=1, kbT=0.1 capped at
// 10000 updates.
func DefaultConfig() Config {
	return Config{
		Width:        50,
		Height:       50,
		Seed:         1337,
		Method:       mc.MethodMetropolis,
		Topology:     mc.Square,
		J:            1,
		KbT:          0.1,
		MaxCount:     10000,
		StepsPerTick: 50,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["method"]; ok {
		if parsed, err := mc.ParseMethod(v); err == nil {
			c.Method = parsed
		}
	}
	if v, ok := cfg["topology"]; ok {
		if parsed, err := mc.ParseTopology(v); err == nil {
			c.Topology = parsed
		}
	}
	if v, ok := cfg["j"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.J = parsed
		}
	}
	if v, ok := cfg["kbt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.KbT = parsed
		}
	}
	if v, ok := cfg["max_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxCount = parsed
		}
	}
	if v, ok := cfg["steps_per_tick"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.StepsPerTick = parsed
		}
	}
	return c
}
