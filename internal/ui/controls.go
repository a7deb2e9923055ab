package ui

import (
	"image"
	"math"
	"strconv"

	"ising-mc/internal/core"
)

// controlValue is the HUD's parsed view of one adjustable parameter.
type controlValue struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// load parses a parameter snapshot value according to the control type.
func (c *controlValue) load(param core.Parameter, ok bool) {
	c.hasValue = false
	c.value = "--"
	if !ok {
		return
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		c.intValue = parsed
		c.floatValue = float64(parsed)
		c.value = strconv.Itoa(parsed)
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		c.floatValue = parsed
		c.value = formatFloat(c.control, parsed)
	case core.ParamTypeChoice:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil || parsed < 0 || parsed >= len(c.control.Options) {
			return
		}
		c.intValue = parsed
		c.value = c.control.Options[parsed]
	default:
		return
	}
	c.hasValue = true
}

// nextInt returns the integer (or choice index) reached by one click in
// direction, and whether it differs from the current value. Choices wrap.
func (c *controlValue) nextInt(direction int) (int, bool) {
	if c.control.Type == core.ParamTypeChoice {
		n := len(c.control.Options)
		if n < 2 || direction == 0 {
			return c.intValue, false
		}
		return ((c.intValue+direction)%n + n) % n, true
	}
	step := int(math.Round(c.control.Step))
	if step <= 0 {
		step = 1
	}
	target := c.intValue + direction*step
	if c.control.HasMin {
		if min := int(math.Round(c.control.Min)); target < min {
			target = min
		}
	}
	if c.control.HasMax {
		if max := int(math.Round(c.control.Max)); target > max {
			target = max
		}
	}
	return target, target != c.intValue
}

// nextFloat is nextInt for float controls.
func (c *controlValue) nextFloat(direction int) (float64, bool) {
	step := c.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := c.floatValue + float64(direction)*step
	if c.control.HasMin && target < c.control.Min {
		target = c.control.Min
	}
	if c.control.HasMax && target > c.control.Max {
		target = c.control.Max
	}
	return target, math.Abs(target-c.floatValue) >= 1e-9
}

// canAdjust reports whether a click in direction would change the value.
func (c *controlValue) canAdjust(direction int) bool {
	if !c.hasValue || direction == 0 {
		return false
	}
	switch c.control.Type {
	case core.ParamTypeInt, core.ParamTypeChoice:
		_, ok := c.nextInt(direction)
		return ok
	case core.ParamTypeFloat:
		_, ok := c.nextFloat(direction)
		return ok
	}
	return false
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case ctrl.HasMin && ctrl.Min > 0 && ctrl.Min < 0.001 && value < 0.01:
		precision = 5
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
