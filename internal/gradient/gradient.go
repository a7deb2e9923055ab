// Package gradient provides a central-difference derivative and three
// one-dimensional gradient-descent minimizers (SGD, Momentum, AdaGrad).
package gradient

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// Func is a scalar objective of one variable.
type Func func(x float64) float64

// derivativeStep is the central-difference step h.
const derivativeStep = 1e-7

// Derivative estimates f'(x) with the central difference
// (f(x+h) - f(x-h)) / 2h, h = 1e-7.
func Derivative(f Func, x float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    derivativeStep,
	})
}

// Stepper advances x by one descent step given the gradient at x.
type Stepper interface {
	Step(x, grad float64) float64
	Reset()
}

// SGD is plain gradient descent: x -= lr*grad.
type SGD struct {
	LR float64
}

// Step implements Stepper.
func (s *SGD) Step(x, grad float64) float64 { return x - s.LR*grad }

// Reset implements Stepper; SGD keeps no state.
func (s *SGD) Reset() {}

// Momentum accumulates a velocity v = alpha*v - lr*grad and moves x by v.
type Momentum struct {
	Alpha float64
	LR    float64
	v     float64
}

// Step implements Stepper.
func (m *Momentum) Step(x, grad float64) float64 {
	m.v = m.Alpha*m.v - m.LR*grad
	return x + m.v
}

// Reset clears the velocity.
func (m *Momentum) Reset() { m.v = 0 }

// AdaGrad scales the step by the root of the accumulated squared gradients.
type AdaGrad struct {
	LR float64
	h  float64
}

// adaGradEpsilon keeps the first AdaGrad step finite.
const adaGradEpsilon = 1e-7

// Step implements Stepper.
func (a *AdaGrad) Step(x, grad float64) float64 {
	a.h += grad * grad
	return x - a.LR*grad/(math.Sqrt(a.h)+adaGradEpsilon)
}

// Reset clears the accumulated squared gradients.
func (a *AdaGrad) Reset() { a.h = 0 }

// Options bounds a minimization run.
type Options struct {
	MaxIter   int
	Tolerance float64
}

// DefaultOptions returns 200 iterations and a gradient tolerance of 1e-7.
func DefaultOptions() Options {
	return Options{MaxIter: 200, Tolerance: 1e-7}
}

// Result reports where a minimization stopped.
type Result struct {
	X          float64
	Iterations int
	Converged  bool
}

// Minimize descends f from x0 until |f'(x)| < Tolerance or MaxIter steps.
// The stepper is reset before the run.
func Minimize(f Func, x0 float64, s Stepper, opts Options) Result {
	s.Reset()
	x := x0
	for i := 0; i < opts.MaxIter; i++ {
		grad := Derivative(f, x)
		if math.Abs(grad) < opts.Tolerance {
			return Result{X: x, Iterations: i, Converged: true}
		}
		x = s.Step(x, grad)
	}
	return Result{X: x, Iterations: opts.MaxIter}
}

// MinimizeSGD runs SGD with learning rate lr.
func MinimizeSGD(f Func, x0, lr float64, opts Options) Result {
	return Minimize(f, x0, &SGD{LR: lr}, opts)
}

// MinimizeMomentum runs Momentum with the given alpha and learning rate.
func MinimizeMomentum(f Func, x0, alpha, lr float64, opts Options) Result {
	return Minimize(f, x0, &Momentum{Alpha: alpha, LR: lr}, opts)
}

// MinimizeAdaGrad runs AdaGrad with learning rate lr.
func MinimizeAdaGrad(f Func, x0, lr float64, opts Options) Result {
	return Minimize(f, x0, &AdaGrad{LR: lr}, opts)
}
