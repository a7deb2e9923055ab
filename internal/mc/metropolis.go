// Package mc implements the Monte Carlo update rules that evolve a spin
// lattice in place: the Metropolis accept/reject rule and heat-bath sampling
// over a fixed lattice topology.
package mc

// Snapshot is a configuration the Metropolis rule can copy into a scratch
// candidate and back. CopyFrom is only called between states of the same
// shape.
type Snapshot[S any] interface {
	Clone() S
	CopyFrom(src S)
	SameShape(other S) bool
}

// Proposer supplies the three capabilities the Metropolis rule needs: an
// energy, a random local perturbation applied in place, and the stochastic
// acceptance test for an energy increase.
type Proposer[S any] interface {
	Energy(state S) float64
	ProposeAction(state S)
	Accept(prevEnergy, nextEnergy float64) bool
}

// Metropolis applies the Metropolis criterion: a candidate with strictly lower
// energy always replaces the state, otherwise the Proposer decides.
type Metropolis[S Snapshot[S]] struct {
	model     Proposer[S]
	candidate S
	ready     bool
}

// NewMetropolis binds the rule to a model. The model is not owned.
func NewMetropolis[S Snapshot[S]](model Proposer[S]) *Metropolis[S] {
	return &Metropolis[S]{model: model}
}

// Name identifies the rule.
func (m *Metropolis[S]) Name() string { return MethodMetropolis.String() }

// Update performs one proposal and reports whether it was accepted.
func (m *Metropolis[S]) Update(state S) bool {
	prevEnergy := m.model.Energy(state)

	if !m.ready || !m.candidate.SameShape(state) {
		m.candidate = state.Clone()
		m.ready = true
	} else {
		m.candidate.CopyFrom(state)
	}
	m.model.ProposeAction(m.candidate)

	nextEnergy := m.model.Energy(m.candidate)
	if nextEnergy < prevEnergy || m.model.Accept(prevEnergy, nextEnergy) {
		state.CopyFrom(m.candidate)
		return true
	}
	return false
}

// Optimize runs exactly steps updates and returns how many were accepted.
func (m *Metropolis[S]) Optimize(state S, steps int) int {
	accepted := 0
	for i := 0; i < steps; i++ {
		if m.Update(state) {
			accepted++
		}
	}
	return accepted
}
