package mc

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

// ErrUnknownMethod is returned when an update method name cannot be resolved.
var ErrUnknownMethod = errors.New("unknown update method")

// UpdateRule evolves a spin lattice in place. Update reports whether the
// lattice changed; Optimize runs exactly steps updates and returns how many
// of them changed the lattice.
type UpdateRule interface {
	Name() string
	Update(l *core.Lattice[bool]) bool
	Optimize(l *core.Lattice[bool], steps int) int
}

var (
	_ UpdateRule = (*Metropolis[*core.Lattice[bool]])(nil)
	_ UpdateRule = (*HeatBath)(nil)
)

// Method selects an update rule.
type Method int

const (
	MethodMetropolis Method = iota
	MethodHeatBath
)

// Methods lists every supported method in declaration order.
var Methods = []Method{MethodMetropolis, MethodHeatBath}

var methodNames = [...]string{"metropolis", "heatbath"}

// ParseMethod resolves a method by name (case-insensitive, "heat-bath" accepted).
func ParseMethod(name string) (Method, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	for i, n := range methodNames {
		if n == key {
			return Method(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMethod, "%q", name)
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool { return m == MethodMetropolis || m == MethodHeatBath }

// String returns the method name.
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// NewRule builds the rule for method bound to model. The topology only
// applies to heat-bath sampling; seed initializes the heat-bath generator
// (Metropolis draws from the model's generator).
func NewRule(method Method, model *ising.Model, topology Topology, seed int64) (UpdateRule, error) {
	switch method {
	case MethodMetropolis:
		return NewMetropolis[*core.Lattice[bool]](model), nil
	case MethodHeatBath:
		if !topology.Valid() {
			return nil, errors.Wrapf(ErrUnknownTopology, "%d", int(topology))
		}
		return NewHeatBathSeeded(model, topology, seed), nil
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%d", int(method))
	}
}

// checkEvery is how many updates Run performs between context checks.
const checkEvery = 4096

// Run performs up to steps updates, checking ctx between batches so long
// runs can be cancelled. It returns the number of updates performed and
// ctx.Err() when cancelled early.
func Run(ctx context.Context, rule UpdateRule, l *core.Lattice[bool], steps int) (int, error) {
	done := 0
	for done < steps {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		batch := steps - done
		if batch > checkEvery {
			batch = checkEvery
		}
		rule.Optimize(l, batch)
		done += batch
	}
	return done, nil
}
