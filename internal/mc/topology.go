package mc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

// ErrUnknownTopology is returned when a topology name cannot be resolved.
var ErrUnknownTopology = errors.New("unknown lattice topology")

// Topology selects the neighbor pattern used by heat-bath sampling.
type Topology int

const (
	Square Topology = iota
	Triangle
	Rhombus
	Hexagonal
)

// Topologies lists every supported topology in declaration order.
var Topologies = []Topology{Square, Triangle, Rhombus, Hexagonal}

var topologyNames = [...]string{"square", "triangle", "rhombus", "hexagonal"}

// offset is a neighbor displacement; -1/+1 step one cell with the inset wrap.
type offset struct{ dr, dc int }

// neighborTable holds, per topology, the neighbor offsets for each row
// class. The pattern for a row is table[row % len(table)].
var neighborTable = [...][][]offset{
	Square: {
		{{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	},
	Triangle: {
		{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}},
		{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}},
	},
	Rhombus: {
		{{-1, 0}, {-1, 1}, {1, 0}, {1, 1}},
		{{-1, -1}, {-1, 0}, {1, -1}, {1, 0}},
	},
	Hexagonal: {
		{{-1, 0}, {1, 0}, {1, 1}},
		{{-1, 1}, {-1, 0}, {1, 0}},
		{{-1, 0}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {1, 0}},
	},
}

// ParseTopology resolves a topology by name (case-insensitive).
func ParseTopology(name string) (Topology, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range topologyNames {
		if n == key {
			return Topology(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownTopology, "%q", name)
}

// Valid reports whether t is one of the supported topologies.
func (t Topology) Valid() bool { return t >= Square && t <= Hexagonal }

// String returns the topology name.
func (t Topology) String() string {
	if !t.Valid() {
		return fmt.Sprintf("topology(%d)", int(t))
	}
	return topologyNames[t]
}

// Coordination returns the number of neighbors of a site on a lattice with
// more than two rows and columns.
func (t Topology) Coordination() int {
	return len(neighborTable[t][0])
}

// NeighborSpin sums the physical spins of the neighbors of (row, col).
//
// Neighbors one step past an edge wrap with a one-cell inset (row 0 looks up
// to rows-2, row rows-1 looks down to 1) because the first and last rows and
// columns mirror each other. Lattices with two or fewer rows or columns fall
// back to the up/down pair when rows > 2 plus the left/right pair when
// cols > 2.
func (t Topology) NeighborSpin(l *core.Lattice[bool], row, col int) float64 {
	rows, cols := l.Rows(), l.Cols()
	spin := 0.0
	if rows > 2 && cols > 2 {
		pattern := neighborTable[t]
		for _, o := range pattern[row%len(pattern)] {
			spin += ising.Spin(l.At(step(row, o.dr, rows), step(col, o.dc, cols)))
		}
		return spin
	}
	if rows > 2 {
		spin += ising.Spin(l.At(step(row, -1, rows), col)) + ising.Spin(l.At(step(row, 1, rows), col))
	}
	if cols > 2 {
		spin += ising.Spin(l.At(row, step(col, -1, cols))) + ising.Spin(l.At(row, step(col, 1, cols)))
	}
	return spin
}

func step(i, d, n int) int {
	switch {
	case d < 0 && i == 0:
		return n - 2
	case d > 0 && i == n-1:
		return 1
	default:
		return i + d
	}
}
