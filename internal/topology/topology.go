package topology

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	ErrUnknownArchetype = errors.New("topology: unknown archetype")
	ErrInvalidParams    = errors.New("topology: invalid params")
	ErrDegenerateFit    = errors.New("topology: regression x values have zero variance")
	ErrEmptyTopology    = errors.New("topology: diagram has no nodes")
	ErrEdgeOutOfRange   = errors.New("topology: edge index out of range")
)

// Archetype tags one of the diagram families the builder knows how to lay out.
type Archetype string

const (
	NeuralNetwork    Archetype = "neural-network"
	DecisionTree     Archetype = "decision-tree"
	Transformer      Archetype = "transformer"
	LinearRegression Archetype = "linear-regression"
	Sigmoid          Archetype = "sigmoid"
	Clustering       Archetype = "clustering"
	ParticleShell    Archetype = "particle-shell"
)

// Archetypes returns every archetype Build accepts, in display order.
func Archetypes() []Archetype {
	return []Archetype{NeuralNetwork, DecisionTree, Transformer, LinearRegression, Sigmoid, Clustering, ParticleShell}
}

// ParseArchetype maps a tag such as "neural-network" to its Archetype.
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(s)
	if _, ok := builders[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
	}
	return a, nil
}

// Shape is how a renderer should draw each node.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeSphere
	ShapeBox
	ShapePoint
)

func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePoint:
		return "point"
	default:
		return "none"
	}
}

// Vec3 is a position in diagram-local space.
type Vec3 struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Edge connects two nodes by index into DiagramSpec.Nodes.
type Edge struct {
	From, To int
}

// Valid reports whether both endpoints index into a node list of length n.
func (e Edge) Valid(n int) bool {
	return e.From >= 0 && e.To >= 0 && e.From < n && e.To < n
}

// Group is a contiguous run of nodes drawn with its own color (e.g. one cluster).
type Group struct {
	Name  string
	Start int
	Count int
	Color string
}

// Segment is a fixed reference line, such as a plot axis.
type Segment struct {
	From, To Vec3
}

// Fit is an ordinary-least-squares line y = Slope*x + Intercept.
type Fit struct {
	Slope     float32
	Intercept float32
}

// Placement positions a diagram in world space.
type Placement struct {
	Position Vec3    `yaml:"position" toml:"position"`
	Scale    float32 `yaml:"scale" toml:"scale"`
}

// DiagramSpec is the static topology of one diagram. It is never mutated after Build returns;
// every call produces a fresh value. Groups, when present, list the nodes that get a drawn
// shape; nodes outside every group (e.g. regression line endpoints) only anchor edges.
type DiagramSpec struct {
	Name      string
	Archetype Archetype
	Placement Placement
	Color     string
	Shape     Shape
	NodeSize  float32
	Nodes     []Vec3
	Edges     []Edge
	Groups    []Group
	Guides    []Segment
	Fit       *Fit
	Seed      int64
}

// NodeCount returns the number of nodes.
func (d *DiagramSpec) NodeCount() int {
	if d == nil {
		return 0
	}
	return len(d.Nodes)
}

type builder func(p Params, rng *rand.Rand) (*DiagramSpec, error)

var builders = map[Archetype]builder{
	NeuralNetwork:    buildNetwork,
	DecisionTree:     buildTree,
	Transformer:      buildTransformer,
	LinearRegression: buildRegression,
	Sigmoid:          buildSigmoid,
	Clustering:       buildClustering,
	ParticleShell:    buildParticleShell,
}

// Build lays out the topology for archetype a. Zero fields in p take the archetype's defaults
// (see DefaultParams); Seed == 0 uses a time-based seed, recorded in the result's Seed.
// The returned spec always satisfies Validate.
func Build(a Archetype, p Params) (*DiagramSpec, error) {
	b, ok := builders[a]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, string(a))
	}
	p = p.withDefaults(a)
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	spec, err := b(p, newRand(seed))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", a, err)
	}
	spec.Name = p.Name
	spec.Archetype = a
	spec.Placement = p.Placement
	spec.Color = p.Color
	spec.Seed = seed
	if errs := Validate(spec); len(errs) > 0 {
		return nil, fmt.Errorf("build %s: %w", a, errs[0])
	}
	return spec, nil
}

// MustBuild is like Build but panics on error. Intended for fixed, known-good parameters.
func MustBuild(a Archetype, p Params) *DiagramSpec {
	spec, err := Build(a, p)
	if err != nil {
		panic(err)
	}
	return spec
}

// Validate checks that a spec has nodes and that every edge references a valid node.
// It returns one error per problem found.
func Validate(d *DiagramSpec) []error {
	var errs []error
	if d.NodeCount() == 0 {
		return []error{ErrEmptyTopology}
	}
	n := len(d.Nodes)
	for i, e := range d.Edges {
		if !e.Valid(n) {
			errs = append(errs, fmt.Errorf("%w: edge %d (%d->%d) with %d nodes", ErrEdgeOutOfRange, i, e.From, e.To, n))
		}
	}
	for _, g := range d.Groups {
		if g.Start < 0 || g.Count < 0 || g.Start+g.Count > n {
			errs = append(errs, fmt.Errorf("%w: group %q [%d,+%d) with %d nodes", ErrInvalidParams, g.Name, g.Start, g.Count, n))
		}
	}
	return errs
}
