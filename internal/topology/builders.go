package topology

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// buildNetwork lays layers left to right, each centered on Y, and fully connects
// every pair of consecutive layers.
func buildNetwork(p Params, _ *rand.Rand) (*DiagramSpec, error) {
	total := 0
	for i, size := range p.LayerSizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: layer %d has size %d", ErrInvalidParams, i, size)
		}
		total += size
	}
	layers := len(p.LayerSizes)
	nodes := make([]Vec3, 0, total)
	starts := make([]int, layers)
	for l, size := range p.LayerSizes {
		starts[l] = len(nodes)
		x := float32(l)*p.LayerSpacing - float32(layers-1)*p.LayerSpacing/2
		for i := 0; i < size; i++ {
			y := float32(i)*p.NodeSpacing - float32(size-1)*p.NodeSpacing/2
			nodes = append(nodes, Vec3{X: x, Y: y})
		}
	}
	var edges []Edge
	for l := 0; l+1 < layers; l++ {
		for i := 0; i < p.LayerSizes[l]; i++ {
			for j := 0; j < p.LayerSizes[l+1]; j++ {
				edges = append(edges, Edge{From: starts[l] + i, To: starts[l+1] + j})
			}
		}
	}
	return &DiagramSpec{Shape: ShapeSphere, NodeSize: 0.15, Nodes: nodes, Edges: edges}, nil
}

// buildTree grows a tree breadth first from a root at (0, Top). Sibling offsets shrink by one
// SiblingSpacing per level so the last level is evenly spaced. LeafLimit caps the last level.
func buildTree(p Params, _ *rand.Rand) (*DiagramSpec, error) {
	if p.Depth < 1 || p.Branching < 1 {
		return nil, fmt.Errorf("%w: depth %d, branching %d", ErrInvalidParams, p.Depth, p.Branching)
	}
	top := *p.Top
	nodes := []Vec3{{X: 0, Y: top}}
	var edges []Edge
	level := []int{0}
	for depth := 1; depth <= p.Depth; depth++ {
		gap := float32(p.Depth-depth+1) * p.SiblingSpacing
		y := top - float32(depth)*p.LevelSpacing
		last := depth == p.Depth
		var next []int
	parents:
		for _, parent := range level {
			for j := 0; j < p.Branching; j++ {
				if last && p.LeafLimit > 0 && len(next) >= p.LeafLimit {
					break parents
				}
				x := nodes[parent].X + (float32(j)-float32(p.Branching-1)/2)*gap
				idx := len(nodes)
				nodes = append(nodes, Vec3{X: x, Y: y})
				edges = append(edges, Edge{From: parent, To: idx})
				next = append(next, idx)
			}
		}
		level = next
	}
	return &DiagramSpec{Shape: ShapeBox, NodeSize: 0.3, Nodes: nodes, Edges: edges}, nil
}

// buildTransformer stacks block rows from Top downward, LevelSpacing apart. Rows are wired by
// width: a single block fans out to or in from every block, equal widths pair one to one, and
// anything else is fully connected.
func buildTransformer(p Params, _ *rand.Rand) (*DiagramSpec, error) {
	var nodes []Vec3
	starts := make([]int, len(p.Blocks))
	for s, width := range p.Blocks {
		if width <= 0 {
			return nil, fmt.Errorf("%w: stage %d has width %d", ErrInvalidParams, s, width)
		}
		starts[s] = len(nodes)
		y := *p.Top - float32(s)*p.LevelSpacing
		for i := 0; i < width; i++ {
			x := float32(i)*p.BlockSpacing - float32(width-1)*p.BlockSpacing/2
			nodes = append(nodes, Vec3{X: x, Y: y})
		}
	}
	var edges []Edge
	for s := 0; s+1 < len(p.Blocks); s++ {
		a, b := p.Blocks[s], p.Blocks[s+1]
		switch {
		case a == b:
			for i := 0; i < a; i++ {
				edges = append(edges, Edge{From: starts[s] + i, To: starts[s+1] + i})
			}
		default:
			// Fan-out and fan-in are the a==1 and b==1 cases of a full bipartite wiring.
			for i := 0; i < a; i++ {
				for j := 0; j < b; j++ {
					edges = append(edges, Edge{From: starts[s] + i, To: starts[s+1] + j})
				}
			}
		}
	}
	return &DiagramSpec{Shape: ShapeBox, NodeSize: 0.6, Nodes: nodes, Edges: edges}, nil
}

// buildRegression scatters noisy points around Slope*x + Intercept and appends the two
// endpoints of the fitted line, joined by a single edge.
func buildRegression(p Params, rng *rand.Rand) (*DiagramSpec, error) {
	if p.PointCount < 1 || p.XMax < p.XMin {
		return nil, fmt.Errorf("%w: %d points over [%g, %g]", ErrInvalidParams, p.PointCount, p.XMin, p.XMax)
	}
	slope, intercept, noise := *p.Slope, *p.Intercept, *p.Noise
	nodes := make([]Vec3, 0, p.PointCount+2)
	for i := 0; i < p.PointCount; i++ {
		x := p.XMin + rng.Float32()*(p.XMax-p.XMin)
		y := slope*x + intercept + (rng.Float32()-0.5)*noise
		nodes = append(nodes, Vec3{X: x, Y: y})
	}
	fit, err := FitOLS(nodes)
	if err != nil {
		return nil, err
	}
	x0, x1 := p.XMin-p.LineOverhang, p.XMax+p.LineOverhang
	nodes = append(nodes, Vec3{X: x0, Y: fit.At(x0)}, Vec3{X: x1, Y: fit.At(x1)})
	return &DiagramSpec{
		Shape:    ShapePoint,
		NodeSize: 0.1,
		Nodes:    nodes,
		Edges:    []Edge{{From: p.PointCount, To: p.PointCount + 1}},
		Groups:   []Group{{Name: "samples", Start: 0, Count: p.PointCount, Color: p.Color}},
		Fit:      &fit,
	}, nil
}

// buildSigmoid samples y = 2σ(x) - 1 over [-SampleRange, SampleRange] as a polyline with
// X and Y axis guides.
func buildSigmoid(p Params, _ *rand.Rand) (*DiagramSpec, error) {
	if p.SampleStep <= 0 || p.SampleRange <= 0 {
		return nil, fmt.Errorf("%w: range %g, step %g", ErrInvalidParams, p.SampleRange, p.SampleStep)
	}
	n := int(math32.Round(2*p.SampleRange/p.SampleStep)) + 1
	nodes := make([]Vec3, n)
	edges := make([]Edge, 0, n-1)
	for i := range nodes {
		x := -p.SampleRange + float32(i)*p.SampleStep
		nodes[i] = Vec3{X: x, Y: 2/(1+math32.Exp(-x)) - 1}
		if i > 0 {
			edges = append(edges, Edge{From: i - 1, To: i})
		}
	}
	return &DiagramSpec{
		Shape: ShapeNone,
		Nodes: nodes,
		Edges: edges,
		Guides: []Segment{
			{From: Vec3{X: -p.SampleRange}, To: Vec3{X: p.SampleRange}},
			{From: Vec3{Y: -1.5}, To: Vec3{Y: 1.5}},
		},
	}, nil
}

// buildClustering samples each cluster uniformly in its sphere; each becomes one Group.
func buildClustering(p Params, rng *rand.Rand) (*DiagramSpec, error) {
	var nodes []Vec3
	groups := make([]Group, 0, len(p.Clusters))
	for i, c := range p.Clusters {
		if c.Count < 0 || c.Radius < 0 {
			return nil, fmt.Errorf("%w: cluster %d count %d radius %g", ErrInvalidParams, i, c.Count, c.Radius)
		}
		groups = append(groups, Group{Name: fmt.Sprintf("cluster-%d", i), Start: len(nodes), Count: c.Count, Color: c.Color})
		for j := 0; j < c.Count; j++ {
			nodes = append(nodes, SampleInSphere(rng, c.Center, c.Radius))
		}
	}
	return &DiagramSpec{Shape: ShapePoint, NodeSize: 0.1, Nodes: nodes, Groups: groups}, nil
}

// buildParticleShell scatters the ambient background particles around the origin.
func buildParticleShell(p Params, rng *rand.Rand) (*DiagramSpec, error) {
	if p.Count < 0 || p.MaxRadius < p.MinRadius {
		return nil, fmt.Errorf("%w: %d particles in [%g, %g]", ErrInvalidParams, p.Count, p.MinRadius, p.MaxRadius)
	}
	nodes := make([]Vec3, p.Count)
	for i := range nodes {
		nodes[i] = SampleInShell(rng, Vec3{}, p.MinRadius, p.MaxRadius)
	}
	return &DiagramSpec{Shape: ShapeSphere, NodeSize: 0.05, Nodes: nodes}, nil
}
