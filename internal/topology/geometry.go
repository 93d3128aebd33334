package topology

// Geometry holds flat vertex buffers derived once from a DiagramSpec, ready to hand to a
// renderer. Every vertex is three consecutive float32s (x, y, z).
type Geometry struct {
	// Points has one vertex per node.
	Points []float32
	// Segments has two vertices per valid edge.
	Segments []float32
	// Guides has two vertices per guide segment.
	Guides []float32
	// Dropped lists edges whose endpoints were out of range; they are not in Segments.
	Dropped []Edge
}

// NewGeometry flattens spec into vertex buffers. Malformed edges are skipped and recorded
// in Dropped instead of failing the whole diagram.
func NewGeometry(spec *DiagramSpec) Geometry {
	var g Geometry
	if spec == nil {
		return g
	}
	n := len(spec.Nodes)
	g.Points = make([]float32, 0, n*3)
	for _, v := range spec.Nodes {
		g.Points = append(g.Points, v.X, v.Y, v.Z)
	}
	g.Segments = make([]float32, 0, len(spec.Edges)*6)
	for _, e := range spec.Edges {
		if !e.Valid(n) {
			g.Dropped = append(g.Dropped, e)
			continue
		}
		a, b := spec.Nodes[e.From], spec.Nodes[e.To]
		g.Segments = append(g.Segments, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	for _, s := range spec.Guides {
		g.Guides = append(g.Guides, s.From.X, s.From.Y, s.From.Z, s.To.X, s.To.Y, s.To.Z)
	}
	return g
}

// VertexCount returns the number of node vertices.
func (g Geometry) VertexCount() int { return len(g.Points) / 3 }

// SegmentCount returns the number of drawable edge segments.
func (g Geometry) SegmentCount() int { return len(g.Segments) / 6 }

// IsEmpty reports whether there is nothing to draw.
func (g Geometry) IsEmpty() bool {
	return len(g.Points) == 0 && len(g.Guides) == 0
}
