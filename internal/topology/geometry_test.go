package topology

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometrySkipsMalformedEdges(t *testing.T) {
	spec := &DiagramSpec{
		Nodes: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Edges: []Edge{{0, 1}, {1, 5}, {2, 0}, {-1, 2}},
		Guides: []Segment{
			{From: Vec3{X: -1}, To: Vec3{X: 1}},
		},
	}
	g := NewGeometry(spec)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.SegmentCount())
	assert.Equal(t, []Edge{{1, 5}, {-1, 2}}, g.Dropped)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0}, g.Segments)
	assert.Len(t, g.Guides, 6)
	assert.False(t, g.IsEmpty())
}

func TestGeometryOfNetwork(t *testing.T) {
	g := NewGeometry(MustBuild(NeuralNetwork, Params{}))
	assert.Equal(t, 20, g.VertexCount())
	assert.Equal(t, 84, g.SegmentCount())
	assert.Empty(t, g.Dropped)
}

func TestGeometryOfNil(t *testing.T) {
	g := NewGeometry(nil)
	assert.True(t, g.IsEmpty())
	assert.Zero(t, g.SegmentCount())
}

func TestSampleInSphereStaysInside(t *testing.T) {
	rng := newRand(1)
	center := Vec3{1, 2, 3}
	for i := 0; i < 2000; i++ {
		p := SampleInSphere(rng, center, 0.8)
		require.LessOrEqual(t, dist(p, center), float32(0.8)+1e-4)
	}
}

func TestSampleInSphereFillsVolume(t *testing.T) {
	// With uniform volume density, half the points fall inside radius R/cbrt(2).
	rng := rand.New(rand.NewPCG(3, 4))
	inner := 0
	const n = 4000
	for i := 0; i < n; i++ {
		if dist(SampleInSphere(rng, Vec3{}, 1), Vec3{}) < 0.7937 {
			inner++
		}
	}
	assert.InDelta(t, 0.5, float64(inner)/n, 0.05)
}
