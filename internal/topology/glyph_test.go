package topology

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphPerIcon(t *testing.T) {
	tests := []struct {
		icon  Archetype
		parts int
		shape Shape
	}{
		{NeuralNetwork, 1, ShapeSphere},
		{DecisionTree, 3, ShapeBox},
		{LinearRegression, 1, ShapeBox},
		{Sigmoid, 13, ShapeSphere},
		{Transformer, 1, ShapeBox},
	}
	for _, tt := range tests {
		t.Run(string(tt.icon), func(t *testing.T) {
			parts := Glyph(tt.icon)
			require.Len(t, parts, tt.parts)
			for _, p := range parts {
				assert.Equal(t, tt.shape, p.Shape)
				assert.InDelta(t, 0.3, p.Offset.Z, 1e-6, "glyph sits in front of the marker")
			}
		})
	}
	assert.Nil(t, Glyph(Clustering))
	assert.Nil(t, Glyph("hologram"))
}

func TestGlyphShapes(t *testing.T) {
	bar := Glyph(LinearRegression)[0]
	assert.InDelta(t, math32.Pi/4, bar.Roll, 1e-6)
	assert.Equal(t, Vec3{0.4, 0.05, 0.05}, bar.Size)

	assert.True(t, Glyph(Transformer)[0].Wire)

	arc := Glyph(Sigmoid)
	for _, p := range arc {
		r := math32.Hypot(p.Offset.X, p.Offset.Y)
		assert.InDelta(t, 0.2, r, 1e-5)
		assert.GreaterOrEqual(t, p.Offset.Y, float32(-1e-6))
	}
	assert.InDelta(t, 0.2, arc[0].Offset.X, 1e-6)
	assert.InDelta(t, -0.2, arc[len(arc)-1].Offset.X, 1e-6)
}
