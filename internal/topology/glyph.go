package topology

import "github.com/chewxy/math32"

// GlyphPart is one piece of a marker icon, in marker-local units where the marker sphere
// has radius 0.5. Roll rotates the part about Z, in radians. Wire parts are drawn as edges.
type GlyphPart struct {
	Shape  Shape
	Offset Vec3
	Size   Vec3
	Roll   float32
	Wire   bool
}

const (
	glyphDepth      = 0.3
	glyphArcRadius  = 0.2
	glyphArcBeads   = 13
	glyphArcBeadDia = 0.1
)

// Glyph returns the icon drawn on the face of a marker whose icon is a. Archetypes without
// an icon return nil.
func Glyph(a Archetype) []GlyphPart {
	front := Vec3{Z: glyphDepth}
	switch a {
	case NeuralNetwork:
		return []GlyphPart{{Shape: ShapeSphere, Offset: front, Size: Vec3{0.3, 0.3, 0.3}}}
	case DecisionTree:
		box := Vec3{0.1, 0.1, 0.1}
		return []GlyphPart{
			{Shape: ShapeBox, Offset: front.Add(Vec3{Y: 0.15}), Size: box},
			{Shape: ShapeBox, Offset: front.Add(Vec3{X: -0.15, Y: -0.15}), Size: box},
			{Shape: ShapeBox, Offset: front.Add(Vec3{X: 0.15, Y: -0.15}), Size: box},
		}
	case LinearRegression:
		return []GlyphPart{{Shape: ShapeBox, Offset: front, Size: Vec3{0.4, 0.05, 0.05}, Roll: math32.Pi / 4}}
	case Sigmoid:
		// Half torus, traced as beads along the upper arc.
		parts := make([]GlyphPart, glyphArcBeads)
		bead := Vec3{glyphArcBeadDia, glyphArcBeadDia, glyphArcBeadDia}
		for i := range parts {
			theta := math32.Pi * float32(i) / float32(glyphArcBeads-1)
			at := Vec3{X: glyphArcRadius * math32.Cos(theta), Y: glyphArcRadius * math32.Sin(theta)}
			parts[i] = GlyphPart{Shape: ShapeSphere, Offset: front.Add(at), Size: bead}
		}
		return parts
	case Transformer:
		return []GlyphPart{{Shape: ShapeBox, Offset: front, Size: Vec3{0.25, 0.25, 0.25}, Wire: true}}
	}
	return nil
}
