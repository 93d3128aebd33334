package animation

import (
	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
)

// Carry is the state one frame hands to the next: accumulators that advance by a fixed
// step per tick and the smoothed marker scales. Slices are indexed like Input.Markers.
type Carry struct {
	UniverseSpin float32
	ParticleRotX float32
	ParticleRotY float32
	MarkerScale  []float32
	MarkerSpin   []float32
}

// Input is everything Tick reads. Prev is the Carry of the previous frame, or the zero
// value on the first tick.
type Input struct {
	Elapsed  float32
	UI       nav.State
	Diagrams []*topology.DiagramSpec
	Markers  []nav.Marker
	Prev     Carry
}

// Frame is the transient render state for one tick.
type Frame struct {
	Elapsed float32
	// Visible is false until loading completes.
	Visible bool
	// Scale is the whole-universe scale: entry transition, breathing and any pop effect.
	Scale float32
	// Spin is the universe yaw in [0, 2π), plus any spin effect.
	Spin      float32
	Particles ParticleFrame
	Diagrams  []DiagramFrame
	Markers   []MarkerFrame
	// Skipped names diagrams left out of this frame because they have no nodes.
	Skipped []string
	Carry   Carry
}

// ParticleFrame is the rotation of the ambient particle shell.
type ParticleFrame struct {
	RotX    float32
	RotY    float32
	Opacity float32
}

// DiagramFrame is one diagram's transform and material values for a tick.
type DiagramFrame struct {
	// Index is the diagram's position in Input.Diagrams.
	Index        int
	Name         string
	Archetype    topology.Archetype
	Position     topology.Vec3
	Yaw          float32
	Scale        float32
	Pulse        float32
	EdgeOpacity  float32
	GuideOpacity float32
	NodeEmissive float32
	Highlighted  bool
	// Groups holds per-group point size and opacity, indexed like DiagramSpec.Groups.
	Groups      []GroupFrame
	ActiveGroup int
}

// GroupFrame is the point style of one node group.
type GroupFrame struct {
	Pulse     float32
	PointSize float32
	Opacity   float32
}

// MarkerFrame is one navigation marker's transform and glow for a tick.
type MarkerFrame struct {
	Section      nav.Section
	Label        string
	Icon         topology.Archetype
	Color        string
	Position     topology.Vec3
	Yaw          float32
	Scale        float32
	Emissive     float32
	LabelVisible bool
	Hovered      bool
	Active       bool
}

// Marker returns the frame for section s.
func (f Frame) Marker(s nav.Section) (MarkerFrame, bool) {
	for _, m := range f.Markers {
		if m.Section == s {
			return m, true
		}
	}
	return MarkerFrame{}, false
}

// Diagram returns the frame for the diagram named name.
func (f Frame) Diagram(name string) (DiagramFrame, bool) {
	for _, d := range f.Diagrams {
		if d.Name == name {
			return d, true
		}
	}
	return DiagramFrame{}, false
}
