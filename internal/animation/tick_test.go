package animation

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
)

func diagrams(t *testing.T) []*topology.DiagramSpec {
	t.Helper()
	var out []*topology.DiagramSpec
	for _, a := range []topology.Archetype{
		topology.NeuralNetwork, topology.DecisionTree, topology.Transformer,
		topology.LinearRegression, topology.Sigmoid, topology.Clustering,
	} {
		spec, err := topology.Build(a, topology.Params{Seed: 1})
		require.NoError(t, err)
		out = append(out, spec)
	}
	return out
}

func input(t *testing.T, elapsed float32) Input {
	return Input{
		Elapsed:  elapsed,
		UI:       nav.State{Loaded: true},
		Diagrams: diagrams(t),
		Markers:  nav.DefaultMarkers(),
	}
}

func TestTickIsDeterministic(t *testing.T) {
	in := input(t, 7.3)
	in.Prev = Carry{UniverseSpin: 1, MarkerScale: []float32{1, 1.1, 1, 1, 1}, MarkerSpin: []float32{0, 0, 0, 0, 0}}
	in.UI.Hovered = nav.SectionSkills
	a := Tick(in)
	b := Tick(in)
	assert.Equal(t, a, b)
	assert.Equal(t, []float32{1, 1.1, 1, 1, 1}, in.Prev.MarkerScale, "Tick must not mutate its input")
}

func TestClusterPhases(t *testing.T) {
	for _, tc := range []struct {
		t     float32
		phase int
	}{
		{0, 0}, {4.9, 0}, {5, 1}, {10, 2}, {15, 0}, {31, 0},
	} {
		assert.Equal(t, tc.phase, ClusterPhaseAt(tc.t, 3), "t=%v", tc.t)
	}
	assert.Equal(t, 2, ClusterPhaseAt(-1, 3))
	assert.Equal(t, -1, ClusterPhaseAt(3, 0))
}

func TestClusterGroupPulse(t *testing.T) {
	f := Tick(input(t, 12.5))
	d, ok := f.Diagram("clustering")
	require.True(t, ok)
	require.Equal(t, 2, d.ActiveGroup)
	require.Len(t, d.Groups, 3)

	p := Pulse(12.5, ClusterPulseSpeed)
	assert.InDelta(t, 0.08+p*0.04, d.Groups[2].PointSize, 1e-6)
	assert.InDelta(t, 0.1, d.Groups[0].PointSize, 1e-6)
	assert.InDelta(t, 0.1, d.Groups[1].PointSize, 1e-6)
	assert.InDelta(t, PointOpacity, d.Groups[0].Opacity, 1e-6)
}

func TestEdgeOpacityPulses(t *testing.T) {
	const at = 1.2
	f := Tick(input(t, at))
	p2 := math32.Sin(at*2)*0.5 + 0.5
	p15 := math32.Sin(at*1.5)*0.5 + 0.5

	for name, want := range map[string]float32{
		"neural-network":    0.2 + p2*0.8,
		"transformer":       0.2 + p2*0.8,
		"linear-regression": 0.5 + p2*0.5,
		"sigmoid":           0.5 + p15*0.5,
		"decision-tree":     StaticEdgeOpacity,
	} {
		d, ok := f.Diagram(name)
		require.True(t, ok, name)
		assert.InDelta(t, want, d.EdgeOpacity, 1e-6, name)
		assert.InDelta(t, math32.Sin(at*0.1)*0.2, d.Yaw, 1e-6, name)
	}
}

func TestPulseRange(t *testing.T) {
	for ts := float32(0); ts < 20; ts += 0.37 {
		p := Pulse(ts, EdgePulseSpeed)
		assert.GreaterOrEqual(t, p, float32(0))
		assert.LessOrEqual(t, p, float32(1))
	}
}

func TestTreeBreathing(t *testing.T) {
	at := math32.Pi // sin(at*0.5) == 1
	f := Tick(input(t, at))
	d, ok := f.Diagram("decision-tree")
	require.True(t, ok)
	assert.InDelta(t, 1.05, d.Scale, 1e-5)
}

func TestUniverseSpinAccumulatesAndWraps(t *testing.T) {
	in := input(t, 0)
	f := Tick(in)
	assert.InDelta(t, 0.001, f.Spin, 1e-7)

	in.Prev = f.Carry
	f = Tick(in)
	assert.InDelta(t, 0.002, f.Spin, 1e-7)

	in.Prev = Carry{UniverseSpin: tau - 0.0005}
	f = Tick(in)
	assert.InDelta(t, 0.0005, f.Spin, 1e-4)
	assert.Less(t, f.Spin, float32(tau))
}

func TestParticlesRotate(t *testing.T) {
	in := input(t, 0)
	in.Prev = Carry{ParticleRotX: 1, ParticleRotY: 2}
	f := Tick(in)
	assert.InDelta(t, 1.0003, f.Particles.RotX, 1e-6)
	assert.InDelta(t, 2.0005, f.Particles.RotY, 1e-6)
}

func TestUniverseHoldsStillUntilLoaded(t *testing.T) {
	in := input(t, 2)
	in.UI = nav.State{}
	var f Frame
	for i := 0; i < 10; i++ {
		f = Tick(in)
		in.Prev = f.Carry
	}
	assert.Zero(t, f.Spin)
	assert.Zero(t, f.Particles.RotX)
	assert.Zero(t, f.Particles.RotY)
	assert.Equal(t, float32(EntryStartScale), f.Scale)

	in.UI = nav.State{Loaded: true, LoadedAt: 2}
	f = Tick(in)
	assert.InDelta(t, UniverseSpinStep, f.Spin, 1e-7)
	assert.InDelta(t, ParticleSpinStepX, f.Particles.RotX, 1e-7)
}

func TestMarkerHoverSmoothing(t *testing.T) {
	in := input(t, 0)
	in.UI.Hovered = nav.SectionAbout

	f := Tick(in)
	about, _ := f.Marker(nav.SectionAbout)
	projects, _ := f.Marker(nav.SectionProjects)
	assert.InDelta(t, 1.02, about.Scale, 1e-6)
	assert.InDelta(t, 1, projects.Scale, 1e-6)
	assert.True(t, about.LabelVisible)
	assert.False(t, projects.LabelVisible)
	assert.Equal(t, float32(MarkerGlow), about.Emissive)
	assert.Equal(t, float32(MarkerIdleGlow), projects.Emissive)

	for i := 0; i < 200; i++ {
		in.Prev = f.Carry
		f = Tick(in)
	}
	about, _ = f.Marker(nav.SectionAbout)
	assert.InDelta(t, 1.2, about.Scale, 1e-3)

	in.UI.Hovered = nav.SectionNone
	in.Prev = f.Carry
	f = Tick(in)
	about, _ = f.Marker(nav.SectionAbout)
	assert.Less(t, about.Scale, float32(1.2))
	assert.Greater(t, about.Scale, float32(1.0))
	assert.False(t, about.LabelVisible)
}

func TestActiveMarkerGrowsWithoutGlow(t *testing.T) {
	in := input(t, 0)
	in.UI.Active = nav.SectionContact
	f := Tick(in)
	m, ok := f.Marker(nav.SectionContact)
	require.True(t, ok)
	assert.True(t, m.Active)
	assert.InDelta(t, 1.02, m.Scale, 1e-6)
	assert.Equal(t, float32(MarkerIdleGlow), m.Emissive)
	assert.Equal(t, "#ff9e4a", m.Color)
}

func TestMarkerBobAndSpin(t *testing.T) {
	const at = 0.7
	in := input(t, at)
	in.Prev = Carry{MarkerSpin: []float32{0.5}}
	f := Tick(in)
	about := f.Markers[0]
	assert.InDelta(t, 2.5+math32.Sin(at)*0.1, about.Position.Y, 1e-6)
	assert.InDelta(t, 0.51, about.Yaw, 1e-6)
	assert.InDelta(t, 0.01, f.Markers[1].Yaw, 1e-6)
}

func TestEntryTransition(t *testing.T) {
	in := input(t, 0)
	in.UI = nav.State{}
	f := Tick(in)
	assert.False(t, f.Visible)
	assert.InDelta(t, 0.1, f.Scale, 1e-6)

	assert.InDelta(t, 0.1, EntryScale(true, 3, 3), 1e-6)
	mid := EntryScale(true, 3, 3.25)
	assert.Greater(t, mid, float32(0.1))
	assert.Less(t, mid, float32(1))
	assert.InDelta(t, 1, EntryScale(true, 3, 3.5), 1e-6)
	assert.InDelta(t, 1, EntryScale(true, 3, 60), 1e-6)

	in.UI = nav.State{Loaded: true, LoadedAt: 0}
	in.Elapsed = math32.Pi
	f = Tick(in)
	assert.True(t, f.Visible)
	assert.InDelta(t, 1, f.Scale, 1e-5)
}

func TestZeroNodeDiagramIsSkipped(t *testing.T) {
	in := input(t, 1)
	in.Diagrams = append(in.Diagrams, &topology.DiagramSpec{Name: "broken", Archetype: topology.NeuralNetwork}, nil)
	f := Tick(in)
	assert.Len(t, f.Diagrams, 6)
	assert.Equal(t, []string{"broken", "diagram-7"}, f.Skipped)
	_, ok := f.Diagram("broken")
	assert.False(t, ok)
}

func TestHoveredMarkerHighlightsMatchingDiagram(t *testing.T) {
	in := input(t, 1)
	in.UI.Hovered = nav.SectionProjects
	f := Tick(in)
	network, _ := f.Diagram("neural-network")
	tree, _ := f.Diagram("decision-tree")
	assert.True(t, network.Highlighted)
	assert.Equal(t, float32(HighlightEmissive), network.NodeEmissive)
	assert.False(t, tree.Highlighted)
	assert.Equal(t, float32(NodeEmissive), tree.NodeEmissive)
}

func TestBackgroundEffects(t *testing.T) {
	base := Tick(input(t, 2))

	in := input(t, 2)
	in.UI.Effect = nav.Effect{Kind: nav.EffectPop, At: 1.5, Active: true}
	pop := Tick(in)
	assert.InDelta(t, base.Scale*1.05, pop.Scale, 1e-5)

	in.UI.Effect = nav.Effect{Kind: nav.EffectFlash, At: 2, Active: true}
	flash := Tick(in)
	d, _ := flash.Diagram("decision-tree")
	assert.InDelta(t, StaticEdgeOpacity+EffectFlashOpacity, d.EdgeOpacity, 1e-6)

	in.UI.Effect = nav.Effect{Kind: nav.EffectSpin, At: 0.5, Active: true}
	expired := Tick(in)
	assert.Equal(t, base.Spin, expired.Spin)
}
