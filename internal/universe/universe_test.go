package universe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ml-universe/internal/animation"
	"ml-universe/internal/config"
	"ml-universe/internal/loading"
	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
)

func flatRegression() config.Diagram {
	return config.Diagram{
		Archetype: topology.LinearRegression,
		Params:    topology.Params{Name: "flat", XMin: 1, XMax: 1, Placement: topology.Placement{Scale: 1}},
	}
}

func newTestUniverse(t *testing.T, cfg *config.Config) *Universe {
	t.Helper()
	u, err := New(cfg, nil)
	require.NoError(t, err)
	return u
}

func TestNewMountsDefaults(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	require.Len(t, u.Diagrams(), 6)
	assert.Empty(t, u.Omitted())

	names := make([]string, 0, 6)
	for _, m := range u.Diagrams() {
		names = append(names, m.Spec.Name)
		assert.False(t, m.Geometry.IsEmpty())
	}
	assert.Equal(t, []string{"neural-network", "decision-tree", "linear-regression", "sigmoid", "clustering", "transformer"}, names)
	assert.Equal(t, 84, u.Diagrams()[0].Geometry.SegmentCount())

	shell, geo := u.Particles()
	require.NotNil(t, shell)
	assert.Equal(t, 200, geo.VertexCount())
	assert.False(t, u.Controller().State().Narrow)
}

func TestNewOmitsBrokenDiagram(t *testing.T) {
	cfg := config.Default()
	cfg.Diagrams = append(cfg.Diagrams, flatRegression())
	u := newTestUniverse(t, cfg)
	assert.Len(t, u.Diagrams(), 6)
	assert.Equal(t, []string{"flat"}, u.Omitted())

	f := u.Step(0)
	assert.Len(t, f.Diagrams, 6)
}

func TestNewStrictReturnsBuildError(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	cfg.Diagrams = append(cfg.Diagrams, flatRegression())
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, topology.ErrDegenerateFit)
}

func TestNewDoesNotAliasConfig(t *testing.T) {
	cfg := config.Default()
	u := newTestUniverse(t, cfg)
	cfg.Markers[0].Label = "changed"
	assert.Equal(t, "About", u.Markers()[0].Label)
}

func TestResizeRescalesWithoutRebuilding(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	base := u.Diagrams()[1].Base

	vp := u.Resize(500)
	assert.True(t, vp.Narrow)
	assert.Equal(t, float32(20), vp.CameraDistance)
	assert.Equal(t, float32(0.8), u.Diagrams()[0].Spec.Placement.Scale)
	assert.Equal(t, float32(0.6), u.Diagrams()[1].Spec.Placement.Scale)
	assert.Same(t, base, u.Diagrams()[1].Base)
	assert.Equal(t, float32(1), base.Placement.Scale)

	_, geo := u.Particles()
	assert.Equal(t, 100, geo.VertexCount())

	f := u.Step(0)
	d, ok := f.Diagram("decision-tree")
	require.True(t, ok)
	assert.Equal(t, float32(0.6), d.Scale)

	u.Resize(1024)
	assert.Equal(t, float32(0.8), u.Diagrams()[1].Spec.Placement.Scale)
	_, geo = u.Particles()
	assert.Equal(t, 200, geo.VertexCount())
}

func TestPlacementScaleMultipliesResponsiveScale(t *testing.T) {
	cfg := config.Default()
	cfg.Diagrams[3].Placement.Scale = 2
	u := newTestUniverse(t, cfg)
	assert.Equal(t, float32(1.6), u.Diagrams()[3].Spec.Placement.Scale)
}

func TestStepCarriesState(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	f1 := u.Step(0)
	f2 := u.Step(1.0 / 60)
	assert.Equal(t, f1.Carry.UniverseSpin, f2.Carry.UniverseSpin)
	assert.False(t, f2.Visible)
	assert.Equal(t, f2, u.Frame())

	u.Controller().MarkLoaded(1)
	f3 := u.Step(2)
	f4 := u.Step(2 + 1.0/60)
	assert.True(t, f3.Visible)
	assert.Len(t, f3.Markers, 5)
	assert.Greater(t, f4.Carry.UniverseSpin, f3.Carry.UniverseSpin)
}

func TestLoadSequenceRevealsScene(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	seq := loading.Start(context.Background(), loading.Options{Delay: 20 * time.Millisecond, Interval: time.Millisecond, MaxStep: 5}, nil, nil)
	defer seq.Stop()

	f := u.Step(0)
	assert.False(t, f.Visible)
	assert.InDelta(t, animation.EntryStartScale, f.Scale, 1e-6)

	select {
	case <-seq.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load timer did not fire")
	}
	const loadedAt = 3
	u.Controller().MarkLoaded(loadedAt)
	f = u.Step(loadedAt)
	assert.True(t, f.Visible)
	assert.InDelta(t, animation.EntryStartScale, f.Scale, 0.01)

	f = u.Step(loadedAt + animation.EntryDuration/2)
	assert.Greater(t, f.Scale, float32(animation.EntryStartScale))
	assert.Less(t, f.Scale, float32(1))

	f = u.Step(loadedAt + animation.EntryDuration)
	assert.True(t, f.Visible)
	assert.InDelta(t, 1, f.Scale, animation.UniverseBreath)
	assert.InDelta(t, float64(animation.UniverseSpinStep)*3, f.Spin, 1e-6)
}

func TestSeedMakesSceneReproducible(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 9
	a := newTestUniverse(t, cfg)
	b := newTestUniverse(t, cfg)
	for i := range a.Diagrams() {
		assert.Equal(t, a.Diagrams()[i].Base.Nodes, b.Diagrams()[i].Base.Nodes)
	}
	sa, _ := a.Particles()
	sb, _ := b.Particles()
	assert.Equal(t, sa.Nodes, sb.Nodes)
}

func TestPanelFollowsActiveSection(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	_, ok := u.Panel()
	assert.False(t, ok)

	require.NoError(t, u.Controller().SelectSection(nav.SectionProjects))
	p, ok := u.Panel()
	require.True(t, ok)
	assert.Equal(t, nav.SectionProjects, p.Section)
	assert.Len(t, p.Records, 4)
}

func TestReconfigureKeepsUnchangedDiagrams(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	require.NoError(t, u.Controller().SelectSection(nav.SectionAbout))
	base := u.Diagrams()[0].Base

	cfg := config.Default()
	cfg.Markers[1].Label = "Work"
	require.NoError(t, u.Reconfigure(cfg))
	assert.Same(t, base, u.Diagrams()[0].Base)
	assert.Equal(t, "Work", u.Markers()[1].Label)
	assert.Equal(t, nav.SectionAbout, u.Controller().State().Active)
}

func TestReconfigureRebuildsChangedDiagram(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	cfg := config.Default()
	cfg.Diagrams[0].LayerSizes = []int{2, 2}
	require.NoError(t, u.Reconfigure(cfg))
	assert.Equal(t, 4, u.Diagrams()[0].Base.NodeCount())
	assert.Equal(t, 4, u.Diagrams()[0].Geometry.SegmentCount())
}

func TestReconfigureLayout(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	cfg := config.Default()
	cfg.Layout.Breakpoint = 2000
	require.NoError(t, u.Reconfigure(cfg))
	assert.True(t, u.Controller().State().Narrow)
	assert.Equal(t, float32(0.8), u.Diagrams()[0].Spec.Placement.Scale)
}

func TestReconfigureStrictFailureKeepsScene(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	u := newTestUniverse(t, cfg)
	u.Resize(500)
	library := u.Library()
	before := append([]Mounted(nil), u.Diagrams()...)

	aboutOnly := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(aboutOnly, []byte("panels:\n  - section: about\n    title: About\n    records: []\n"), 0o644))
	bad := config.Default()
	bad.Strict = true
	bad.Content = aboutOnly
	bad.Diagrams = append(bad.Diagrams, flatRegression())

	err := u.Reconfigure(bad)
	assert.ErrorIs(t, err, topology.ErrDegenerateFit)
	assert.Same(t, library, u.Library())
	assert.Empty(t, u.Config().Content)
	assert.Len(t, u.Config().Diagrams, 6)

	require.Len(t, u.Diagrams(), len(before))
	require.Len(t, u.specs, len(before))
	for i, m := range u.Diagrams() {
		assert.Same(t, before[i].Base, m.Base, m.Base.Name)
		assert.Same(t, before[i].Spec, m.Spec, m.Base.Name)
		assert.Same(t, m.Spec, u.specs[i], m.Base.Name)
	}
	assert.Equal(t, float32(0.6), u.Diagrams()[1].Spec.Placement.Scale)
	assert.Equal(t, before[4].Base.Nodes[0], u.Diagrams()[4].Base.Nodes[0])

	p, ok := u.Library().Panel(nav.SectionProjects)
	require.True(t, ok)
	assert.NotEmpty(t, p.Records)
}

func TestReconfigureContentErrorKeepsLibrary(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	library := u.Library()
	bad := config.Default()
	bad.Content = filepath.Join(t.TempDir(), "missing.yaml")
	bad.Diagrams[0].LayerSizes = []int{2, 2}

	require.Error(t, u.Reconfigure(bad))
	assert.Same(t, library, u.Library())
	assert.Equal(t, 20, u.Diagrams()[0].Base.NodeCount())
}

func TestHeadingFollowsSceneScale(t *testing.T) {
	u := newTestUniverse(t, config.Default())
	assert.Empty(t, u.Heading(u.Step(0)))

	u.Controller().MarkLoaded(0)
	f := u.Step(10)
	lines := u.Heading(f)
	require.Len(t, lines, 2)
	assert.Equal(t, "Hamid Rezaee", lines[0].Text)
	assert.Equal(t, "#8a8aff", lines[1].Color)
	assert.InDelta(t, 6*f.Scale, lines[0].Position.Y, 1e-5)
	assert.InDelta(t, f.Scale, lines[0].Size, 1e-5)
	assert.InDelta(t, 0.5*f.Scale, lines[1].Size, 1e-5)

	u.Resize(500)
	narrow := u.Heading(f)
	require.Len(t, narrow, 2)
	assert.InDelta(t, 0.8*f.Scale, narrow[0].Size, 1e-5)
	assert.InDelta(t, 0.4*f.Scale, narrow[1].Size, 1e-5)
	assert.Equal(t, lines[0].Position, narrow[0].Position)
}

func TestHeadingSkipsEmptyLines(t *testing.T) {
	cfg := config.Default()
	cfg.Heading.Subtitle = ""
	u := newTestUniverse(t, cfg)
	u.Controller().MarkLoaded(0)
	lines := u.Heading(u.Step(1))
	require.Len(t, lines, 1)
	assert.Equal(t, "Hamid Rezaee", lines[0].Text)
}
