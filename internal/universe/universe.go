package universe

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"ml-universe/internal/animation"
	"ml-universe/internal/config"
	"ml-universe/internal/content"
	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
)

// Mounted is one diagram that built successfully, with its geometry flattened once.
// Spec carries the responsive scale; Base is the topology as built from config.
type Mounted struct {
	Spec     *topology.DiagramSpec
	Base     *topology.DiagramSpec
	Geometry topology.Geometry
	Primary  bool
}

// Universe holds the mounted scene and the state carried between frames. Like the
// Controller it owns, it belongs to the frame loop goroutine.
type Universe struct {
	cfg      *config.Config
	log      *zap.Logger
	ctrl     *nav.Controller
	library  *content.Library
	diagrams []Mounted
	specs    []*topology.DiagramSpec
	omitted  []string

	particles    *topology.DiagramSpec
	particleGeo  topology.Geometry
	particleSize int

	carry   animation.Carry
	frame   animation.Frame
	skipped map[string]bool
}

// New mounts every diagram in cfg and sizes the scene for cfg.Window.Width. A diagram that
// fails to build is logged and left out; with cfg.Strict the first such error is returned.
// cfg is cloned, so later changes by the caller have no effect.
func New(cfg *config.Config, log *zap.Logger) (*Universe, error) {
	if log == nil {
		log = zap.NewNop()
	}
	own, err := config.Clone(cfg)
	if err != nil {
		return nil, fmt.Errorf("universe: clone config: %w", err)
	}
	library, err := loadContent(own.Content)
	if err != nil {
		return nil, err
	}
	u := &Universe{
		cfg:     own,
		log:     log,
		library: library,
		ctrl:    nav.NewController(own.Layout, own.Markers, log.Named("nav")),
		skipped: make(map[string]bool),
	}
	u.ctrl.OnChange(func(prev, next nav.Section) {
		u.log.Info("section", zap.Stringer("from", prev), zap.Stringer("to", next))
	})
	u.diagrams, u.omitted, err = u.mount(own)
	if err != nil {
		return nil, err
	}
	u.Resize(int(own.Window.Width))
	return u, nil
}

func loadContent(path string) (*content.Library, error) {
	if path == "" {
		return content.Default()
	}
	return content.LoadFile(path)
}

// mount builds every diagram in cfg from the unscaled params. Nothing on u changes, so a
// failed rebuild leaves the running scene alone.
func (u *Universe) mount(cfg *config.Config) ([]Mounted, []string, error) {
	var (
		diagrams []Mounted
		omitted  []string
	)
	for i, d := range cfg.Diagrams {
		p := d.Params
		if p.Seed == 0 && cfg.Seed != 0 {
			p.Seed = cfg.Seed + int64(i) + 1
		}
		spec, err := topology.Build(d.Archetype, p)
		if err != nil {
			if cfg.Strict {
				return nil, nil, fmt.Errorf("universe: diagram %d: %w", i, err)
			}
			name := d.Name
			if name == "" {
				name = string(d.Archetype)
			}
			u.log.Error("diagram omitted", zap.String("diagram", name), zap.Error(err))
			omitted = append(omitted, name)
			continue
		}
		geo := topology.NewGeometry(spec)
		if len(geo.Dropped) > 0 {
			u.log.Warn("malformed edges dropped", zap.String("diagram", spec.Name), zap.Int("count", len(geo.Dropped)))
		}
		diagrams = append(diagrams, Mounted{Spec: spec, Base: spec, Geometry: geo, Primary: d.Primary})
		u.log.Debug("diagram mounted",
			zap.String("diagram", spec.Name),
			zap.Int("nodes", geo.VertexCount()),
			zap.Int("edges", geo.SegmentCount()),
			zap.Int64("seed", spec.Seed),
		)
	}
	return diagrams, omitted, nil
}

// Resize applies the device class for a window width: camera distance, diagram scales and
// particle count. Diagrams are rescaled, never rebuilt; the particle shell is rebuilt only
// when its count changes.
func (u *Universe) Resize(width int) nav.Viewport {
	vp, changed := u.ctrl.Resize(width)
	if changed {
		u.relayout(vp)
	}
	return vp
}

func (u *Universe) relayout(vp nav.Viewport) {
	u.specs = make([]*topology.DiagramSpec, 0, len(u.diagrams))
	for i := range u.diagrams {
		m := &u.diagrams[i]
		scaled := *m.Base
		responsive := vp.SecondaryScale
		if m.Primary {
			responsive = vp.PrimaryScale
		}
		scaled.Placement.Scale = responsive * m.Base.Placement.Scale
		m.Spec = &scaled
		u.specs = append(u.specs, m.Spec)
	}
	if vp.ParticleCount != u.particleSize || u.particles == nil {
		u.buildParticles(vp.ParticleCount)
	}
	u.log.Debug("relayout", zap.Int("width", vp.Width), zap.Bool("narrow", vp.Narrow))
}

func (u *Universe) buildParticles(count int) {
	u.particleSize = count
	u.particles, u.particleGeo = nil, topology.Geometry{}
	if count <= 0 {
		return
	}
	p := u.cfg.Particles
	p.Count = count
	if p.Seed == 0 && u.cfg.Seed != 0 {
		p.Seed = u.cfg.Seed
	}
	spec, err := topology.Build(topology.ParticleShell, p)
	if err != nil {
		u.log.Error("particle shell omitted", zap.Error(err))
		return
	}
	u.particles = spec
	u.particleGeo = topology.NewGeometry(spec)
}

// Step advances one frame to elapsed seconds and returns it.
func (u *Universe) Step(elapsed float32) animation.Frame {
	f := animation.Tick(animation.Input{
		Elapsed:  elapsed,
		UI:       u.ctrl.State(),
		Diagrams: u.specs,
		Markers:  u.cfg.Markers,
		Prev:     u.carry,
	})
	for _, name := range f.Skipped {
		if !u.skipped[name] {
			u.skipped[name] = true
			u.log.Warn("diagram has no nodes, skipping", zap.String("diagram", name))
		}
	}
	u.carry = f.Carry
	u.frame = f
	return f
}

// Reconfigure applies a reloaded config. Diagrams are rebuilt only when their settings
// changed; markers, layout and the rest are swapped in place and UI state is kept. On error
// the running scene, content and config are left exactly as they were.
func (u *Universe) Reconfigure(cfg *config.Config) error {
	own, err := config.Clone(cfg)
	if err != nil {
		return fmt.Errorf("universe: clone config: %w", err)
	}
	prev := u.cfg
	library := u.library
	if own.Content != prev.Content {
		if library, err = loadContent(own.Content); err != nil {
			return err
		}
	}
	diagrams, omitted := u.diagrams, u.omitted
	rebuild := !reflect.DeepEqual(prev.Diagrams, own.Diagrams) || prev.Seed != own.Seed || prev.Strict != own.Strict
	if rebuild {
		if diagrams, omitted, err = u.mount(own); err != nil {
			return err
		}
	}

	u.cfg, u.library = own, library
	if rebuild {
		u.diagrams, u.omitted = diagrams, omitted
		clear(u.skipped)
	}
	if !reflect.DeepEqual(prev.Markers, own.Markers) {
		u.ctrl.SetMarkers(own.Markers)
		u.carry.MarkerScale, u.carry.MarkerSpin = nil, nil
	}
	if prev.Seed != own.Seed || !reflect.DeepEqual(prev.Particles, own.Particles) {
		u.particles = nil
	}
	vp := u.ctrl.SetLayout(own.Layout)
	u.relayout(vp)
	u.log.Info("config applied", zap.Bool("rebuilt", rebuild), zap.Int("diagrams", len(u.diagrams)))
	return nil
}

// HeadingLine is one line of the heading: Position is its center in world space and Size
// the world height of its glyphs.
type HeadingLine struct {
	Text     string
	Color    string
	Position topology.Vec3
	Size     float32
}

// Heading lays out the title and subtitle for frame f. Both lines sit on the spin axis, so
// only the universe scale moves them. Nothing is returned before the scene is visible.
func (u *Universe) Heading(f animation.Frame) []HeadingLine {
	if !f.Visible {
		return nil
	}
	h := u.cfg.Heading
	size := f.Scale
	if u.ctrl.State().Narrow {
		size *= h.NarrowScale
	}
	var lines []HeadingLine
	add := func(text, color string, height, em float32) {
		if text == "" || em <= 0 {
			return
		}
		lines = append(lines, HeadingLine{
			Text:     text,
			Color:    color,
			Position: topology.Vec3{Y: height * f.Scale},
			Size:     em * size,
		})
	}
	add(h.Text, h.Color, h.Height, h.Size)
	add(h.Subtitle, h.SubtitleColor, h.SubtitleHeight, h.SubtitleSize)
	return lines
}

// Controller returns the UI state machine for input handling.
func (u *Universe) Controller() *nav.Controller { return u.ctrl }

// Config returns the active configuration. Callers must not modify it.
func (u *Universe) Config() *config.Config { return u.cfg }

// Diagrams returns the mounted diagrams in config order, minus any omitted ones.
// DiagramFrame.Index refers to this slice.
func (u *Universe) Diagrams() []Mounted { return u.diagrams }

// Omitted names the configured diagrams that failed to build.
func (u *Universe) Omitted() []string { return u.omitted }

// Particles returns the ambient shell, or nil when the layout asks for none.
func (u *Universe) Particles() (*topology.DiagramSpec, topology.Geometry) {
	return u.particles, u.particleGeo
}

// Markers returns the marker definitions; MarkerFrame entries share their order.
func (u *Universe) Markers() []nav.Marker { return u.cfg.Markers }

// Frame returns the most recent frame from Step.
func (u *Universe) Frame() animation.Frame { return u.frame }

// Panel returns the content for the open section, if any.
func (u *Universe) Panel() (content.Panel, bool) {
	s := u.ctrl.State().Active
	if s == nav.SectionNone {
		return content.Panel{}, false
	}
	return u.library.Panel(s)
}

// Library returns the content for every section.
func (u *Universe) Library() *content.Library { return u.library }
