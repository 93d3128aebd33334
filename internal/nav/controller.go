package nav

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"
)

// EffectKind is one of the ambient effects played on a background click.
type EffectKind int

const (
	EffectSpin EffectKind = iota
	EffectFlash
	EffectPop
	effectCount
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpin:
		return "spin"
	case EffectFlash:
		return "flash"
	case EffectPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Effect is the most recent ambient effect. At is the elapsed time it was triggered.
type Effect struct {
	Kind   EffectKind
	At     float32
	Active bool
}

// State is the UI state read by the animator and the panel overlay. Only the Controller writes it.
type State struct {
	Active   Section
	Hovered  Section
	Loaded   bool
	LoadedAt float32
	Narrow   bool
	Effect   Effect
}

// Controller owns UI state. It is not safe for concurrent use: call it from the frame loop
// only, and have background work (load timer, audio) post results there.
type Controller struct {
	state     State
	layout    Layout
	viewport  Viewport
	sized     bool
	markers   map[Section]bool
	observers []func(prev, next Section)
	rng       *rand.Rand
	first     chan struct{}
	firstOnce sync.Once
	log       *zap.Logger
}

// NewController returns a controller with no section open and nothing hovered.
// markers lists the sections that can be selected; a nil logger is replaced by a no-op one.
func NewController(layout Layout, markers []Marker, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	known := make(map[Section]bool, len(markers))
	for _, m := range markers {
		known[m.Section] = true
	}
	return &Controller{
		layout:  layout,
		markers: known,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		first:   make(chan struct{}),
		log:     log,
	}
}

// State returns a snapshot of the current UI state.
func (c *Controller) State() State { return c.state }

// OnChange registers fn to run after every change of the active section.
func (c *Controller) OnChange(fn func(prev, next Section)) {
	c.observers = append(c.observers, fn)
}

// SelectSection opens a section, replacing any open one. Selecting SectionNone is Close.
func (c *Controller) SelectSection(s Section) error {
	if s != SectionNone && !c.markers[s] {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	c.setActive(s)
	return nil
}

// Close clears the active section.
func (c *Controller) Close() {
	c.setActive(SectionNone)
}

func (c *Controller) setActive(s Section) {
	prev := c.state.Active
	if prev == s {
		return
	}
	c.state.Active = s
	c.log.Debug("section changed", zap.Stringer("from", prev), zap.Stringer("to", s))
	for _, fn := range c.observers {
		fn(prev, s)
	}
}

// HoverEnter marks s as hovered. The most recent enter wins.
func (c *Controller) HoverEnter(s Section) {
	if !c.markers[s] {
		return
	}
	c.state.Hovered = s
}

// HoverLeave clears the hover, but only if s is still the hovered marker.
func (c *Controller) HoverLeave(s Section) {
	if c.state.Hovered == s {
		c.state.Hovered = SectionNone
	}
}

// Click handles a pointer click at elapsed time at. hit is the marker under the pointer, or
// SectionNone for the background. A marker click selects its section and is consumed, so
// the background effect does not fire for it. The background effect also stays off while
// a section is open. It reports whether the click was consumed.
func (c *Controller) Click(hit Section, at float32) bool {
	c.interacted()
	if hit != SectionNone && c.markers[hit] {
		c.setActive(hit)
		return true
	}
	if c.state.Active != SectionNone {
		return false
	}
	kind := EffectKind(c.rng.IntN(int(effectCount)))
	c.state.Effect = Effect{Kind: kind, At: at, Active: true}
	c.log.Debug("background effect", zap.Stringer("kind", kind))
	return false
}

// KeyEscape closes the open panel.
func (c *Controller) KeyEscape() {
	c.interacted()
	c.Close()
}

// KeyPress records a keyboard gesture that does not map to an action.
func (c *Controller) KeyPress() {
	c.interacted()
}

func (c *Controller) interacted() {
	c.firstOnce.Do(func() { close(c.first) })
}

// FirstInteraction is closed on the first click or key press. It never reopens.
func (c *Controller) FirstInteraction() <-chan struct{} {
	return c.first
}

// MarkLoaded records that loading finished at elapsed time at. Later calls are ignored.
func (c *Controller) MarkLoaded(at float32) {
	if c.state.Loaded {
		return
	}
	c.state.Loaded = true
	c.state.LoadedAt = at
	c.log.Info("scene loaded", zap.Float32("at", at))
}

// Resize updates the device class for a new window width. It reports whether the
// viewport changed, so callers can skip relayout on no-op resize events.
func (c *Controller) Resize(width int) (Viewport, bool) {
	vp := c.layout.For(width)
	changed := !c.sized || vp.Narrow != c.viewport.Narrow
	c.viewport = vp
	c.sized = true
	c.state.Narrow = vp.Narrow
	return vp, changed
}

// Viewport returns the last computed viewport.
func (c *Controller) Viewport() Viewport { return c.viewport }

// SetMarkers replaces the selectable sections. An open or hovered section that no longer
// has a marker is cleared.
func (c *Controller) SetMarkers(markers []Marker) {
	known := make(map[Section]bool, len(markers))
	for _, m := range markers {
		known[m.Section] = true
	}
	c.markers = known
	if !known[c.state.Hovered] {
		c.state.Hovered = SectionNone
	}
	if c.state.Active != SectionNone && !known[c.state.Active] {
		c.Close()
	}
}

// SetLayout swaps the responsive values and re-resolves the current width.
func (c *Controller) SetLayout(layout Layout) Viewport {
	c.layout = layout
	if !c.sized {
		return c.viewport
	}
	c.viewport = layout.For(c.viewport.Width)
	c.state.Narrow = c.viewport.Narrow
	return c.viewport
}
