package animation

import (
	"strconv"

	"github.com/chewxy/math32"

	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
)

// Tick computes the frame at in.Elapsed seconds. It is pure: in is never mutated and the same
// Input always yields the same Frame. Feed Frame.Carry back as the next Input.Prev.
// Diagrams with no nodes are listed in Frame.Skipped instead of being animated.
func Tick(in Input) Frame {
	t := in.Elapsed
	f := Frame{Elapsed: t, Visible: in.UI.Loaded}
	env := effectEnvelope(in.UI.Effect, t)

	// The universe holds still until loaded, so the first visible frame starts from zero spin.
	spin, rotX, rotY := in.Prev.UniverseSpin, in.Prev.ParticleRotX, in.Prev.ParticleRotY
	f.Scale = EntryScale(in.UI.Loaded, in.UI.LoadedAt, t)
	if in.UI.Loaded {
		spin = wrapAngle(spin + UniverseSpinStep)
		rotX = wrapAngle(rotX + ParticleSpinStepX)
		rotY = wrapAngle(rotY + ParticleSpinStepY)
		f.Scale *= 1 + math32.Sin(t)*UniverseBreath
	}
	f.Carry.UniverseSpin = spin
	f.Spin = spin
	var flash float32
	if env > 0 {
		switch in.UI.Effect.Kind {
		case nav.EffectSpin:
			f.Spin = wrapAngle(spin + env*EffectSpinAngle)
		case nav.EffectFlash:
			flash = env * EffectFlashOpacity
		case nav.EffectPop:
			f.Scale *= 1 + env*EffectPopScale
		}
	}

	f.Carry.ParticleRotX, f.Carry.ParticleRotY = rotX, rotY
	f.Particles = ParticleFrame{RotX: rotX, RotY: rotY, Opacity: ParticleOpacity}

	highlight := highlightedIcons(in.UI, in.Markers)
	for i, d := range in.Diagrams {
		if d.NodeCount() == 0 {
			f.Skipped = append(f.Skipped, diagramName(d, i))
			continue
		}
		f.Diagrams = append(f.Diagrams, diagramFrame(i, d, t, highlight[d.Archetype], flash))
	}

	f.Markers = make([]MarkerFrame, len(in.Markers))
	f.Carry.MarkerScale = make([]float32, len(in.Markers))
	f.Carry.MarkerSpin = make([]float32, len(in.Markers))
	for i, m := range in.Markers {
		prevScale, prevSpin := float32(MarkerRestScale), float32(0)
		if i < len(in.Prev.MarkerScale) {
			prevScale = in.Prev.MarkerScale[i]
		}
		if i < len(in.Prev.MarkerSpin) {
			prevSpin = in.Prev.MarkerSpin[i]
		}
		mf := markerFrame(m, in.UI, t, prevScale, prevSpin)
		f.Markers[i] = mf
		f.Carry.MarkerScale[i] = mf.Scale
		f.Carry.MarkerSpin[i] = mf.Yaw
	}
	return f
}

func diagramFrame(i int, d *topology.DiagramSpec, t float32, highlighted bool, flash float32) DiagramFrame {
	df := DiagramFrame{
		Index:        i,
		Name:         diagramName(d, i),
		Archetype:    d.Archetype,
		Position:     d.Placement.Position,
		Yaw:          math32.Sin(t*SwaySpeed) * SwayAmplitude,
		Scale:        d.Placement.Scale,
		EdgeOpacity:  StaticEdgeOpacity,
		GuideOpacity: GuideOpacity,
		NodeEmissive: NodeEmissive,
		Highlighted:  highlighted,
		ActiveGroup:  -1,
	}
	pointOpacity := float32(1)
	switch d.Archetype {
	case topology.NeuralNetwork, topology.Transformer:
		df.Pulse = Pulse(t, EdgePulseSpeed)
		df.EdgeOpacity = 0.2 + df.Pulse*0.8
	case topology.LinearRegression:
		df.Pulse = Pulse(t, EdgePulseSpeed)
		df.EdgeOpacity = 0.5 + df.Pulse*0.5
	case topology.Sigmoid:
		df.Pulse = Pulse(t, SigmoidPulseSpeed)
		df.EdgeOpacity = 0.5 + df.Pulse*0.5
	case topology.DecisionTree:
		df.Scale *= 1 + math32.Sin(t*TreeBreathSpeed)*TreeBreathAmplitude
	case topology.Clustering:
		df.ActiveGroup = ClusterPhaseAt(t, len(d.Groups))
		pointOpacity = PointOpacity
	}
	if highlighted {
		df.NodeEmissive = HighlightEmissive
	}
	df.EdgeOpacity = clamp(df.EdgeOpacity+flash, 0, 1)

	if len(d.Groups) > 0 {
		df.Groups = make([]GroupFrame, len(d.Groups))
		for g := range d.Groups {
			p := float32(0.5)
			if g == df.ActiveGroup {
				p = Pulse(t, ClusterPulseSpeed)
			}
			df.Groups[g] = GroupFrame{Pulse: p, PointSize: ClusterPointSize + p*ClusterPointSwing, Opacity: pointOpacity}
		}
	}
	return df
}

func markerFrame(m nav.Marker, ui nav.State, t, prevScale, prevSpin float32) MarkerFrame {
	hovered := m.Section != nav.SectionNone && ui.Hovered == m.Section
	active := m.Section != nav.SectionNone && ui.Active == m.Section
	target := float32(MarkerRestScale)
	if hovered || active {
		target = MarkerHoverScale
	}
	emissive := float32(MarkerIdleGlow)
	if hovered {
		emissive = MarkerGlow
	}
	pos := m.Position
	pos.Y += math32.Sin(t) * MarkerBob
	return MarkerFrame{
		Section:      m.Section,
		Label:        m.Label,
		Icon:         m.Icon,
		Color:        nav.IconColors[m.Icon],
		Position:     pos,
		Yaw:          wrapAngle(prevSpin + MarkerSpinStep),
		Scale:        lerp(prevScale, target, MarkerLerp),
		Emissive:     emissive,
		LabelVisible: hovered,
		Hovered:      hovered,
		Active:       active,
	}
}

// highlightedIcons returns the archetypes whose diagrams glow because the marker carrying
// that icon is hovered or open.
func highlightedIcons(ui nav.State, markers []nav.Marker) map[topology.Archetype]bool {
	out := make(map[topology.Archetype]bool, 2)
	for _, m := range markers {
		if m.Section == nav.SectionNone {
			continue
		}
		if m.Section == ui.Hovered || m.Section == ui.Active {
			out[m.Icon] = true
		}
	}
	return out
}

func effectEnvelope(e nav.Effect, t float32) float32 {
	if !e.Active {
		return 0
	}
	d := t - e.At
	if d < 0 || d >= EffectDuration {
		return 0
	}
	return 1 - d/EffectDuration
}

func diagramName(d *topology.DiagramSpec, i int) string {
	if d != nil && d.Name != "" {
		return d.Name
	}
	return "diagram-" + strconv.Itoa(i)
}
