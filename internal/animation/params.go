package animation

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Motion constants. Per-tick steps assume the 60 FPS frame loop.
const (
	SwaySpeed     = 0.1
	SwayAmplitude = 0.2

	UniverseSpinStep    = 0.001
	UniverseBreath      = 0.02
	TreeBreathSpeed     = 0.5
	TreeBreathAmplitude = 0.05

	EdgePulseSpeed    = 2
	SigmoidPulseSpeed = 1.5
	ClusterPulseSpeed = 2
	ClusterPhase      = 5

	ClusterPointSize  = 0.08
	ClusterPointSwing = 0.04

	StaticEdgeOpacity  = 0.6
	GuideOpacity       = 0.3
	PointOpacity       = 0.8
	ParticleOpacity    = 0.6
	NodeEmissive       = 0.5
	HighlightEmissive  = 1.0
	ParticleSpinStepX  = 0.0003
	ParticleSpinStepY  = 0.0005
	MarkerLerp         = 0.1
	MarkerRestScale    = 1.0
	MarkerHoverScale   = 1.2
	MarkerBob          = 0.1
	MarkerSpinStep     = 0.01
	MarkerGlow         = 2
	MarkerIdleGlow     = 0.5
	EntryStartScale    = 0.1
	EntryDuration      = 0.5
	EffectDuration     = 1.0
	EffectSpinAngle    = 0.5
	EffectFlashOpacity = 0.3
	EffectPopScale     = 0.1
)

const tau = 2 * math32.Pi

// Pulse maps time to a 0..1 oscillation: sin(t·speed)·0.5 + 0.5.
func Pulse(t, speed float32) float32 {
	return math32.Sin(t*speed)*0.5 + 0.5
}

// ClusterPhaseAt returns which of n groups is pulsing at time t; the phase advances every
// ClusterPhase seconds and wraps.
func ClusterPhaseAt(t float32, n int) int {
	if n <= 0 {
		return -1
	}
	phase := int(math32.Floor(t / ClusterPhase))
	phase %= n
	if phase < 0 {
		phase += n
	}
	return phase
}

// EntryScale returns the scene scale during the entry transition: EntryStartScale until
// loaded, then an ease-out to 1 over EntryDuration.
func EntryScale(loaded bool, loadedAt, t float32) float32 {
	if !loaded {
		return EntryStartScale
	}
	f := clamp((t-loadedAt)/EntryDuration, 0, 1)
	f = 1 - (1-f)*(1-f)
	return lerp(EntryStartScale, 1, f)
}

func lerp[T constraints.Float](a, b, f T) T {
	return a + (b-a)*f
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapAngle(a float32) float32 {
	a = math32.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	return a
}
