package nav

// Layout holds the responsive values for both device classes. Widths below Breakpoint
// are narrow.
type Layout struct {
	Breakpoint           int     `yaml:"breakpoint" toml:"breakpoint" validate:"gt=0"`
	CameraDistance       float32 `yaml:"camera_distance" toml:"camera_distance" validate:"gt=0"`
	NarrowCameraDistance float32 `yaml:"narrow_camera_distance" toml:"narrow_camera_distance" validate:"gt=0"`
	PrimaryScale         float32 `yaml:"primary_scale" toml:"primary_scale" validate:"gt=0"`
	NarrowPrimaryScale   float32 `yaml:"narrow_primary_scale" toml:"narrow_primary_scale" validate:"gt=0"`
	SecondaryScale       float32 `yaml:"secondary_scale" toml:"secondary_scale" validate:"gt=0"`
	NarrowSecondaryScale float32 `yaml:"narrow_secondary_scale" toml:"narrow_secondary_scale" validate:"gt=0"`
	ParticleCount        int     `yaml:"particle_count" toml:"particle_count" validate:"gte=0,lte=10000"`
	NarrowParticleCount  int     `yaml:"narrow_particle_count" toml:"narrow_particle_count" validate:"gte=0,lte=10000"`
}

// DefaultLayout returns the stock responsive values.
func DefaultLayout() Layout {
	return Layout{
		Breakpoint:           768,
		CameraDistance:       15,
		NarrowCameraDistance: 20,
		PrimaryScale:         1,
		NarrowPrimaryScale:   0.8,
		SecondaryScale:       0.8,
		NarrowSecondaryScale: 0.6,
		ParticleCount:        200,
		NarrowParticleCount:  100,
	}
}

// Viewport is the layout resolved for one window width.
type Viewport struct {
	Width          int
	Narrow         bool
	CameraDistance float32
	PrimaryScale   float32
	SecondaryScale float32
	ParticleCount  int
}

// For resolves the layout for a window width in pixels.
func (l Layout) For(width int) Viewport {
	if width < l.Breakpoint {
		return Viewport{
			Width:          width,
			Narrow:         true,
			CameraDistance: l.NarrowCameraDistance,
			PrimaryScale:   l.NarrowPrimaryScale,
			SecondaryScale: l.NarrowSecondaryScale,
			ParticleCount:  l.NarrowParticleCount,
		}
	}
	return Viewport{
		Width:          width,
		CameraDistance: l.CameraDistance,
		PrimaryScale:   l.PrimaryScale,
		SecondaryScale: l.SecondaryScale,
		ParticleCount:  l.ParticleCount,
	}
}
