package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"ml-universe/internal/loading"
	"ml-universe/internal/nav"
	"ml-universe/internal/topology"
)

// ConfigPath is the default config file, relative to the process working directory.
// A .toml extension selects TOML; anything else is read as YAML.
const ConfigPath = "config/universe.yaml"

var ErrInvalid = errors.New("config: invalid")

// Window holds window and frame loop settings. Font is a font file or a family name looked
// up under assets/fonts; empty uses the built-in font.
type Window struct {
	Width      int32  `yaml:"width" toml:"width" validate:"gt=0"`
	Height     int32  `yaml:"height" toml:"height" validate:"gt=0"`
	Title      string `yaml:"title" toml:"title"`
	FPS        int32  `yaml:"fps" toml:"fps" validate:"gt=0"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	Background string `yaml:"background" toml:"background" validate:"hexcolor"`
	Font       string `yaml:"font,omitempty" toml:"font,omitempty"`
}

// Heading is the title and subtitle floating above the scene. Heights and sizes are in
// world units and follow the universe scale; NarrowScale shrinks both lines on narrow
// viewports. Empty lines are not drawn.
type Heading struct {
	Text           string  `yaml:"text" toml:"text"`
	Subtitle       string  `yaml:"subtitle" toml:"subtitle"`
	Color          string  `yaml:"color" toml:"color" validate:"omitempty,hexcolor"`
	SubtitleColor  string  `yaml:"subtitle_color" toml:"subtitle_color" validate:"omitempty,hexcolor"`
	Height         float32 `yaml:"height" toml:"height"`
	SubtitleHeight float32 `yaml:"subtitle_height" toml:"subtitle_height"`
	Size           float32 `yaml:"size" toml:"size" validate:"gte=0"`
	SubtitleSize   float32 `yaml:"subtitle_size" toml:"subtitle_size" validate:"gte=0"`
	NarrowScale    float32 `yaml:"narrow_scale" toml:"narrow_scale" validate:"gt=0,lte=1"`
}

// Camera holds the perspective camera. Distance comes from the responsive layout.
type Camera struct {
	Fovy float32 `yaml:"fovy" toml:"fovy" validate:"gt=0,lt=180"`
}

// Audio configures the ambient track. An empty Path disables it.
type Audio struct {
	Path     string  `yaml:"path" toml:"path"`
	Volume   float32 `yaml:"volume" toml:"volume" validate:"gte=0,lte=1"`
	Autoplay bool    `yaml:"autoplay" toml:"autoplay"`
}

// Debug holds engine-only overlays.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps" toml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc" toml:"show_memalloc"`
	ShowLog      bool `yaml:"show_log" toml:"show_log"`
	GridVisible  bool `yaml:"grid_visible" toml:"grid_visible"`
}

// Diagram places one diagram. Primary diagrams take the layout's primary scale, the rest
// the secondary scale; Placement.Scale multiplies either.
type Diagram struct {
	Archetype       topology.Archetype `yaml:"archetype" toml:"archetype" validate:"required"`
	Primary         bool               `yaml:"primary,omitempty" toml:"primary,omitempty"`
	topology.Params `yaml:",inline"`
}

// Config is the whole scene configuration.
type Config struct {
	Window    Window          `yaml:"window" toml:"window"`
	Heading   Heading         `yaml:"heading" toml:"heading"`
	Camera    Camera          `yaml:"camera" toml:"camera"`
	Layout    nav.Layout      `yaml:"layout" toml:"layout"`
	Loading   loading.Options `yaml:"loading" toml:"loading"`
	Audio     Audio           `yaml:"audio" toml:"audio"`
	Debug     Debug           `yaml:"debug" toml:"debug"`
	Seed      int64           `yaml:"seed" toml:"seed"`
	Strict    bool            `yaml:"strict" toml:"strict"`
	Content   string          `yaml:"content,omitempty" toml:"content,omitempty"`
	Particles topology.Params `yaml:"particles" toml:"particles"`
	Diagrams  []Diagram       `yaml:"diagrams" toml:"diagrams" validate:"dive"`
	Markers   []nav.Marker    `yaml:"markers" toml:"markers" validate:"dive"`
}

// Default returns the stock scene: six diagrams around the origin and five markers.
func Default() *Config {
	diagram := func(a topology.Archetype, primary bool, x, y, z float32) Diagram {
		return Diagram{
			Archetype: a,
			Primary:   primary,
			Params: topology.Params{
				Name:      string(a),
				Placement: topology.Placement{Position: topology.Vec3{X: x, Y: y, Z: z}, Scale: 1},
			},
		}
	}
	return &Config{
		Window: Window{
			Width:      1280,
			Height:     720,
			Title:      "ML Universe",
			FPS:        60,
			Background: "#050510",
		},
		Heading: Heading{
			Text:           "Hamid Rezaee",
			Subtitle:       "Machine Learning Engineer",
			Color:          "#ffffff",
			SubtitleColor:  "#8a8aff",
			Height:         6,
			SubtitleHeight: 5,
			Size:           1,
			SubtitleSize:   0.5,
			NarrowScale:    0.8,
		},
		Camera:  Camera{Fovy: 60},
		Layout:  nav.DefaultLayout(),
		Loading: loading.DefaultOptions(),
		Audio:   Audio{Path: "assets/audio/ambient.ogg", Volume: 0.3, Autoplay: true},
		Debug:   Debug{},
		Particles: topology.Params{
			Name:      string(topology.ParticleShell),
			Placement: topology.Placement{Scale: 1},
			MinRadius: 10,
			MaxRadius: 20,
		},
		Diagrams: []Diagram{
			diagram(topology.NeuralNetwork, true, 0, 0, 0),
			diagram(topology.DecisionTree, false, 6, 3, -2),
			diagram(topology.LinearRegression, false, -5, 2, -3),
			diagram(topology.Sigmoid, false, 5, -3, -2),
			diagram(topology.Clustering, false, -5, -3, -2),
			diagram(topology.Transformer, false, 0, -6, -3),
		},
		Markers: nav.DefaultMarkers(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges, archetype tags and marker uniqueness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	names := make(map[string]bool, len(c.Diagrams))
	for i, d := range c.Diagrams {
		if _, err := topology.ParseArchetype(string(d.Archetype)); err != nil {
			return fmt.Errorf("%w: diagram %d: %w", ErrInvalid, i, err)
		}
		name := d.Name
		if name == "" {
			name = string(d.Archetype)
		}
		if names[name] {
			return fmt.Errorf("%w: duplicate diagram name %q", ErrInvalid, name)
		}
		names[name] = true
	}
	sections := make(map[nav.Section]bool, len(c.Markers))
	for _, m := range c.Markers {
		s, err := nav.ParseSection(string(m.Section))
		if err != nil || s == nav.SectionNone {
			return fmt.Errorf("%w: marker %q: %w", ErrInvalid, m.Label, nav.ErrUnknownSection)
		}
		if sections[s] {
			return fmt.Errorf("%w: duplicate marker for %s", ErrInvalid, s)
		}
		sections[s] = true
		if _, ok := nav.IconColors[m.Icon]; !ok {
			return fmt.Errorf("%w: marker %s has unknown icon %q", ErrInvalid, s, m.Icon)
		}
	}
	return nil
}

// Load reads config from path over Default(). A missing file returns Default() with no error;
// an unreadable, malformed or invalid file is an error.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	// Lists replace the defaults wholesale rather than merging element by element.
	diagrams, markers := c.Diagrams, c.Markers
	c.Diagrams, c.Markers = nil, nil
	if isTOML(path) {
		_, err = toml.Decode(string(data), c)
	} else {
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Diagrams == nil {
		c.Diagrams = diagrams
	}
	if c.Markers == nil {
		c.Markers = markers
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to path in the format its extension selects, creating the directory if needed.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Clone returns a deep copy that shares no slices with c.
func Clone(c *Config) (*Config, error) {
	out := new(Config)
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
