package nav

import (
	"errors"
	"fmt"

	"ml-universe/internal/topology"
)

var ErrUnknownSection = errors.New("nav: unknown section")

// Section identifies a content panel. SectionNone means no panel is open (or nothing is hovered).
type Section string

const (
	SectionNone     Section = ""
	SectionAbout    Section = "about"
	SectionProjects Section = "projects"
	SectionSkills   Section = "skills"
	SectionWritings Section = "writings"
	SectionContact  Section = "contact"
)

// Sections returns the selectable sections in marker order.
func Sections() []Section {
	return []Section{SectionAbout, SectionProjects, SectionSkills, SectionWritings, SectionContact}
}

// ParseSection accepts a section key; "" and "none" map to SectionNone.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionNone, "none":
		return SectionNone, nil
	case SectionAbout, SectionProjects, SectionSkills, SectionWritings, SectionContact:
		return Section(s), nil
	}
	return SectionNone, fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

func (s Section) String() string {
	if s == SectionNone {
		return "none"
	}
	return string(s)
}

// Marker is a clickable navigation point in the scene. Definitions are fixed at mount;
// per-frame values (scale, spin, hover glow) are computed by the animation package.
type Marker struct {
	Section  Section            `yaml:"section" toml:"section"`
	Label    string             `yaml:"label" toml:"label"`
	Position topology.Vec3      `yaml:"position" toml:"position"`
	Icon     topology.Archetype `yaml:"icon" toml:"icon"`
}

// IconColors maps marker icons to their glow color.
var IconColors = map[topology.Archetype]string{
	topology.NeuralNetwork:    "#4a9eff",
	topology.DecisionTree:     "#4aff9e",
	topology.LinearRegression: "#ff4a9e",
	topology.Sigmoid:          "#9e4aff",
	topology.Transformer:      "#ff9e4a",
}

// DefaultMarkers returns the five stock markers.
func DefaultMarkers() []Marker {
	return []Marker{
		{Section: SectionAbout, Label: "About", Position: topology.Vec3{X: -5, Y: 2.5, Z: -3}, Icon: topology.LinearRegression},
		{Section: SectionProjects, Label: "Projects", Position: topology.Vec3{X: 0, Y: 0, Z: 0}, Icon: topology.NeuralNetwork},
		{Section: SectionSkills, Label: "Skills", Position: topology.Vec3{X: 6, Y: 3, Z: -2}, Icon: topology.DecisionTree},
		{Section: SectionWritings, Label: "Writings", Position: topology.Vec3{X: 5, Y: -3, Z: -2}, Icon: topology.Sigmoid},
		{Section: SectionContact, Label: "Contact", Position: topology.Vec3{X: 0, Y: -6, Z: -3}, Icon: topology.Transformer},
	}
}
