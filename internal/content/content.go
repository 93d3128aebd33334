package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ml-universe/internal/nav"
)

//go:embed content.yaml
var defaultContent []byte

var ErrDuplicate = errors.New("content: duplicate entry")

// Record is one item on a panel: a project, a skill, a writing or a contact link.
// Fields a section does not use stay empty.
type Record struct {
	ID           string   `yaml:"id" validate:"required"`
	Title        string   `yaml:"title" validate:"required"`
	Description  string   `yaml:"description,omitempty"`
	Category     string   `yaml:"category,omitempty"`
	Color        string   `yaml:"color,omitempty" validate:"omitempty,hexcolor"`
	Link         string   `yaml:"link,omitempty" validate:"omitempty,url"`
	Technologies []string `yaml:"technologies,omitempty" validate:"dive,required"`
	Level        int      `yaml:"level,omitempty" validate:"gte=0,lte=100"`
	Date         string   `yaml:"date,omitempty"`
	ReadTime     string   `yaml:"read_time,omitempty"`
	Body         string   `yaml:"body,omitempty"`
}

// Panel is the content shown for one section.
type Panel struct {
	Section nav.Section `yaml:"section" validate:"required"`
	Title   string      `yaml:"title" validate:"required"`
	Intro   string      `yaml:"intro,omitempty"`
	Records []Record    `yaml:"records" validate:"dive"`
}

type document struct {
	Panels []Panel `yaml:"panels" validate:"required,dive"`
}

// Library is read-only panel content keyed by section.
type Library struct {
	panels map[nav.Section]Panel
	order  []nav.Section
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates a YAML content document.
func Load(r io.Reader) (*Library, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	lib := &Library{panels: make(map[nav.Section]Panel, len(doc.Panels))}
	for _, p := range doc.Panels {
		s, err := nav.ParseSection(string(p.Section))
		if err != nil || s == nav.SectionNone {
			return nil, fmt.Errorf("panel %q: %w", p.Title, nav.ErrUnknownSection)
		}
		if _, dup := lib.panels[s]; dup {
			return nil, fmt.Errorf("%w: panel for section %s", ErrDuplicate, s)
		}
		ids := make(map[string]bool, len(p.Records))
		for _, rec := range p.Records {
			if ids[rec.ID] {
				return nil, fmt.Errorf("%w: record %q in %s", ErrDuplicate, rec.ID, s)
			}
			ids[rec.ID] = true
		}
		lib.panels[s] = p
		lib.order = append(lib.order, s)
	}
	return lib, nil
}

// LoadFile reads a content document from path.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in content.
func Default() (*Library, error) {
	return Load(bytes.NewReader(defaultContent))
}

// Panel returns a copy of the panel for s.
func (l *Library) Panel(s nav.Section) (Panel, bool) {
	p, ok := l.panels[s]
	if !ok {
		return Panel{}, false
	}
	p.Records = append([]Record(nil), p.Records...)
	return p, true
}

// Sections lists the sections that have a panel, in document order.
func (l *Library) Sections() []nav.Section {
	return append([]nav.Section(nil), l.order...)
}

// Categories groups a panel's records by Category, preserving first-seen order.
func (p Panel) Categories() ([]string, map[string][]Record) {
	var order []string
	groups := make(map[string][]Record)
	for _, r := range p.Records {
		if _, ok := groups[r.Category]; !ok {
			order = append(order, r.Category)
		}
		groups[r.Category] = append(groups[r.Category], r)
	}
	return order, groups
}
