package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ml-universe/internal/nav"
)

func TestDefaultHasEverySection(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	assert.Equal(t, nav.Sections(), lib.Sections())
	for _, s := range nav.Sections() {
		p, ok := lib.Panel(s)
		require.True(t, ok, s)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Records, s)
	}
	_, ok := lib.Panel(nav.SectionNone)
	assert.False(t, ok)
}

func TestSkillCategories(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	p, _ := lib.Panel(nav.SectionSkills)
	order, groups := p.Categories()
	assert.Equal(t, []string{"Machine Learning", "LLM & Cloud", "Backend & Deployment", "Programming"}, order)
	assert.Len(t, groups["Machine Learning"], 4)
}

func TestPanelReturnsCopy(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	p, _ := lib.Panel(nav.SectionProjects)
	p.Records[0].Title = "changed"
	again, _ := lib.Panel(nav.SectionProjects)
	assert.Equal(t, "ReSearch", again.Records[0].Title)
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	tests := map[string]string{
		"unknown section": `
panels:
  - section: art
    title: Art
    records: []
`,
		"missing title": `
panels:
  - section: about
    records:
      - id: a
        title: A
`,
		"bad level": `
panels:
  - section: skills
    title: Skills
    records:
      - {id: go, title: Go, level: 120}
`,
		"bad link": `
panels:
  - section: contact
    title: Contact
    records:
      - {id: web, title: Web, link: "not a url"}
`,
		"duplicate record": `
panels:
  - section: about
    title: About
    records:
      - {id: a, title: A}
      - {id: a, title: B}
`,
		"duplicate panel": `
panels:
  - {section: about, title: About, records: []}
  - {section: about, title: Again, records: []}
`,
		"unknown field": `
panels:
  - {section: about, title: About, records: [], colour: red}
`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadDuplicateIsTyped(t *testing.T) {
	_, err := Load(strings.NewReader(`
panels:
  - {section: about, title: About, records: []}
  - {section: about, title: Again, records: []}
`))
	assert.ErrorIs(t, err, ErrDuplicate)
}
