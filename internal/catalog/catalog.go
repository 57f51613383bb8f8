// Package catalog holds the read-only library of workout templates: a
// built-in default plus any templates loaded from YAML catalog files.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/claude/repcycle/internal/models"
)

// DefaultTemplateID names the built-in template used as the fallback for
// unknown ids.
const DefaultTemplateID = "full-body-30"

// Catalog is immutable after construction. Lookups never fail: unknown ids
// resolve to the default template.
type Catalog struct {
	templates []models.WorkoutTemplate
	byID      map[string]models.WorkoutTemplate
}

// New returns a catalog seeded with the built-in template plus any extras.
// An extra with the default's id replaces it.
func New(extras ...models.WorkoutTemplate) *Catalog {
	c := &Catalog{byID: make(map[string]models.WorkoutTemplate)}
	c.add(defaultTemplate())
	for _, t := range extras {
		c.add(t)
	}
	return c
}

func (c *Catalog) add(t models.WorkoutTemplate) {
	if _, seen := c.byID[t.ID]; !seen {
		c.templates = append(c.templates, t)
	} else {
		for i := range c.templates {
			if c.templates[i].ID == t.ID {
				c.templates[i] = t
			}
		}
	}
	c.byID[t.ID] = t
}

// Get returns the template with the given id, falling back to the default
// template when the id is unknown. The second return reports whether the
// id matched.
func (c *Catalog) Get(id string) (models.WorkoutTemplate, bool) {
	if t, ok := c.byID[id]; ok {
		return t, true
	}
	return c.byID[DefaultTemplateID], false
}

// List returns all templates in registration order.
func (c *Catalog) List() []models.WorkoutTemplate {
	out := make([]models.WorkoutTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// catalogFile is the YAML shape of a user-provided catalog file.
type catalogFile struct {
	Templates []models.WorkoutTemplate `yaml:"templates"`
}

// LoadFile reads extra templates from a YAML catalog file. Templates with
// an empty id are skipped rather than rejected, so one bad entry does not
// take down the whole catalog.
func LoadFile(path string) ([]models.WorkoutTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	var out []models.WorkoutTemplate
	for _, t := range f.Templates {
		if t.ID == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
