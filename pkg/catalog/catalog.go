// Package catalog provides the immutable set of predefined automation
// blueprints, grouped by category.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/flowforge/flowforge/pkg/models"
	"gopkg.in/yaml.v3"
)

// CategoryAll bypasses category filtering in Find.
const CategoryAll = "all"

// ErrEmptyCatalog indicates the catalog was configured without any templates.
var ErrEmptyCatalog = errors.New("template catalog is empty")

// Catalog holds the template set in insertion order. It is read-only after
// construction.
type Catalog struct {
	templates []models.Template
}

// New creates a catalog from the built-in template set.
func New() *Catalog {
	return &Catalog{templates: builtinTemplates()}
}

// Load creates a catalog from a YAML template file. The file replaces the
// built-in set entirely; an unreadable or empty file is a configuration
// error, fatal at startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	var templates []models.Template

	err = yaml.Unmarshal(data, &templates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file %s: %w", path, err)
	}

	if len(templates) == 0 {
		return nil, ErrEmptyCatalog
	}

	return &Catalog{templates: templates}, nil
}

// List returns all templates in insertion order.
func (c *Catalog) List() []models.Template {
	out := make([]models.Template, len(c.templates))
	copy(out, c.templates)

	return out
}

// Find filters templates by category and a case-insensitive substring match
// against the template name. Category "all" (or empty) bypasses the category
// filter; an empty query matches everything. Order is preserved.
func (c *Catalog) Find(category, query string) []models.Template {
	query = strings.ToLower(query)
	out := make([]models.Template, 0, len(c.templates))

	for _, tpl := range c.templates {
		if category != "" && category != CategoryAll && tpl.Category != category {
			continue
		}

		if query != "" && !strings.Contains(strings.ToLower(tpl.Name), query) {
			continue
		}

		out = append(out, tpl)
	}

	return out
}

// ByID looks up a template by its identifier.
func (c *Catalog) ByID(id string) (models.Template, bool) {
	for _, tpl := range c.templates {
		if tpl.ID == id {
			return tpl, true
		}
	}

	return models.Template{}, false
}
