package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/benefitsim/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/programs.yaml
var defaultCatalogYAML []byte

// CategoryOrder is the order in which categories are presented
var CategoryOrder = []domain.Category{
	domain.CategoryFinancial,
	domain.CategoryMedical,
	domain.CategoryChildcare,
	domain.CategorySupport,
}

// CategoryLabels are display names for each category
var CategoryLabels = map[domain.Category]string{
	domain.CategoryMedical:   "Medical",
	domain.CategoryChildcare: "Childcare",
	domain.CategoryFinancial: "Allowances & Grants",
	domain.CategorySupport:   "Family Support",
}

// Catalog is an ordered, immutable snapshot of program records.
// It is safe for concurrent readers; accessors hand out deep copies.
type Catalog struct {
	programs []domain.Program
	index    map[string]int
}

type catalogFile struct {
	Programs []domain.Program `yaml:"programs"`
}

// New validates the programs and builds a catalog from a copy of them
func New(programs []domain.Program) (*Catalog, error) {
	if err := Validate(programs); err != nil {
		return nil, err
	}

	c := &Catalog{
		programs: domain.ClonePrograms(programs),
		index:    make(map[string]int, len(programs)),
	}
	for i, p := range c.programs {
		c.index[p.Slug] = i
	}
	return c, nil
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	c, err := New(file.Programs)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	return c, nil
}

// LoadFromFile loads a YAML catalog from disk
func LoadFromFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", filename, err)
	}
	return Parse(data)
}

// Default returns the built-in Minato-ward catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load returns the catalog at path, or the built-in catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFromFile(path)
}

// Programs returns the programs in catalog order
func (c *Catalog) Programs() []domain.Program {
	return domain.ClonePrograms(c.programs)
}

// Len returns the number of programs
func (c *Catalog) Len() int {
	return len(c.programs)
}

// BySlug looks up a program by its slug
func (c *Catalog) BySlug(slug string) (domain.Program, error) {
	i, ok := c.index[slug]
	if !ok {
		return domain.Program{}, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, slug)
	}
	return c.programs[i].Clone(), nil
}

// ByCategory returns the programs of one category in catalog order
func (c *Catalog) ByCategory(category domain.Category) []domain.Program {
	out := []domain.Program{}
	for _, p := range c.programs {
		if p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Grouped returns the programs bucketed by category, following CategoryOrder
func (c *Catalog) Grouped() [][]domain.Program {
	groups := make([][]domain.Program, 0, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		if progs := c.ByCategory(cat); len(progs) > 0 {
			groups = append(groups, progs)
		}
	}
	return groups
}
