package domain

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Category is a UK Birds of Conservation Concern status.
type Category string

const (
	Green Category = "Green"
	Amber Category = "Amber"
	Red   Category = "Red"
)

var allCategories = [...]Category{Green, Amber, Red}

// AllCategories returns the known categories in display order.
func AllCategories() []Category {
	return slices.Clone(allCategories[:])
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(allCategories[:], c)
}

// ParseCategory matches s exactly against the known categories.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown conservation category %q", s)
	}
	return c, nil
}

// Taxon is a species and its conservation category.
type Taxon struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Taxonomy is an immutable name -> Taxon lookup. Names match exactly and are
// case sensitive.
type Taxonomy struct {
	taxa   []Taxon
	byName map[string]Taxon
}

var errEmptyTaxonName = errors.New("taxon name is required")

// NewTaxonomy validates taxa and builds a lookup. Duplicate names and unknown
// categories are rejected.
func NewTaxonomy(taxa []Taxon) (*Taxonomy, error) {
	t := &Taxonomy{
		taxa:   make([]Taxon, 0, len(taxa)),
		byName: make(map[string]Taxon, len(taxa)),
	}
	for _, taxon := range taxa {
		if taxon.Name == "" {
			return nil, errEmptyTaxonName
		}
		if !taxon.Category.Valid() {
			return nil, fmt.Errorf("taxon %q: unknown conservation category %q", taxon.Name, taxon.Category)
		}
		if _, dup := t.byName[taxon.Name]; dup {
			return nil, fmt.Errorf("taxon %q listed twice", taxon.Name)
		}
		t.byName[taxon.Name] = taxon
		t.taxa = append(t.taxa, taxon)
	}
	return t, nil
}

// DefaultTaxonomy returns the survey's reference species list. It is built
// once and shared; the returned value is read-only.
var DefaultTaxonomy = sync.OnceValue(func() *Taxonomy {
	t, err := NewTaxonomy(surveySpecies)
	if err != nil {
		panic(fmt.Sprintf("domain: invalid built-in species list: %v", err))
	}
	return t
})

// Lookup returns the taxon with exactly this name.
func (t *Taxonomy) Lookup(name string) (Taxon, bool) {
	taxon, ok := t.byName[name]
	return taxon, ok
}

// Len is the number of species in the taxonomy.
func (t *Taxonomy) Len() int { return len(t.taxa) }

// Taxa returns a copy of the species list in declaration order.
func (t *Taxonomy) Taxa() []Taxon {
	return slices.Clone(t.taxa)
}
