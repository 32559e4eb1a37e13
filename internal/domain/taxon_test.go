package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()

	assert.Equal(t, 103, tax.Len())
	assert.Same(t, tax, DefaultTaxonomy())

	robin, ok := tax.Lookup("Robin")
	require.True(t, ok)
	assert.Equal(t, Green, robin.Category)

	skylark, ok := tax.Lookup("Skylark")
	require.True(t, ok)
	assert.Equal(t, Red, skylark.Category)

	_, ok = tax.Lookup("robin")
	assert.False(t, ok, "lookup is case sensitive")

	_, ok = tax.Lookup("Robin ")
	assert.False(t, ok, "lookup does not trim")
}

func TestTaxonomy_TaxaReturnsCopy(t *testing.T) {
	tax := DefaultTaxonomy()

	taxa := tax.Taxa()
	taxa[0].Name = "Changed"

	assert.Equal(t, "Barn Owl", tax.Taxa()[0].Name)
	_, ok := tax.Lookup("Changed")
	assert.False(t, ok)
}

func TestNewTaxonomy_Validation(t *testing.T) {
	tests := []struct {
		name string
		taxa []Taxon
		msg  string
	}{
		{"duplicate", []Taxon{{"Robin", Green}, {"Robin", Red}}, "listed twice"},
		{"unknown category", []Taxon{{"Robin", "Purple"}}, "unknown conservation category"},
		{"empty name", []Taxon{{"", Green}}, "name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTaxonomy(tt.taxa)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Amber")
	require.NoError(t, err)
	assert.Equal(t, Amber, c)

	_, err = ParseCategory("amber")
	require.Error(t, err)
}

func TestSighting_DerivedFields(t *testing.T) {
	s := sighting("Robin", Green, day(2024, time.May, 3), "Top Meadow", 2)

	assert.Equal(t, 2024, s.Year())
	assert.Equal(t, "2024-05", s.Month())
	assert.Len(t, s.ID(), 16)
	assert.Equal(t, s.ID(), sighting("Robin", Green, day(2024, time.May, 3), "Top Meadow", 2).ID())
	assert.NotEqual(t, s.ID(), sighting("Robin", Green, day(2024, time.May, 3), "Top Meadow", 3).ID())
}
