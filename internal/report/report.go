package report

import (
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
)

// Options are the values offered by the dashboard filters.
type Options struct {
	Categories []domain.Category `json:"categories"`
	Years      []int             `json:"years"`
	Locations  []string          `json:"locations"`
	Species    []string          `json:"species"`
}

// BuildOptions derives filter choices from the full, unfiltered sighting set.
func BuildOptions(sightings []domain.Sighting) Options {
	return Options{
		Categories: domain.AllCategories(),
		Years:      domain.DistinctYears(sightings),
		Locations:  domain.DistinctLocations(sightings),
		Species:    domain.DistinctSpecies(sightings),
	}
}

// DefaultSpecies is the species preselected on the detail view: the
// alphabetically first one, or none for an empty dataset.
func (o Options) DefaultSpecies() []string {
	if len(o.Species) == 0 {
		return nil
	}
	return o.Species[:1:1]
}

// SummaryRow is one line of the species summary table.
type SummaryRow struct {
	Species  string          `json:"species"`
	Category domain.Category `json:"conservation_status"`
	Total    int             `json:"total_sightings"`
}

// SpeciesSummary totals each selected species over all sightings, in
// selection order. Species with no sightings are left out.
func SpeciesSummary(sightings []domain.Sighting, selected []string) []SummaryRow {
	rows := make([]SummaryRow, 0, len(selected))
	for _, name := range selected {
		row := SummaryRow{Species: name}
		found := false
		for _, s := range sightings {
			if s.Species() != name {
				continue
			}
			if !found {
				row.Category = s.Category()
				found = true
			}
			row.Total += s.Count
		}
		if found {
			rows = append(rows, row)
		}
	}
	return rows
}

// Overview is the filtered summary shown on the first dashboard tab.
type Overview struct {
	GeneratedAt     time.Time             `json:"generated_at"`
	Filters         domain.Criteria       `json:"filters"`
	Options         Options               `json:"options"`
	Sightings       int                   `json:"sightings"`
	SpeciesObserved int                   `json:"species_observed"`
	Totals          []domain.SpeciesTotal `json:"totals"`
	Chart           *ChartConfig          `json:"chart,omitempty"`
}

// BuildOverview applies c to the sighting set and summarizes the result.
func BuildOverview(sightings []domain.Sighting, c domain.Criteria) Overview {
	filtered := domain.Filter(sightings, c)
	totals := domain.SpeciesTotals(filtered)
	return Overview{
		GeneratedAt:     domain.Now(),
		Filters:         c,
		Options:         BuildOptions(sightings),
		Sightings:       len(filtered),
		SpeciesObserved: len(totals),
		Totals:          totals,
		Chart:           SpeciesChart(filtered),
	}
}

// SpeciesDetail is the second dashboard tab: a summary table and a monthly
// timeline for the selected species.
type SpeciesDetail struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Selected    []string     `json:"selected"`
	Options     Options      `json:"options"`
	Summary     []SummaryRow `json:"summary"`
	Timeline    *ChartConfig `json:"timeline,omitempty"`
}

// BuildSpeciesDetail summarizes the selected species. An empty selection
// falls back to the default species.
func BuildSpeciesDetail(sightings []domain.Sighting, selected []string) SpeciesDetail {
	opts := BuildOptions(sightings)
	if len(selected) == 0 {
		selected = opts.DefaultSpecies()
	}
	return SpeciesDetail{
		GeneratedAt: domain.Now(),
		Selected:    selected,
		Options:     opts,
		Summary:     SpeciesSummary(sightings, selected),
		Timeline:    TimelineChart(sightings, selected),
	}
}
