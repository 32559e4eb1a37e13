package domain

import (
	"slices"
	"sort"
)

// SpeciesTotal is the summed count of one species.
type SpeciesTotal struct {
	Species  string   `json:"species"`
	Category Category `json:"category"`
	Total    int      `json:"total"`
}

// SpeciesTotals sums counts per species, ranked by total descending. Species
// with equal totals keep the order they were first seen in.
func SpeciesTotals(sightings []Sighting) []SpeciesTotal {
	index := make(map[string]int)
	var totals []SpeciesTotal

	for _, s := range sightings {
		i, ok := index[s.Species()]
		if !ok {
			i = len(totals)
			index[s.Species()] = i
			totals = append(totals, SpeciesTotal{Species: s.Species()})
		}
		totals[i].Total += s.Count
		totals[i].Category = s.Category()
	}

	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].Total > totals[b].Total
	})
	return totals
}

// MonthlyCount is the summed count of one species in one month.
type MonthlyCount struct {
	Species string `json:"species"`
	Month   string `json:"month"` // YYYY-MM
	Count   int    `json:"count"`
}

// MonthlyCounts sums counts per (species, month) for the named species only.
// Groups appear in first-seen order. No species selected yields nil.
func MonthlyCounts(sightings []Sighting, species []string) []MonthlyCount {
	if len(species) == 0 {
		return nil
	}
	wanted := toSet(species)

	type key struct{ species, month string }
	index := make(map[key]int)
	var out []MonthlyCount

	for _, s := range sightings {
		if !wanted[s.Species()] {
			continue
		}
		k := key{s.Species(), s.Month()}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, MonthlyCount{Species: k.species, Month: k.month})
		}
		out[i].Count += s.Count
	}
	return out
}

// DistinctSpecies returns the species names present, sorted.
func DistinctSpecies(sightings []Sighting) []string {
	return distinctSorted(sightings, Sighting.Species)
}

// DistinctYears returns the survey years present, ascending.
func DistinctYears(sightings []Sighting) []int {
	return distinctSorted(sightings, Sighting.Year)
}

// DistinctLocations returns the field sections present, sorted.
func DistinctLocations(sightings []Sighting) []string {
	return distinctSorted(sightings, func(s Sighting) string { return s.Location })
}

func distinctSorted[T int | string](sightings []Sighting, field func(Sighting) T) []T {
	seen := make(map[T]bool)
	var out []T
	for _, s := range sightings {
		v := field(s)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
