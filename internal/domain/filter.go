package domain

import "slices"

// Criteria narrows a sighting set. Within a dimension any listed value
// matches; across dimensions all must match. An empty list leaves that
// dimension unfiltered.
type Criteria struct {
	Categories []Category `json:"categories,omitempty"`
	Years      []int      `json:"years,omitempty"`
	Locations  []string   `json:"locations,omitempty"`
}

// Filter returns the sightings matching c, in input order. The input slice is
// never modified.
//
// The category filter is skipped when every known category is selected, even
// if some sightings carry a category outside the known set: "all selected"
// means "no filter", not "only these".
func Filter(sightings []Sighting, c Criteria) []Sighting {
	filterCategories := len(c.Categories) > 0 && len(c.Categories) < len(allCategories)
	if !filterCategories && len(c.Years) == 0 && len(c.Locations) == 0 {
		return sightings
	}

	categories := toSet(c.Categories)
	years := toSet(c.Years)
	locations := toSet(c.Locations)

	out := make([]Sighting, 0, len(sightings))
	for _, s := range sightings {
		if filterCategories && !categories[s.Category()] {
			continue
		}
		if len(years) > 0 && !years[s.Year()] {
			continue
		}
		if len(locations) > 0 && !locations[s.Location] {
			continue
		}
		out = append(out, s)
	}
	return slices.Clip(out)
}

func toSet[T comparable](items []T) map[T]bool {
	set := make(map[T]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
