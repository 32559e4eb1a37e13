package httpadapter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
)

// Query parameters. Each may repeat; an absent parameter leaves that
// dimension unfiltered.
const (
	paramCategory = "category"
	paramYear     = "year"
	paramLocation = "location"
	paramSpecies  = "species"
	paramTab      = "tab"
)

// parseCriteria reads the filter parameters from q.
func parseCriteria(q url.Values) (domain.Criteria, error) {
	var c domain.Criteria
	for _, v := range values(q, paramCategory) {
		cat, err := domain.ParseCategory(strings.TrimSpace(v))
		if err != nil {
			return domain.Criteria{}, err
		}
		c.Categories = append(c.Categories, cat)
	}
	for _, v := range values(q, paramYear) {
		y, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return domain.Criteria{}, fmt.Errorf("invalid year %q", v)
		}
		c.Years = append(c.Years, y)
	}
	c.Locations = values(q, paramLocation)
	return c, nil
}

// values returns the non-empty values of a repeated parameter. Values are
// not trimmed: sheet labels are matched exactly.
func values(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
