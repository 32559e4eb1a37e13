package httpadapter

import (
	"html/template"
	"net/url"
	"slices"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/report"
)

// barRow is one horizontal bar of a rendered chart. Segments stack left to
// right; Percent is relative to the largest value, or to the longest row when
// the chart is stacked.
type barRow struct {
	Label    string
	Total    float64
	Segments []barSegment
}

type barSegment struct {
	Name    string
	Color   string
	Value   float64
	Percent float64
}

// chartRows lays a chart out as horizontal bars, one per label, summing
// stacked series into segments.
func chartRows(c *report.ChartConfig) []barRow {
	if c == nil || len(c.Series) == 0 {
		return nil
	}

	var rows []barRow
	index := make(map[string]int)
	for _, series := range c.Series {
		for _, p := range series.Data {
			i, ok := index[p.Label]
			if !ok {
				i = len(rows)
				index[p.Label] = i
				rows = append(rows, barRow{Label: p.Label})
			}
			if p.Value == 0 {
				continue
			}
			color := p.Color
			if color == "" {
				color = series.Color
			}
			rows[i].Total += p.Value
			rows[i].Segments = append(rows[i].Segments, barSegment{Name: series.Name, Color: color, Value: p.Value})
		}
	}

	scale := c.Max()
	if c.Stacked {
		for _, r := range rows {
			scale = max(scale, r.Total)
		}
	}
	if scale == 0 {
		return rows
	}
	for i := range rows {
		for j := range rows[i].Segments {
			rows[i].Segments[j].Percent = rows[i].Segments[j].Value / scale * 100
		}
	}
	return rows
}

var templateFuncs = template.FuncMap{
	"categoryColor": func(c domain.Category) template.CSS {
		return template.CSS(report.CategoryColor(c)) //nolint:gosec // fixed palette
	},
	"cssColor": func(s string) template.CSS {
		return template.CSS(s) //nolint:gosec // colors come from the report palette
	},
	"hasCategory": func(list []domain.Category, c domain.Category) bool { return slices.Contains(list, c) },
	"hasYear":     func(list []int, y int) bool { return slices.Contains(list, y) },
	"hasString":   func(list []string, s string) bool { return slices.Contains(list, s) },
	"formatDate":  func(s domain.Sighting) string { return s.Date.Format(domain.DateLayout) },
	"tabURL": func(tab string) template.URL {
		return template.URL("?" + url.Values{paramTab: {tab}}.Encode()) //nolint:gosec // encoded query
	},
}
