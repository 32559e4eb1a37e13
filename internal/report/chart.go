package report

import (
	"slices"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
)

// Chart titles and axis labels as shown on the dashboard.
const (
	SpeciesChartTitle  = "Species Sightings by Conservation Status"
	TimelineChartTitle = "Monthly Sightings Timeline"
)

// CategoryColors are the bar colors for each conservation category.
var CategoryColors = map[domain.Category]string{
	domain.Green: "#2E7D32",
	domain.Amber: "#F57C00",
	domain.Red:   "#C62828",
}

// unlistedColor is used for a category outside the known three.
const unlistedColor = "#9E9E9E"

// seriesColors cycle across timeline series, one per species.
var seriesColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartConfig is a render-agnostic description of a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	Stacked    bool          `json:"stacked,omitempty"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one named run of points.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single bar or point. Color overrides the series color.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Max returns the largest point value across all series.
func (c *ChartConfig) Max() float64 {
	var m float64
	for _, s := range c.Series {
		for _, p := range s.Data {
			m = max(m, p.Value)
		}
	}
	return m
}

// CategoryColor returns the display color for a conservation category.
func CategoryColor(c domain.Category) string {
	if color, ok := CategoryColors[c]; ok {
		return color
	}
	return unlistedColor
}

// SpeciesChart builds the species totals bar chart, one bar per species in
// descending order of total, colored by conservation category. It returns
// nil when there is nothing to plot.
func SpeciesChart(sightings []domain.Sighting) *ChartConfig {
	totals := domain.SpeciesTotals(sightings)
	if len(totals) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(totals))
	colors := make([]string, 0, len(totals))
	for _, t := range totals {
		color := CategoryColor(t.Category)
		points = append(points, ChartPoint{
			Label: t.Species,
			Value: float64(t.Total),
			Color: color,
		})
		colors = append(colors, color)
	}

	return &ChartConfig{
		ChartType: "bar",
		Title:     SpeciesChartTitle,
		XAxis:     "Species",
		YAxis:     "Total Count",
		Series:    []ChartSeries{{Name: "Total Count", Data: points}},
		Colors:    colors,
	}
}

// TimelineChart builds the monthly stacked bar chart for the selected
// species. Months run in calendar order; a species with no sightings in a
// month gets a zero bar there. It returns nil when the selection has no
// sightings.
func TimelineChart(sightings []domain.Sighting, species []string) *ChartConfig {
	counts := domain.MonthlyCounts(sightings, species)
	if len(counts) == 0 {
		return nil
	}

	var months, names []string
	bySpecies := make(map[string]map[string]int)
	for _, mc := range counts {
		if _, ok := bySpecies[mc.Species]; !ok {
			bySpecies[mc.Species] = make(map[string]int)
			names = append(names, mc.Species)
		}
		bySpecies[mc.Species][mc.Month] += mc.Count
		if !slices.Contains(months, mc.Month) {
			months = append(months, mc.Month)
		}
	}
	slices.Sort(months)

	series := make([]ChartSeries, 0, len(names))
	colors := make([]string, 0, len(names))
	for i, name := range names {
		points := make([]ChartPoint, 0, len(months))
		for _, m := range months {
			points = append(points, ChartPoint{Label: m, Value: float64(bySpecies[name][m])})
		}
		color := seriesColors[i%len(seriesColors)]
		series = append(series, ChartSeries{Name: name, Data: points, Color: color})
		colors = append(colors, color)
	}

	return &ChartConfig{
		ChartType:  "bar",
		Title:      TimelineChartTitle,
		XAxis:      "Month",
		YAxis:      "Total Birds Counted",
		Series:     series,
		Colors:     colors,
		Stacked:    true,
		ShowLegend: true,
	}
}
