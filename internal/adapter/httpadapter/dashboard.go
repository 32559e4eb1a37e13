package httpadapter

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"

	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/export"
	"github.com/couchcryptid/bird-survey-dashboard/internal/report"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*
var templateFS embed.FS

// mdRenderer renders the dashboard introduction with hard line breaks.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// emptyMessage is shown when ingestion produced no sightings.
const emptyMessage = "No sightings could be loaded from the file."

// SightingLoader produces the full sighting set for one request.
type SightingLoader interface {
	Load(ctx context.Context) ([]domain.Sighting, error)
}

// Dashboard serves the HTML dashboard, its JSON API, and the CSV export.
// Every request ingests the workbook afresh.
type Dashboard struct {
	loader         SightingLoader
	workbookPath   string
	exportFilename string
	logger         *slog.Logger
	page           *template.Template
	intro          template.HTML
}

// NewDashboard parses the embedded templates. It fails only if they are
// malformed.
func NewDashboard(loader SightingLoader, cfg *config.Config, logger *slog.Logger) (*Dashboard, error) {
	page, err := template.New("dashboard.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	md, err := templateFS.ReadFile("templates/intro.md")
	if err != nil {
		return nil, fmt.Errorf("read intro: %w", err)
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("render intro: %w", err)
	}

	return &Dashboard{
		loader:         loader,
		workbookPath:   cfg.WorkbookPath,
		exportFilename: cfg.ExportFilename,
		logger:         logger,
		page:           page,
		intro:          template.HTML(buf.String()), //nolint:gosec // rendered from an embedded file
	}, nil
}

// Register adds the dashboard routes to mux.
func (d *Dashboard) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", d.handlePage)
	mux.HandleFunc("GET /api/overview", d.handleOverview)
	mux.HandleFunc("GET /api/species", d.handleSpecies)
	mux.HandleFunc("GET /api/sightings", d.handleSightings)
	mux.HandleFunc("GET /export.csv", d.handleExport)
}

// emptyResponse is the JSON body for an empty dataset.
type emptyResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Workbook string `json:"workbook"`
	Error    string `json:"error,omitempty"`
}

func (d *Dashboard) writeEmpty(w http.ResponseWriter, loadErr error) {
	resp := emptyResponse{Status: "empty", Message: emptyMessage, Workbook: d.workbookPath}
	if loadErr != nil {
		resp.Error = loadErr.Error()
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) handleOverview(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sightings, loadErr := d.loader.Load(r.Context())
	if len(sightings) == 0 {
		d.writeEmpty(w, loadErr)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report.BuildOverview(sightings, criteria))
}

func (d *Dashboard) handleSpecies(w http.ResponseWriter, r *http.Request) {
	sightings, loadErr := d.loader.Load(r.Context())
	if len(sightings) == 0 {
		d.writeEmpty(w, loadErr)
		return
	}
	selected := values(r.URL.Query(), paramSpecies)
	sharedobs.WriteJSON(w, http.StatusOK, report.BuildSpeciesDetail(sightings, selected))
}

// sightingRow is the raw-data JSON shape, matching the CSV columns.
type sightingRow struct {
	Date      string          `json:"date"`
	Species   string          `json:"species"`
	Category  domain.Category `json:"conservation_status"`
	Count     int             `json:"count"`
	Location  string          `json:"location"`
	Surveyors string          `json:"surveyors"`
}

func (d *Dashboard) handleSightings(w http.ResponseWriter, r *http.Request) {
	sightings, loadErr := d.loader.Load(r.Context())
	if len(sightings) == 0 {
		d.writeEmpty(w, loadErr)
		return
	}
	rows := make([]sightingRow, 0, len(sightings))
	for _, s := range sightings {
		rows = append(rows, sightingRow{
			Date:      s.Date.Format(domain.DateLayout),
			Species:   s.Species(),
			Category:  s.Category(),
			Count:     s.Count,
			Location:  s.Location,
			Surveyors: s.Surveyors,
		})
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"sightings": rows})
}

// handleExport streams every sighting, unfiltered, as CSV. An empty dataset
// still yields the header line.
func (d *Dashboard) handleExport(w http.ResponseWriter, r *http.Request) {
	sightings, _ := d.loader.Load(r.Context())

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sightings); err != nil {
		d.logger.Error("write csv export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.exportFilename))
	_, _ = w.Write(buf.Bytes())
}

// Tabs of the HTML page.
const (
	tabOverview = "overview"
	tabSpecies  = "species"
	tabRaw      = "raw"
)

type pageData struct {
	Intro        template.HTML
	Tab          string
	Empty        bool
	Message      string
	WorkbookPath string
	LoadError    string
	FilterError  string

	Overview  report.Overview
	Detail    report.SpeciesDetail
	Sightings []domain.Sighting

	SpeciesBars  []barRow
	TimelineBars []barRow
}

func (d *Dashboard) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Intro:        d.intro,
		Tab:          tabOverview,
		WorkbookPath: d.workbookPath,
	}
	if tab := q.Get(paramTab); slices.Contains([]string{tabOverview, tabSpecies, tabRaw}, tab) {
		data.Tab = tab
	}

	sightings, loadErr := d.loader.Load(r.Context())
	if len(sightings) == 0 {
		data.Empty = true
		data.Message = emptyMessage
		if loadErr != nil {
			data.LoadError = loadErr.Error()
		}
		d.render(w, data)
		return
	}

	criteria, err := parseCriteria(q)
	if err != nil {
		data.FilterError = err.Error()
		criteria = domain.Criteria{}
	}
	data.Overview = report.BuildOverview(sightings, criteria)
	data.Detail = report.BuildSpeciesDetail(sightings, values(q, paramSpecies))
	data.Sightings = sightings
	data.SpeciesBars = chartRows(data.Overview.Chart)
	data.TimelineBars = chartRows(data.Detail.Timeline)

	d.render(w, data)
}

func (d *Dashboard) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := d.page.Execute(&buf, data); err != nil {
		d.logger.Error("render dashboard failed", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
