// Command validate ingests a survey workbook and reports what the dashboard
// would see: data columns, sightings, and every row or cell that was skipped.
// It exits non-zero when the workbook cannot be read, when none of the
// configured sheets are present, or when the CSV export does not round-trip.
//
// Usage:
//
//	go run ./cmd/validate -workbook sightings_2024_2025.xlsx
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/bird-survey-dashboard/internal/adapter/excel"
	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/export"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
	"github.com/couchcryptid/bird-survey-dashboard/internal/pipeline"
	"github.com/xuri/excelize/v2"
)

// phase tracks pass/fail for a validation phase. Warnings are reported but
// do not fail the phase.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	workbook := flag.String("workbook", config.DefaultWorkbookPath, "path to the survey workbook")
	sheets := flag.String("sheets", config.DefaultSurveySheets, "comma-separated survey sheet names")
	flag.Parse()

	cfg := &config.Config{WorkbookPath: *workbook}
	for _, s := range strings.Split(*sheets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.SurveySheets = append(cfg.SurveySheets, s)
		}
	}

	os.Exit(run(cfg, os.Stdout))
}

func run(cfg *config.Config, out io.Writer) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ing := pipeline.NewIngestor(
		excel.NewReader(cfg, logger),
		pipeline.NewTransformer(nil, logger),
		logger,
		observability.NewMetricsForTesting(),
	)

	fmt.Fprintln(out, "=== Bird Survey Workbook Validation ===")
	fmt.Fprintf(out, "Workbook: %s\n\n", cfg.WorkbookPath)

	sightings, report, err := ing.LoadReport(context.Background())
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{validateSheets(cfg.SurveySheets, report)}
	for _, res := range report.Sheets {
		phases = append(phases, validateSheet(res))
	}
	phases = append(phases, validateExport(sightings))

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		switch {
		case !p.passed():
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		case len(p.warnings) > 0:
			status = fmt.Sprintf("\033[33mPASS (%d warnings)\033[0m", len(p.warnings))
		}
		fmt.Fprintf(out, "  %-48s %s\n", p.name, status)
	}

	fmt.Fprintf(out, "\nSightings: %d across %d species\n", len(sightings), len(domain.DistinctSpecies(sightings)))

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [E%d] %s\n", i+1, e)
		}
		for i, w := range p.warnings {
			fmt.Fprintf(out, "  [W%d] %s\n", i+1, w)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func validateSheets(configured []string, report pipeline.Report) *phase {
	p := &phase{name: "Survey sheets present"}
	for _, name := range report.Missing {
		p.warnf("sheet %q not found", name)
	}
	if len(report.Missing) == len(configured) {
		p.errorf("none of the %d configured sheets are present", len(configured))
	}
	return p
}

func validateSheet(res domain.SheetResult) *phase {
	p := &phase{name: fmt.Sprintf("Sheet %q (%d columns, %d sightings)", res.Sheet, len(res.DataColumns), len(res.Sightings))}
	if len(res.DataColumns) == 0 {
		p.errorf("no data columns found in the date row")
	}
	for _, u := range res.UnknownSpecies {
		p.warnf("row %d: unknown species %q", u.Row+1, u.Name)
	}
	for _, d := range res.DateErrors {
		p.warnf("column %s: unparseable date %q", columnName(d.Column), d.Raw)
	}
	for _, c := range res.CountErrors {
		p.warnf("%s%d: invalid count %q", columnName(c.Column), c.Row+1, c.Raw)
	}
	return p
}

func validateExport(sightings []domain.Sighting) *phase {
	p := &phase{name: "CSV export round-trip"}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sightings); err != nil {
		p.errorf("write: %v", err)
		return p
	}
	back, err := export.ReadCSV(&buf)
	if err != nil {
		p.errorf("read: %v", err)
		return p
	}
	if len(back) != len(sightings) {
		p.errorf("row count: wrote %d, read %d", len(sightings), len(back))
		return p
	}
	for i := range back {
		if !sameSighting(sightings[i], back[i]) {
			p.errorf("row %d differs after round-trip", i+2)
		}
	}
	return p
}

func sameSighting(a, b domain.Sighting) bool {
	return a.Taxon == b.Taxon && a.Date.Equal(b.Date) && a.Count == b.Count &&
		a.Location == b.Location && a.Surveyors == b.Surveyors
}

// columnName renders a zero-based column index as a spreadsheet letter.
func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Sprintf("#%d", col)
	}
	return name
}
