package excel

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// MockUnknownSpecies is the off-list name planted in every mock sheet.
const MockUnknownSpecies = "Mystery Warbler"

var (
	mockSections  = [][2]string{{"Top Meadow", "Long Field"}, {"Orchard", "Hedgerow"}}
	mockSurveyors = []string{"A. Walker", "B. Hart, C. Moss", "D. Finch"}
	mockTrailers  = []string{"Total for 2024", "Species Total 2024", "North Zone", "South Zone", "East Zone", "#DIV/0!"}
)

// MockSheetName is the sheet name used for a survey year.
func MockSheetName(year int) string {
	return fmt.Sprintf("Heal Somerset bird list %d", year)
}

// WriteMockWorkbook saves a synthetic survey workbook to path: one sheet per
// year, two survey visits a month, running-total and zone columns, a mix of
// date encodings, an unlisted species, and a few unusable count cells. The
// same seed always produces the same workbook.
func WriteMockWorkbook(path string, years []int, seed uint64) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // fixture data
	for i, year := range years {
		name := MockSheetName(year)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := writeMockSheet(f, name, year, rng); err != nil {
			return fmt.Errorf("write sheet %q: %w", name, err)
		}
	}
	return f.SaveAs(path)
}

type mockWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

// set writes v at the zero-based (row, col), keeping the first error.
func (w *mockWriter) set(row, col int, v any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, v)
}

func writeMockSheet(f *excelize.File, sheet string, year int, rng *rand.Rand) error {
	w := &mockWriter{f: f, sheet: sheet}
	w.set(0, domain.SpeciesNameIndex, fmt.Sprintf("Heal Somerset bird survey %d", year))
	w.set(domain.FirstSpeciesRow-1, domain.SpeciesNameIndex, "Species")

	// Header columns: two visits then a monthly total, per month.
	type column struct{ survey bool }
	var columns []column
	col := domain.FirstDataColumn
	for month := time.January; month <= time.December; month++ {
		for visit := range 2 {
			day := time.Date(year, month, 7+visit*14, 0, 0, 0, 0, time.UTC)
			w.set(domain.SurveyorRow, col, mockSurveyors[(int(month)+visit)%len(mockSurveyors)])
			w.set(domain.DateRow, col, mockDateCell(day, int(month)))
			w.set(domain.SectionRow, col, mockSections[visit][int(month)%2])
			columns = append(columns, column{survey: true})
			col++
		}
		w.set(domain.DateRow, col, "Monthly Totals")
		columns = append(columns, column{})
		col++
	}
	for _, label := range mockTrailers {
		w.set(domain.DateRow, col, label)
		columns = append(columns, column{})
		col++
	}

	taxa := domain.DefaultTaxonomy().Taxa()
	var names []string
	for i := 0; i < len(taxa); i += 4 {
		names = append(names, taxa[i].Name)
	}
	names = append(names[:3], append([]string{MockUnknownSpecies, ""}, names[3:]...)...)

	for i, name := range names {
		row := domain.FirstSpeciesRow + i
		if name != "" {
			w.set(row, domain.SpeciesNameIndex, name)
		}
		monthTotal := 0
		for j, c := range columns {
			cellCol := domain.FirstDataColumn + j
			if !c.survey {
				if monthTotal > 0 {
					w.set(row, cellCol, monthTotal)
				}
				monthTotal = 0
				continue
			}
			if rng.IntN(10) < 4 {
				continue
			}
			n := rng.IntN(12) + 1
			monthTotal += n
			if rng.IntN(5) == 0 {
				w.set(row, cellCol, float64(n))
			} else {
				w.set(row, cellCol, n)
			}
		}
	}

	// Unusable counts: free text, zero, negative.
	w.set(domain.FirstSpeciesRow, domain.FirstDataColumn, "c. 5")
	w.set(domain.FirstSpeciesRow+1, domain.FirstDataColumn, 0)
	w.set(domain.FirstSpeciesRow+2, domain.FirstDataColumn, -2)
	return w.err
}

// mockDateCell cycles through the date encodings seen in hand-kept sheets.
func mockDateCell(day time.Time, month int) any {
	switch month % 4 {
	case 0:
		return day.Format("02/01/2006")
	case 1:
		return day
	case 2:
		return day.Format("2/1/06")
	default:
		return day.Format("2006-01-02T15:04:05Z")
	}
}
