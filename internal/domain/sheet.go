package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Fixed positions of the survey sheet layout (zero-based).
const (
	SurveyorRow      = 1
	DateRow          = 2
	SectionRow       = 3
	FirstSpeciesRow  = 6
	FirstDataColumn  = 3
	SpeciesNameIndex = 0
)

// summaryHeaders are date-row labels of running-total columns.
var summaryHeaders = map[string]bool{
	"Monthly Totals":     true,
	"Total for 2024":     true,
	"Species Total 2024": true,
}

// zonePrefixes start the date-row labels of per-zone subtotal columns.
var zonePrefixes = []string{"North", "South", "East"}

// ErrNoCount marks count cells that are empty or zero: not a sighting, not a
// problem either.
var ErrNoCount = errors.New("no count")

// SkipReason says why a row or cell produced no sighting.
type SkipReason string

const (
	SkipUnknownSpecies SkipReason = "unknown_species"
	SkipEmptyCount     SkipReason = "empty_count"
	SkipInvalidCount   SkipReason = "invalid_count"
	SkipNonPositive    SkipReason = "non_positive_count"
	SkipNoDate         SkipReason = "no_date"
	SkipInvalidDate    SkipReason = "invalid_date"
)

// RowIssue is a species row that was skipped.
type RowIssue struct {
	Row  int
	Name string
}

// CellIssue is a cell whose value could not be used.
type CellIssue struct {
	Row    int
	Column int
	Raw    string
	Err    error
}

// SheetResult is the outcome of extracting one sheet.
type SheetResult struct {
	Sheet       string
	DataColumns []int
	Sightings   []Sighting

	UnknownSpecies []RowIssue
	// DateErrors holds one entry per data column whose date failed to parse,
	// recorded the first time a count in that column needed it.
	DateErrors  []CellIssue
	CountErrors []CellIssue
	Skipped     map[SkipReason]int
}

func (r *SheetResult) skip(reason SkipReason) {
	if r.Skipped == nil {
		r.Skipped = make(map[SkipReason]int)
	}
	r.Skipped[reason]++
}

// SelectDataColumns returns the indices of survey columns in the sheet,
// judged on the date row alone.
func SelectDataColumns(sheet Sheet) []int {
	var cols []int
	for col := FirstDataColumn; col < sheet.Width(); col++ {
		if isDataColumnHeader(sheet.Cell(DateRow, col)) {
			cols = append(cols, col)
		}
	}
	return cols
}

func isDataColumnHeader(c Cell) bool {
	if c.IsEmpty() {
		return false
	}
	label := c.String()
	if summaryHeaders[label] || strings.Contains(label, "#DIV") {
		return false
	}
	for _, prefix := range zonePrefixes {
		if strings.HasPrefix(label, prefix) {
			return false
		}
	}
	return true
}

// ParseCount reads a count cell. It returns ErrNoCount for empty, blank and
// zero cells, and an error for values that are not numbers. Fractional counts
// are truncated; a TRUE cell counts as one bird and FALSE as zero.
func ParseCount(c Cell) (int, error) {
	var v float64
	switch c.Kind {
	case CellEmpty:
		return 0, ErrNoCount
	case CellNumber:
		v = c.Number
	case CellText:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return 0, ErrNoCount
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("parse count %q: %w", c.Text, err)
		}
		v = f
	case CellBool:
		if !c.Bool {
			return 0, ErrNoCount
		}
		v = 1
	default:
		return 0, fmt.Errorf("parse count: unsupported cell value %q", c.String())
	}

	if v == 0 {
		return 0, ErrNoCount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("parse count: %v is not a usable number", v)
	}
	return int(v), nil
}

// ExtractSheet turns a survey sheet into sightings. Rows naming species
// outside the taxonomy, and cells without a usable count or date, are skipped
// and reported in the result; nothing here fails the sheet.
func ExtractSheet(sheet Sheet, taxonomy *Taxonomy) SheetResult {
	res := SheetResult{
		Sheet:       sheet.Name,
		DataColumns: SelectDataColumns(sheet),
	}

	dates := newColumnDates(sheet)

	for row := FirstSpeciesRow; row < len(sheet.Rows); row++ {
		nameCell := sheet.Cell(row, SpeciesNameIndex)
		if nameCell.IsEmpty() {
			continue
		}
		name := nameCell.String()
		taxon, ok := taxonomy.Lookup(name)
		if !ok {
			res.UnknownSpecies = append(res.UnknownSpecies, RowIssue{Row: row, Name: name})
			res.skip(SkipUnknownSpecies)
			continue
		}

		for _, col := range res.DataColumns {
			countCell := sheet.Cell(row, col)
			count, err := ParseCount(countCell)
			switch {
			case errors.Is(err, ErrNoCount):
				res.skip(SkipEmptyCount)
				continue
			case err != nil:
				res.CountErrors = append(res.CountErrors, CellIssue{Row: row, Column: col, Raw: countCell.String(), Err: err})
				res.skip(SkipInvalidCount)
				continue
			case count <= 0:
				res.skip(SkipNonPositive)
				continue
			}

			date, err := dates.resolve(col, &res)
			if err != nil {
				if errors.Is(err, ErrNotADate) {
					res.skip(SkipNoDate)
				} else {
					res.skip(SkipInvalidDate)
				}
				continue
			}

			res.Sightings = append(res.Sightings, Sighting{
				Taxon:     taxon,
				Surveyors: labelOrUnknown(sheet.Cell(SurveyorRow, col)),
				Date:      date,
				Location:  labelOrUnknown(sheet.Cell(SectionRow, col)),
				Count:     count,
			})
		}
	}

	return res
}

// labelOrUnknown reads a surveyor or section header. Line breaks inside a
// cell are normalized to "\n" so labels survive a CSV round trip.
func labelOrUnknown(c Cell) string {
	if c.IsEmpty() {
		return Unknown
	}
	return strings.ReplaceAll(c.String(), "\r\n", "\n")
}

// columnDates parses each column's date cell at most once.
type columnDates struct {
	sheet  Sheet
	parsed map[int]columnDate
}

type columnDate struct {
	date time.Time
	err  error
}

func newColumnDates(sheet Sheet) *columnDates {
	return &columnDates{sheet: sheet, parsed: make(map[int]columnDate)}
}

func (d *columnDates) resolve(col int, res *SheetResult) (time.Time, error) {
	if cd, ok := d.parsed[col]; ok {
		return cd.date, cd.err
	}
	cell := d.sheet.Cell(DateRow, col)
	date, err := ParseSurveyDate(cell)
	if err != nil && !errors.Is(err, ErrNotADate) {
		res.DateErrors = append(res.DateErrors, CellIssue{Row: DateRow, Column: col, Raw: cell.String(), Err: err})
	}
	d.parsed[col] = columnDate{date: date, err: err}
	return date, err
}
