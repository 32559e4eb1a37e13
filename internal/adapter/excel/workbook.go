package excel

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a workbook has no sheet with the
// requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an open spreadsheet file.
type Workbook struct {
	file *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the workbook's sheets in tab order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet reads every populated row of the named sheet into a cell grid,
// keeping each cell's stored representation rather than its display format.
func (w *Workbook) Sheet(name string) (domain.Sheet, error) {
	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return domain.Sheet{}, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("read sheet %q: %w", name, err)
	}

	sheet := domain.Sheet{Name: name, Rows: make([][]domain.Cell, len(rows))}
	for r, row := range rows {
		cells := make([]domain.Cell, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return domain.Sheet{}, fmt.Errorf("read sheet %q: %w", name, err)
			}
			typ, err := w.file.GetCellType(name, axis)
			if err != nil {
				return domain.Sheet{}, fmt.Errorf("read sheet %q cell %s: %w", name, axis, err)
			}
			cells[c] = toCell(typ, raw)
		}
		sheet.Rows[r] = cells
	}
	return sheet, nil
}

// toCell converts a raw stored value into a domain cell. Numbers are stored
// untyped, so anything not explicitly a string, bool or date is tried as a
// number first.
func toCell(typ excelize.CellType, raw string) domain.Cell {
	if raw == "" {
		return domain.Cell{}
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return domain.TextCell(raw)
	case excelize.CellTypeBool:
		return domain.BoolCell(raw == "1" || strings.EqualFold(raw, "TRUE"))
	case excelize.CellTypeDate:
		if t, ok := parseStoredDate(raw); ok {
			return domain.TimeCell(t)
		}
		return domain.TextCell(raw)
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return domain.NumberCell(f)
		}
		return domain.TextCell(raw)
	}
}

// storedDateLayouts cover the ISO 8601 forms written for t="d" cells.
var storedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseStoredDate(raw string) (time.Time, bool) {
	for _, layout := range storedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
