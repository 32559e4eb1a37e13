package excel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
)

// Reader loads the configured survey sheets from the workbook on disk.
// It implements pipeline.WorkbookExtractor. The file is reopened on every
// call so edits to the workbook show up without a restart.
type Reader struct {
	path   string
	sheets []string
	logger *slog.Logger
}

// NewReader creates a Reader for the configured workbook path and sheets.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	return &Reader{
		path:   cfg.WorkbookPath,
		sheets: cfg.SurveySheets,
		logger: logger,
	}
}

// Path is the workbook location, for messages shown to users.
func (r *Reader) Path() string { return r.path }

// ExtractWorkbook reads the survey sheets. A configured sheet the file lacks is
// listed in Missing; only failures to open or read the file return an error.
func (r *Reader) ExtractWorkbook(ctx context.Context) (domain.Workbook, error) {
	wb, err := Open(r.path)
	if err != nil {
		return domain.Workbook{}, err
	}
	defer func() {
		if err := wb.Close(); err != nil {
			r.logger.Warn("close workbook failed", "path", r.path, "error", err)
		}
	}()

	var out domain.Workbook
	for _, name := range r.sheets {
		if err := ctx.Err(); err != nil {
			return domain.Workbook{}, err
		}
		sheet, err := wb.Sheet(name)
		if errors.Is(err, ErrSheetNotFound) {
			out.Missing = append(out.Missing, name)
			continue
		}
		if err != nil {
			return domain.Workbook{}, err
		}
		out.Sheets = append(out.Sheets, sheet)
	}
	return out, nil
}

// CheckReadiness reports whether the workbook can be opened.
func (r *Reader) CheckReadiness(_ context.Context) error {
	wb, err := Open(r.path)
	if err != nil {
		return err
	}
	return wb.Close()
}
