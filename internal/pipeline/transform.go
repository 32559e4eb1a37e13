package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
)

// SurveyTransformer implements SheetTransformer using the domain extraction
// rules against a fixed taxonomy, and logs what it had to skip.
type SurveyTransformer struct {
	taxonomy *domain.Taxonomy
	logger   *slog.Logger
}

// NewTransformer creates a SurveyTransformer. Pass a nil taxonomy to use the
// built-in survey species list.
func NewTransformer(taxonomy *domain.Taxonomy, logger *slog.Logger) *SurveyTransformer {
	if taxonomy == nil {
		taxonomy = domain.DefaultTaxonomy()
	}
	return &SurveyTransformer{
		taxonomy: taxonomy,
		logger:   logger,
	}
}

func (t *SurveyTransformer) TransformSheet(sheet domain.Sheet) domain.SheetResult {
	res := domain.ExtractSheet(sheet, t.taxonomy)

	for _, issue := range res.UnknownSpecies {
		t.logger.Warn("unknown species, skipping row",
			"sheet", res.Sheet,
			"row", issue.Row,
			"name", issue.Name,
		)
	}
	for _, issue := range res.DateErrors {
		t.logger.Warn("unparseable survey date, skipping column",
			"sheet", res.Sheet,
			"column", issue.Column,
			"raw", issue.Raw,
			"error", issue.Err,
		)
	}
	// Count failures are routine in hand-kept sheets; keep them out of the
	// default log level.
	for _, issue := range res.CountErrors {
		t.logger.Debug("invalid count, skipping cell",
			"sheet", res.Sheet,
			"row", issue.Row,
			"column", issue.Column,
			"raw", issue.Raw,
		)
	}

	t.logger.Debug("sheet extracted",
		"sheet", res.Sheet,
		"data_columns", len(res.DataColumns),
		"sightings", len(res.Sightings),
	)
	return res
}
