// Package export writes and reads the flat CSV form of a sighting set.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
)

// Header is the CSV column order.
var Header = []string{"Date", "Species", "Conservation Status", "Count", "Location", "Surveyors"}

// ContentType is the MIME type of the export.
const ContentType = "text/csv"

// WriteCSV writes a header line and one row per sighting, in input order.
func WriteCSV(w io.Writer, sightings []domain.Sighting) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range sightings {
		record := []string{
			s.Date.Format(domain.DateLayout),
			s.Species(),
			string(s.Category()),
			strconv.Itoa(s.Count),
			s.Location,
			s.Surveyors,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export produced by WriteCSV back into sightings, in file
// order.
func ReadCSV(r io.Reader) ([]domain.Sighting, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("read csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("read csv: unexpected header %q", header)
	}

	var out []domain.Sighting
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		s, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseRecord(record []string) (domain.Sighting, error) {
	date, err := time.Parse(domain.DateLayout, record[0])
	if err != nil {
		return domain.Sighting{}, fmt.Errorf("date: %w", err)
	}
	category, err := domain.ParseCategory(record[2])
	if err != nil {
		return domain.Sighting{}, err
	}
	count, err := strconv.Atoi(record[3])
	if err != nil {
		return domain.Sighting{}, fmt.Errorf("count: %w", err)
	}
	return domain.Sighting{
		Taxon:     domain.Taxon{Name: record[1], Category: category},
		Date:      date,
		Count:     count,
		Location:  record[4],
		Surveyors: record[5],
	}, nil
}
