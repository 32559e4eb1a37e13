package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used in exports and messages.
const DateLayout = "2006-01-02"

// Unknown fills surveyor and location fields the sheet leaves blank.
const Unknown = "Unknown"

// Sighting is one recorded count of a species on a survey walk.
// Sightings are produced by ExtractSheet and never modified afterwards.
type Sighting struct {
	Taxon     Taxon     `json:"taxon"`
	Surveyors string    `json:"surveyors"`
	Date      time.Time `json:"date"` // midnight UTC
	Location  string    `json:"location"`
	Count     int       `json:"count"`
}

// Species is the taxon name.
func (s Sighting) Species() string { return s.Taxon.Name }

// Category is the taxon's conservation category.
func (s Sighting) Category() Category { return s.Taxon.Category }

// Year is the survey year.
func (s Sighting) Year() int { return s.Date.Year() }

// Month is the survey month as "YYYY-MM".
func (s Sighting) Month() string { return s.Date.Format("2006-01") }

// ID is a content key for the sighting, stable across re-ingestion of the
// same workbook. Two visits recording identical species, date, section,
// surveyors and count share an ID, so it is a partition key rather than a
// unique identity and must not drive log compaction.
func (s Sighting) ID() string {
	input := fmt.Sprintf("%s|%s|%s|%s|%d", s.Taxon.Name, s.Date.Format(DateLayout), s.Location, s.Surveyors, s.Count)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}

// calendarDate truncates t to midnight UTC of its own calendar day.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
