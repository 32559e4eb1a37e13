// Package domain models the Heal Somerset bird survey: the reference species
// taxonomy, individual sightings, and the rules that turn a survey sheet into
// sightings.
//
// # Data Source
//
// Surveys are recorded by volunteers in a single workbook with one sheet per
// survey year ("Heal Somerset bird list 2024", "Heal Somerset bird list 2025").
// Each column of a sheet is one survey walk; each row below the header block is
// one species.
//
// # Sheet Layout
//
// Positions are zero-based and fixed:
//
//	row 1        surveyor names, one per survey column
//	row 2        survey date, one per survey column
//	row 3        field section walked ("Location")
//	row 6..      species rows; column 0 holds the species name
//	column 3..   survey columns; columns 0-2 are name/metadata
//
// Not every column past column 2 is a survey. Volunteers keep running totals
// alongside the data, so a column is only read when its date cell is present
// and is none of:
//
//	"Monthly Totals", "Total for 2024", "Species Total 2024"
//	anything starting with "North", "South" or "East" (zone subtotals)
//	anything containing "#DIV" (broken average formulas)
//
// See [SelectDataColumns].
//
// # Date Encodings
//
// The date row mixes four encodings, handled by [ParseSurveyDate]:
//
//	Free text with a time-of-day prefix: "8.30am 3/5/2025", "8am 21/06/25".
//	  The date is the last whitespace-separated token. Day/month order is
//	  preferred over month/day; two-digit years are read as 19yy and moved to
//	  20yy when that lands before 1950.
//	ISO-8601 timestamps: "2025-05-03T08:30:00Z".
//	Excel serial numbers: 45415 = 2024-05-03. Serials count from 1900-01-01 as
//	  day 1 and include Excel's phantom 1900-02-29, hence the -2 offset.
//	Native date cells: used as-is.
//
// # Counts
//
// Count cells hold whole numbers, sometimes stored as floats ("2.0"). Empty,
// zero, non-numeric and non-positive counts produce no sighting.
//
// # Conservation Status
//
// Species carry their UK Birds of Conservation Concern list: Green, Amber or
// Red. The taxonomy in species.go is an allow-list; rows naming any other
// species are skipped with a warning.
package domain
