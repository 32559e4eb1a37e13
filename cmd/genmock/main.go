// Command genmock writes a synthetic survey workbook in the layout the
// dashboard reads, for local runs and demos.
//
// Usage:
//
//	go run ./cmd/genmock -out sightings_2024_2025.xlsx -years 2024,2025 -seed 1
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/couchcryptid/bird-survey-dashboard/internal/adapter/excel"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "sightings_2024_2025.xlsx", "output workbook path")
	yearList := flag.String("years", "2024,2025", "comma-separated survey years, one sheet each")
	seed := flag.Uint64("seed", 1, "random seed for counts")
	flag.Parse()

	years, err := parseYears(*yearList)
	if err != nil {
		flag.Usage()
		return err
	}

	if err := excel.WriteMockWorkbook(*out, years, *seed); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	names := make([]string, len(years))
	for i, y := range years {
		names[i] = excel.MockSheetName(y)
	}
	log.Printf("wrote %s (sheets: %s)", *out, strings.Join(names, ", "))
	return nil
}

func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil || y < 1900 || y > 9999 {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("at least one year is required")
	}
	return years, nil
}
