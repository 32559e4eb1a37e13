package config

import (
	"errors"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Defaults for the survey workbook location and its sheets.
const (
	DefaultWorkbookPath = "sightings_2024_2025.xlsx"
	DefaultSurveySheets = "Heal Somerset bird list 2024,Heal Somerset bird list 2025"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	WorkbookPath   string
	SurveySheets   []string
	ExportFilename string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional publishing of ingested sightings.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
	BatchSize    int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	brokers := sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		WorkbookPath:    sharedcfg.EnvOrDefault("WORKBOOK_PATH", DefaultWorkbookPath),
		SurveySheets:    parseSheets(sharedcfg.EnvOrDefault("SURVEY_SHEETS", DefaultSurveySheets)),
		ExportFilename:  sharedcfg.EnvOrDefault("EXPORT_FILENAME", "heal_somerset_bird_sightings.csv"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "bird-sightings"),
		BatchSize:       batchSize,
	}

	if cfg.WorkbookPath == "" {
		return nil, errors.New("WORKBOOK_PATH is required")
	}
	if len(cfg.SurveySheets) == 0 {
		return nil, errors.New("SURVEY_SHEETS must name at least one sheet")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

// parseSheets splits a comma-separated list of sheet names. Names are
// trimmed, but inner spaces are kept since they are part of the tab name.
func parseSheets(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
