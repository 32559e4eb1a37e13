package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Message header keys set on every published sighting.
const (
	HeaderSpecies    = "species"
	HeaderCategory   = "category"
	HeaderIngestedAt = "ingested_at"
)

// Writer produces sighting messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sightings topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes sightings in a single WriteMessages
// call. Messages are keyed by sighting ID so re-running an ingest lands
// duplicates on the same partition for compaction.
func (w *Writer) LoadBatch(ctx context.Context, sightings []domain.Sighting) error {
	if len(sightings) == 0 {
		return nil
	}
	ingestedAt := domain.Now()
	msgs := make([]kafkago.Message, len(sightings))
	for i := range sightings {
		msg, err := serializeToMessage(sightings[i], ingestedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write sightings: %w", err)
	}
	w.logger.Debug("sightings written", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// sightingMessage is the published JSON shape.
type sightingMessage struct {
	ID        string          `json:"id"`
	Species   string          `json:"species"`
	Category  domain.Category `json:"category"`
	Date      string          `json:"date"`
	Location  string          `json:"location"`
	Surveyors string          `json:"surveyors"`
	Count     int             `json:"count"`
}

// serializeToMessage marshals a Sighting into a Kafka message.
func serializeToMessage(s domain.Sighting, ingestedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(sightingMessage{
		ID:        s.ID(),
		Species:   s.Species(),
		Category:  s.Category(),
		Date:      s.Date.Format(domain.DateLayout),
		Location:  s.Location,
		Surveyors: s.Surveyors,
		Count:     s.Count,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize sighting: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.ID()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderSpecies, Value: []byte(s.Species())},
			{Key: HeaderCategory, Value: []byte(s.Category())},
			{Key: HeaderIngestedAt, Value: []byte(ingestedAt.Format(time.RFC3339))},
		},
	}, nil
}
