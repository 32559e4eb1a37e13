//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
	"github.com/couchcryptid/bird-survey-dashboard/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-bird-sightings"

type publishedSighting struct {
	ID        string `json:"id"`
	Species   string `json:"species"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Surveyors string `json:"surveyors"`
	Count     int    `json:"count"`
}

type receivedMessage struct {
	Sighting publishedSighting
	Key      string
	Headers  map[string]string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("bird-survey-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer func() { _ = ctrl.Close() }()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func readSighting(ctx context.Context, t *testing.T, consumer *kafkago.Reader) receivedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sightings topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var s publishedSighting
	require.NoError(t, json.Unmarshal(msg.Value, &s), "unmarshal sighting message")

	return receivedMessage{Sighting: s, Key: string(msg.Key), Headers: headers}
}

type staticSource []domain.Sighting

func (s staticSource) Load(context.Context) ([]domain.Sighting, error) { return s, nil }

func fixtureSightings() []domain.Sighting {
	tax := domain.DefaultTaxonomy()
	robin, _ := tax.Lookup("Robin")
	skylark, _ := tax.Lookup("Skylark")
	wren, _ := tax.Lookup("Wren")

	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Sighting{
		{Taxon: robin, Surveyors: "A. Walker", Date: day(time.April, 15), Location: "Top Meadow", Count: 3},
		{Taxon: skylark, Surveyors: "A. Walker", Date: day(time.April, 15), Location: "Top Meadow", Count: 5},
		{Taxon: wren, Surveyors: "B. Hart", Date: day(time.May, 20), Location: "Orchard", Count: 1},
		{Taxon: robin, Surveyors: "B. Hart", Date: day(time.May, 20), Location: "Orchard", Count: 2},
		{Taxon: skylark, Surveyors: "B. Hart", Date: day(time.June, 3), Location: "Orchard", Count: 3},
	}
}

// TestPipelinePublishesSightings runs the publishing pipeline against a real
// broker and reads every sighting back.
func TestPipelinePublishesSightings(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	sightings := fixtureSightings()
	p := pipeline.New(staticSource(sightings), writer, discardLogger(), observability.NewMetricsForTesting(), 2)

	n, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, len(sightings), n)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	byID := make(map[string]receivedMessage, len(sightings))
	for len(byID) < len(sightings) {
		m := readSighting(ctx, t, consumer)
		byID[m.Key] = m
	}

	for _, s := range sightings {
		m, ok := byID[s.ID()]
		require.True(t, ok, "missing sighting %s", s.ID())
		assert.Equal(t, s.Species(), m.Sighting.Species)
		assert.Equal(t, string(s.Category()), m.Headers[kafka.HeaderCategory])
		assert.Equal(t, s.Species(), m.Headers[kafka.HeaderSpecies])
		assert.Equal(t, s.Date.Format(domain.DateLayout), m.Sighting.Date)
		assert.Equal(t, s.Count, m.Sighting.Count)
		_, err := time.Parse(time.RFC3339, m.Headers[kafka.HeaderIngestedAt])
		assert.NoError(t, err, "ingested_at should be valid RFC3339")
	}
}
