package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=kafka_mocks_test.go -package=events

const publishTimeout = 3 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ Publisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	writer         messageWriter
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string, metricsManager *metrics.Manager) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}, metricsManager)
}

func newKafkaPublisher(writer messageWriter, metricsManager *metrics.Manager) *KafkaPublisher {
	return &KafkaPublisher{
		writer:         writer,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// NewPublisher returns a kafka backed publisher, or a no-op one if there are no brokers.
func NewPublisher(brokers []string, topic string, metricsManager *metrics.Manager) Publisher {
	if len(brokers) == 0 || topic == "" {
		log.Debugln("events: no kafka brokers configured, domain events are dropped")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic, metricsManager)
}

// Publish writes the event keyed by user id, so events of one user stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "events.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		result := "ok"
		if err != nil {
			result = "error"
		}
		p.metricsManager.CounterPublishedEvents.WithLabelValues(string(event.Type), result).Inc()
	}()
	span.SetAttributes(attribute.String("event.type", string(event.Type)))

	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// PublishAsync publishes in the background. Failures are only logged; a lost
// notification must never fail the request that caused it.
func PublishAsync(ctx context.Context, publisher Publisher, event Event) {
	if publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := publisher.Publish(ctx, event); err != nil {
			log.Warnf("publish event [%s] for user [%s]: %s", event.Type, event.UserID, err)
		}
	}()
}
