package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
)

// Event types
const (
	UserRegistered    = "user.registered"
	UserStatusChanged = "user.status_changed"
	VideoUploaded     = "video.uploaded"
	NoteUploaded      = "note.uploaded"
	QuizCreated       = "quiz.created"
)

// MetadataEventType is the message metadata key carrying the event type
const MetadataEventType = "event_type"

// Envelope is the JSON body of every published message
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Config selects the transport. No brokers means an in-process channel.
type Config struct {
	KafkaBrokers []string
	Topic        string
}

// Publisher emits domain events. Publishing never fails the caller:
// errors are logged and dropped.
type Publisher struct {
	pub    message.Publisher
	topic  string
	logger zerolog.Logger
}

// NewPublisher builds a Kafka publisher when brokers are configured and a
// gochannel publisher otherwise.
func NewPublisher(cfg Config, lgr zerolog.Logger) (*Publisher, error) {
	adapter := NewZerologAdapter(lgr)

	if len(cfg.KafkaBrokers) == 0 {
		lgr.Info().Str("topic", cfg.Topic).Msg("Events will be published in-process")
		return NewPublisherWith(gochannel.NewGoChannel(gochannel.Config{}, adapter), cfg.Topic, lgr), nil
	}

	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	lgr.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.Topic).Msg("Events will be published to Kafka")
	return NewPublisherWith(pub, cfg.Topic, lgr), nil
}

// NewPublisherWith wraps an existing watermill publisher
func NewPublisherWith(pub message.Publisher, topic string, lgr zerolog.Logger) *Publisher {
	return &Publisher{pub: pub, topic: topic, logger: lgr}
}

// Publish sends eventType with payload. A nil Publisher is a no-op.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	if p == nil || p.pub == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("event", eventType).Msg("Failed to encode event payload")
		return
	}

	data, err := json.Marshal(Envelope{Type: eventType, OccurredAt: time.Now().UTC(), Payload: body})
	if err != nil {
		p.logger.Error().Err(err).Str("event", eventType).Msg("Failed to encode event envelope")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataEventType, eventType)
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		p.logger.Error().Err(err).Str("event", eventType).Str("topic", p.topic).Msg("Failed to publish event")
		return
	}
	p.logger.Debug().Str("event", eventType).Str("messageId", msg.UUID).Msg("Event published")
}

// Close releases the underlying transport
func (p *Publisher) Close() error {
	if p == nil || p.pub == nil {
		return nil
	}
	return p.pub.Close()
}
