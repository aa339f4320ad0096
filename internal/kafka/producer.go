package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const EventBookingConfirmed = "booking_confirmed"

// BookingEvent is the payload the notification worker consumes.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	ListingID  int64     `json:"listing_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	StayDate   string    `json:"stay_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	brokers []string
	writer  messageWriter
	backoff func(attempt int) time.Duration
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		backoff: linearBackoff,
	}
}

func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}

var errEncode = errors.New("encode payload")

func encodeMessage(topic, key string, payload any) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", errEncode, err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}, nil
}

// Publish writes one JSON message. Messages with the same key land on the same partition.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	msg, err := encodeMessage(topic, key, payload)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}
	return nil
}

// PublishWithRetry makes at most maxRetries attempts and stops early when ctx is done.
// A payload that cannot be encoded is not retried.
func (p *Producer) PublishWithRetry(ctx context.Context, topic, key string, payload any, maxRetries int) error {
	msg, err := encodeMessage(topic, key, payload)
	if err != nil {
		return err
	}
	maxRetries = max(maxRetries, 1)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if lastErr = p.writer.WriteMessages(ctx, msg); lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("publish cancelled after %d attempts: %w", attempt, lastErr)
		case <-time.After(p.backoff(attempt)):
		}
	}
	return fmt.Errorf("publish failed after %d attempts: %w", maxRetries, lastErr)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads partition metadata.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("dial kafka: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ReadPartitions(); err != nil {
		return fmt.Errorf("read partitions: %w", err)
	}
	return nil
}
