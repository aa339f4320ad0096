package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventHandler handles one decoded event. Returning an error stops consumption.
type EventHandler func(ctx context.Context, event BookingEvent) error

// SkipHandler is told about messages that are not valid booking events.
type SkipHandler func(msg kafka.Message, err error)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeEvents reads until ctx is cancelled or handle fails. Messages that do not decode
// are reported to skip and committed so they cannot block the partition.
func (c *Consumer) ConsumeEvents(ctx context.Context, handle EventHandler, skip SkipHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		if err := dispatch(ctx, msg, handle, skip); err != nil {
			return err
		}
	}
}

func dispatch(ctx context.Context, msg kafka.Message, handle EventHandler, skip SkipHandler) error {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		if skip != nil {
			skip(msg, err)
		}
		return nil
	}
	return handle(ctx, event)
}
