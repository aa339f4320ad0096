// Package notify delivers booking confirmations to the messaging collaborator.
package notify

import (
	"context"
	"strconv"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/email"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/google/uuid"
)

type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking domain.Booking) error
}

type Publisher interface {
	PublishWithRetry(ctx context.Context, topic, key string, payload any, maxRetries int) error
}

func bookingEvent(b domain.Booking) kafka.BookingEvent {
	return kafka.BookingEvent{
		EventID:    uuid.NewString(),
		Type:       kafka.EventBookingConfirmed,
		BookingID:  b.ID,
		ListingID:  b.ListingID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		StayDate:   b.StayDate,
		CreatedAt:  b.CreatedAt,
	}
}

// KafkaNotifier publishes a booking_confirmed event keyed by booking id; the worker
// turns it into an email.
type KafkaNotifier struct {
	publisher  Publisher
	topic      string
	maxRetries int
}

func NewKafkaNotifier(publisher Publisher, topic string, maxRetries int) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, topic: topic, maxRetries: maxRetries}
}

func (n *KafkaNotifier) NotifyBookingConfirmed(ctx context.Context, b domain.Booking) error {
	return n.publisher.PublishWithRetry(ctx, n.topic, strconv.FormatInt(b.ID, 10), bookingEvent(b), n.maxRetries)
}

// EmailNotifier sends in-process, for deployments without Kafka.
type EmailNotifier struct {
	sender *email.Sender
}

func NewEmailNotifier(sender *email.Sender) *EmailNotifier {
	return &EmailNotifier{sender: sender}
}

func (n *EmailNotifier) NotifyBookingConfirmed(ctx context.Context, b domain.Booking) error {
	return n.sender.Send(ctx, bookingEvent(b))
}

var (
	_ Notifier  = (*KafkaNotifier)(nil)
	_ Notifier  = (*EmailNotifier)(nil)
	_ Publisher = (*kafka.Producer)(nil)
)
