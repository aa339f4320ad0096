package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/logger"
)

// Sender renders booking confirmations to the log in place of a mail transport.
type Sender struct {
	log *logger.Logger
}

func NewSender(log *logger.Logger) *Sender {
	return &Sender{log: log}
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func Compose(event kafka.BookingEvent) Message {
	return Message{
		To:      event.GuestEmail,
		Subject: fmt.Sprintf("Booking Confirmed - %d", event.BookingID),
		Body: fmt.Sprintf("Dear %s, your booking at Hotel ID %d for %s is confirmed.",
			event.GuestName, event.ListingID, event.StayDate),
	}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	msg := Compose(event)
	s.log.Info("sending booking confirmation",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
