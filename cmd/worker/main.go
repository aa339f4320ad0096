package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/email"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/logger"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New(logger.Config{Service: "staybooking-worker"}).Fatal("load config", "error", err)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "staybooking-worker"})

	if !cfg.Kafka.Enabled {
		log.Fatal("kafka is disabled; the worker has nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.Info("notification worker started", "topic", cfg.Kafka.NotificationsTopic, "group", cfg.Kafka.GroupID)
	err = consumer.ConsumeEvents(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		if event.Type != kafka.EventBookingConfirmed {
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			// Failed emails are logged and skipped.
			log.Warn("confirmation email failed", "booking_id", event.BookingID, "error", err)
		}
		return nil
	}, func(msg kafkaGo.Message, err error) {
		log.Warn("skipping undecodable event", "partition", msg.Partition, "offset", msg.Offset, "error", err)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", "error", err)
		return
	}
	log.Info("notification worker stopped")
}
