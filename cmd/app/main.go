package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/staybooking/api"
	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/bootstrap"
	"github.com/Domenick1991/staybooking/internal/cache"
	"github.com/Domenick1991/staybooking/internal/catalog"
	"github.com/Domenick1991/staybooking/internal/email"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/logger"
	"github.com/Domenick1991/staybooking/internal/metrics"
	"github.com/Domenick1991/staybooking/internal/notify"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/Domenick1991/staybooking/internal/service/listings"
	"github.com/Domenick1991/staybooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New(logger.Config{Service: "staybooking"}).Fatal("load config", "error", err)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "staybooking"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listingsData, err := catalog.Generate(cfg.Catalog.Size, catalog.NewRand(cfg.Catalog.Seed))
	if err != nil {
		log.Fatal("generate catalog", "error", err)
	}
	index := catalog.NewIndex(listingsData)
	log.Info("catalog generated", "count", index.Len(), "version", index.Version(), "seeded", cfg.Catalog.Seed != 0)

	ledger, closeLedger, err := bootstrap.OpenLedger(ctx, cfg)
	if err != nil {
		log.Fatal("open ledger", "driver", cfg.Ledger.Driver, "error", err)
	}
	defer closeLedger()
	log.Info("ledger ready", "driver", cfg.Ledger.Driver, "durable", cfg.Ledger.Durable())

	m := metrics.New(prometheus.DefaultRegisterer)

	listingOpts := []listings.ListingServiceOption{listings.WithLogger(log), listings.WithMetrics(m)}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.ListingsTTL)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unreachable, listing pages will be computed per request", "error", err)
		}
		listingOpts = append(listingOpts, listings.WithCache(redisCache))
	}
	listingService := listings.NewListingService(index, listingOpts...)

	var notifier notify.Notifier
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Warn("kafka unreachable, confirmations will fail until it recovers", "error", err)
		}
		notifier = notify.NewKafkaNotifier(producer, cfg.Kafka.NotificationsTopic, cfg.Kafka.PublishRetries)
	} else {
		notifier = notify.NewEmailNotifier(email.NewSender(log))
	}

	bookingService := booking.NewBookingService(ledger, index,
		booking.WithNotifier(notifier),
		booking.WithNotifyTimeout(time.Duration(cfg.Notification.TimeoutSeconds)*time.Second),
		booking.WithLogger(log),
		booking.WithMetrics(m),
	)
	defer bookingService.Wait()

	userService := users.NewUserService(ledger, log, m)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Handlers{
		Listings: api.NewListingHandler(listingService),
		Bookings: api.NewBookingHandler(bookingService),
		Users:    api.NewUserHandler(userService),
		Metrics:  promhttp.Handler(),
	}, log)

	log.Info("http server starting", "address", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg.HTTP, router); err != nil {
		log.Error("server error", "error", err)
	}
}
