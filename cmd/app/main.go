package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airbooking-client/config"
	"github.com/Domenick1991/airbooking-client/internal/bootstrap"
	"github.com/Domenick1991/airbooking-client/internal/cache"
	"github.com/Domenick1991/airbooking-client/internal/kafka"
	"github.com/Domenick1991/airbooking-client/internal/logging"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/Domenick1991/airbooking-client/internal/service/confirmation"
	"github.com/Domenick1991/airbooking-client/internal/service/flights"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open session store", zap.Error(err))
	}
	defer closeStore()

	client := bootstrap.NewAPIClient(cfg, store, logger)

	var locations flights.LocationsCache
	if cfg.Redis.Addr != "" {
		rdb := cache.NewClient(cfg.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, locations are not cached", zap.Error(err))
		} else {
			locations = cache.NewRedisCache(rdb, time.Duration(cfg.Redis.LocationsTTLSeconds)*time.Second)
		}
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer p.Close()
		if err := p.CheckConnection(ctx); err != nil {
			logger.Warn("kafka unavailable, booking events are not published", zap.Error(err))
		} else {
			producer = p
		}
	}

	flightService := flights.NewFlightService(client, locations, logger)
	bookingService := booking.NewBookingService(
		client,
		store,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)
	reconciler := confirmation.NewReconciler(client, logger)

	svcs := bootstrap.Services{
		Flights:   flightService,
		Bookings:  bookingService,
		Confirmer: reconciler,
	}
	if err := bootstrap.Run(ctx, cfg, svcs, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
