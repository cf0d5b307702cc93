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
	"github.com/Domenick1991/airbooking-client/internal/email"
	"github.com/Domenick1991/airbooking-client/internal/kafka"
	"github.com/Domenick1991/airbooking-client/internal/logging"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/Domenick1991/airbooking-client/internal/worker"
	"github.com/robfig/cron/v3"
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

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("worker requires kafka.brokers")
	}

	store, closeStore, err := bootstrap.OpenSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open session store", zap.Error(err))
	}
	defer closeStore()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	client := bootstrap.NewAPIClient(cfg, store, logger)
	bookingService := booking.NewBookingService(client, store, producer, cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)

	scheduler := cron.New()
	if cfg.Redis.Addr != "" {
		rdb := cache.NewClient(cfg.Redis)
		defer rdb.Close()
		statuses := cache.NewRedisCache(rdb, time.Duration(cfg.Redis.LocationsTTLSeconds)*time.Second)
		statusSync := worker.NewStatusSync(bookingService, statuses, producer, cfg.Kafka.NotificationsTopic, logger)
		if _, err := statusSync.Schedule(ctx, scheduler, cfg.Worker.StatusSyncSchedule); err != nil {
			logger.Fatal("schedule status sync", zap.String("spec", cfg.Worker.StatusSyncSchedule), zap.Error(err))
		}
	} else {
		logger.Info("redis not configured, status sync disabled")
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	emailSender := email.NewSender(logger)

	logger.Info("worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))
	if err := consumer.ConsumeBookingEvents(ctx, emailSender.Send); err != nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
	logger.Info("worker shutting down")
}
