// Package worker holds the background jobs run by cmd/worker.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/kafka"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type BookingLister interface {
	Bookings(ctx context.Context) ([]domain.Booking, error)
}

// StatusStore remembers the last status seen per booking.
type StatusStore interface {
	BookingStatus(ctx context.Context, bookingID string) (domain.BookingStatus, bool, error)
	SetBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// StatusSync publishes booking_status_changed for every booking whose
// status differs from the one seen on the previous run.
type StatusSync struct {
	bookings BookingLister
	store    StatusStore
	producer Producer
	topic    string
	logger   *zap.Logger

	running sync.Mutex
}

func NewStatusSync(bookings BookingLister, store StatusStore, producer Producer, topic string, logger *zap.Logger) *StatusSync {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusSync{bookings: bookings, store: store, producer: producer, topic: topic, logger: logger}
}

// Run performs one sync pass and returns the number of transitions
// published. Without a signed-in user there is nothing to sync.
func (s *StatusSync) Run(ctx context.Context) (int, error) {
	if !s.running.TryLock() {
		s.logger.Debug("status sync already running")
		return 0, nil
	}
	defer s.running.Unlock()

	list, err := s.bookings.Bookings(ctx)
	if err != nil {
		if apiclient.IsAuthError(err) {
			s.logger.Info("status sync skipped, no valid session")
			return 0, nil
		}
		return 0, fmt.Errorf("list bookings: %w", err)
	}

	changed := 0
	for i := range list {
		b := &list[i]
		if b.ID == "" {
			continue
		}
		prev, seen, err := s.store.BookingStatus(ctx, b.ID)
		if err != nil {
			return changed, fmt.Errorf("read status of %s: %w", b.ID, err)
		}
		if seen && prev == b.Status {
			continue
		}
		if seen {
			event := kafka.NewBookingEvent(kafka.EventBookingStatusChanged, b)
			event.PreviousStatus = string(prev)
			if err := s.producer.Publish(ctx, s.topic, b.ID, event); err != nil {
				// leave the old status so the next run retries
				s.logger.Warn("failed to publish status change", zap.String("booking_id", b.ID), zap.Error(err))
				continue
			}
			changed++
		}
		if err := s.store.SetBookingStatus(ctx, b.ID, b.Status); err != nil {
			return changed, fmt.Errorf("store status of %s: %w", b.ID, err)
		}
	}

	s.logger.Info("status sync finished", zap.Int("bookings", len(list)), zap.Int("changed", changed))
	return changed, nil
}

// Schedule registers Run on c under spec, e.g. "@every 5m".
func (s *StatusSync) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if _, err := s.Run(ctx); err != nil {
			s.logger.Error("status sync failed", zap.Error(err))
		}
	})
}
