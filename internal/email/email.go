package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/kafka"
	"go.uber.org/zap"
)

// Message is a rendered notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers booking notifications. Delivery is logged; there is no
// mail transport configured.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, ok := Render(event)
	if !ok {
		s.logger.Debug("no notification for event", zap.String("type", event.Type), zap.String("booking_id", event.BookingID))
		return nil
	}
	s.logger.Info("send email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("booking_id", event.BookingID),
	)
	return nil
}

// Render builds the message for event. It reports false for events without
// a recipient or of a type that is not notified.
func Render(event kafka.BookingEvent) (Message, bool) {
	if strings.TrimSpace(event.Email) == "" {
		return Message{}, false
	}
	ref := event.BookingID
	var subject, body string
	switch event.Type {
	case kafka.EventBookingCreated:
		subject = fmt.Sprintf("Booking %s received", ref)
		body = fmt.Sprintf("Your booking %s for %d passenger(s) is %s. Total: %.2f.", ref, event.Passengers, strings.ToLower(event.Status), event.TotalPrice)
	case kafka.EventBookingCancelled:
		subject = fmt.Sprintf("Booking %s cancelled", ref)
		body = fmt.Sprintf("Your booking %s has been cancelled.", ref)
	case kafka.EventBookingStatusChanged:
		subject = fmt.Sprintf("Booking %s is now %s", ref, strings.ToLower(event.Status))
		body = fmt.Sprintf("Your booking %s changed from %s to %s.", ref, strings.ToLower(event.PreviousStatus), strings.ToLower(event.Status))
	default:
		return Message{}, false
	}
	if event.FlightNumber != "" {
		body += fmt.Sprintf(" Flight %s.", event.FlightNumber)
	}
	return Message{To: event.Email, Subject: subject, Body: body}, true
}
