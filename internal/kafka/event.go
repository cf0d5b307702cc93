package kafka

import (
	"time"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated       = "booking_created"
	EventBookingCancelled     = "booking_cancelled"
	EventBookingStatusChanged = "booking_status_changed"
)

// BookingEvent is published on the booking events and notifications topics.
type BookingEvent struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	BookingID        string    `json:"booking_id"`
	UserID           string    `json:"user_id,omitempty"`
	Email            string    `json:"email"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previous_status,omitempty"`
	OutboundFlightID string    `json:"outbound_flight_id,omitempty"`
	ReturnFlightID   string    `json:"return_flight_id,omitempty"`
	FlightNumber     string    `json:"flight_number,omitempty"`
	Passengers       int       `json:"passengers"`
	TotalPrice       float64   `json:"total_price"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking) BookingEvent {
	event := BookingEvent{
		ID:               uuid.NewString(),
		Type:             eventType,
		BookingID:        b.ID,
		UserID:           b.UserID,
		Email:            b.ContactEmail,
		Status:           string(b.Status),
		OutboundFlightID: b.OutboundFlightID,
		ReturnFlightID:   b.ReturnFlightID,
		Passengers:       len(b.Passengers),
		TotalPrice:       b.TotalPrice,
		OccurredAt:       time.Now().UTC(),
	}
	if b.OutboundFlight != nil {
		event.FlightNumber = b.OutboundFlight.FlightNumber
	}
	return event
}
