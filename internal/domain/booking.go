package domain

import "fmt"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether no further transition is expected.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// Booking is the canonical persisted booking. A leg is either embedded
// (OutboundFlight set) or referenced by id only.
type Booking struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	Status           BookingStatus  `json:"status"`
	OutboundFlight   *Flight        `json:"outboundFlight,omitempty"`
	ReturnFlight     *Flight        `json:"returnFlight,omitempty"`
	OutboundFlightID string         `json:"outboundFlightId,omitempty"`
	ReturnFlightID   string         `json:"returnFlightId,omitempty"`
	Passengers       []Passenger    `json:"passengers"`
	ContactEmail     string         `json:"contactEmail"`
	ContactPhone     string         `json:"contactPhone"`
	TotalPrice       float64        `json:"totalPrice"`
	BookingDate      string         `json:"bookingDate"`
	CabinClass       CabinClass     `json:"cabinClass,omitempty"`
	CabinClassID     string         `json:"cabinClassId,omitempty"`
	Extra            map[string]any `json:"-"`
}

// BookingFlights duplicates the selected legs inside a BookingRequest.
type BookingFlights struct {
	Outbound     Flight     `json:"outbound"`
	Return       *Flight    `json:"return,omitempty"`
	CabinClass   CabinClass `json:"cabinClass"`
	CabinClassID string     `json:"cabinClassId"`
}

// BookingRequest is the immutable submission payload for createBooking.
type BookingRequest struct {
	OutboundFlightID string         `json:"outboundFlightId"`
	ReturnFlightID   string         `json:"returnFlightId,omitempty"`
	Passengers       []Passenger    `json:"passengers"`
	ContactEmail     string         `json:"contactEmail"`
	ContactPhone     string         `json:"contactPhone"`
	UserID           string         `json:"userId,omitempty"`
	Flights          BookingFlights `json:"flights"`
	TotalPrice       float64        `json:"totalPrice"`
	BookingDate      string         `json:"bookingDate"`
}

// CheckConsistency verifies that the embedded flights match the top-level
// flight ids.
func (r *BookingRequest) CheckConsistency() error {
	if r.OutboundFlightID == "" {
		return fmt.Errorf("outbound flight id is empty")
	}
	if r.Flights.Outbound.ID != r.OutboundFlightID {
		return fmt.Errorf("embedded outbound flight %q does not match %q", r.Flights.Outbound.ID, r.OutboundFlightID)
	}
	switch {
	case r.Flights.Return == nil && r.ReturnFlightID != "":
		return fmt.Errorf("return flight %q is not embedded", r.ReturnFlightID)
	case r.Flights.Return != nil && r.Flights.Return.ID != r.ReturnFlightID:
		return fmt.Errorf("embedded return flight %q does not match %q", r.Flights.Return.ID, r.ReturnFlightID)
	}
	if len(r.Passengers) == 0 {
		return fmt.Errorf("booking request has no passengers")
	}
	return nil
}
