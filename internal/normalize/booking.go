package normalize

import (
	"encoding/json"
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/domain"
)

// NormalizeBooking converts a backend booking of any known shape into the
// canonical record. Legs may be embedded objects, bare ids, live under the
// "flights" block, or be absent.
func NormalizeBooking(raw map[string]any) domain.Booking {
	r := newRecord(raw, bookingFields)
	block, _ := r.object("flights")
	embedded := newRecord(block, embeddedFlightsFields)

	b := domain.Booking{
		ID:           r.str("id"),
		UserID:       r.str("userId"),
		Status:       ParseStatus(r.str("status")),
		Passengers:   passengersValue(r),
		ContactEmail: r.str("contactEmail"),
		ContactPhone: r.str("contactPhone"),
		TotalPrice:   r.number("totalPrice"),
		BookingDate:  r.str("bookingDate"),
		CabinClass:   ParseCabinClass(r.str("cabinClass")),
		CabinClassID: r.str("cabinClassId"),
		Extra:        r.extra(),
	}
	if b.CabinClass == "" {
		b.CabinClass = ParseCabinClass(embedded.str("cabinClass"))
	}
	if b.CabinClassID == "" {
		b.CabinClassID = embedded.str("cabinClassId")
	}

	b.OutboundFlight, b.OutboundFlightID = legValue(r, embedded, "outboundFlight", "outboundFlightId", "outbound")
	b.ReturnFlight, b.ReturnFlightID = legValue(r, embedded, "returnFlight", "returnFlightId", "return")
	return b
}

// NormalizeBookings normalizes a bookings list.
func NormalizeBookings(raw []any) []domain.Booking {
	bookings := make([]domain.Booking, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			bookings = append(bookings, NormalizeBooking(m))
		}
	}
	return bookings
}

// NormalizePassenger reads a passenger in either naming convention.
func NormalizePassenger(raw map[string]any) domain.Passenger {
	r := newRecord(raw, passengerFields)
	return domain.Passenger{
		FirstName:           r.str("firstName"),
		LastName:            r.str("lastName"),
		Gender:              strings.ToUpper(r.str("gender")),
		BirthDay:            r.str("birthDay"),
		BirthMonth:          r.str("birthMonth"),
		BirthYear:           r.str("birthYear"),
		PassportNumber:      r.str("passportNumber"),
		PassportCountry:     r.str("passportCountry"),
		PassportExpiryDay:   r.str("passportExpiryDay"),
		PassportExpiryMonth: r.str("passportExpiryMonth"),
		PassportExpiryYear:  r.str("passportExpiryYear"),
	}
}

// ParseStatus is case-insensitive; absent or unknown statuses read as
// PENDING, the state every booking is created in.
func ParseStatus(s string) domain.BookingStatus {
	switch domain.BookingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case domain.BookingStatusConfirmed:
		return domain.BookingStatusConfirmed
	case domain.BookingStatusCancelled, "CANCELED":
		return domain.BookingStatusCancelled
	}
	return domain.BookingStatusPending
}

// legValue resolves one leg. An object is an embedded flight, a scalar is a
// bare id. The explicit id field wins over the embedded flight's own id.
func legValue(r, embedded record, objectField, idField, blockField string) (*domain.Flight, string) {
	var flight *domain.Flight
	var id string

	v, ok := r.value(objectField)
	if !ok {
		v, ok = embedded.value(blockField)
	}
	if ok {
		switch t := v.(type) {
		case map[string]any:
			f := NormalizeFlight(t)
			flight = &f
		default:
			id = toString(t)
		}
	}

	if explicit := r.str(idField); explicit != "" {
		id = explicit
	}
	if id == "" && flight != nil {
		id = flight.ID
	}
	return flight, id
}

func passengersValue(r record) []domain.Passenger {
	v, ok := r.value("passengers")
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	passengers := make([]domain.Passenger, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			passengers = append(passengers, NormalizePassenger(m))
		}
	}
	return passengers
}

// ToRaw encodes a canonical value back into the generic map shape the
// normalizer reads.
func ToRaw(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
