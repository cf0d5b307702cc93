package normalize

import (
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/domain"
)

// NormalizeFlight converts a backend flight object of any known shape into
// the canonical record. It never fails: missing fields take zero values and
// a missing flight number is synthesized from the id.
func NormalizeFlight(raw map[string]any) domain.Flight {
	r := newRecord(raw, flightFields)

	f := domain.Flight{
		ID:             r.str("id"),
		FlightNumber:   r.str("flightNumber"),
		Origin:         airportValue(r, "origin"),
		Destination:    airportValue(r, "destination"),
		DepartureTime:  r.timestamp("departureTime"),
		ArrivalTime:    r.timestamp("arrivalTime"),
		Duration:       r.integer("duration"),
		CabinClass:     ParseCabinClass(r.str("cabinClass")),
		CabinClassID:   r.str("cabinClassId"),
		Price:          r.number("price"),
		AvailableSeats: r.integer("availableSeats"),
		Aircraft:       r.str("aircraft"),
		Extra:          r.extra(),
	}
	if f.FlightNumber == "" {
		f.FlightNumber = SyntheticFlightNumber(f.ID)
	}
	if f.Duration == 0 {
		f.Duration = f.ScheduledDuration()
	}
	return f
}

// NormalizeFlights normalizes every object in a decoded JSON array and skips
// entries that are not objects.
func NormalizeFlights(raw []any) []domain.Flight {
	flights := make([]domain.Flight, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			flights = append(flights, NormalizeFlight(m))
		}
	}
	return flights
}

// SyntheticFlightNumber is the placeholder shown for flights the backend
// returned without a number.
func SyntheticFlightNumber(id string) string {
	if id == "" {
		return "UNKNOWN"
	}
	return "UNK-" + id
}

// NormalizeAirport accepts an airport object or a bare airport code.
func NormalizeAirport(v any) domain.Airport {
	switch t := v.(type) {
	case map[string]any:
		r := newRecord(t, airportFields)
		return domain.Airport{
			Code:    r.str("code"),
			Name:    r.str("name"),
			City:    r.str("city"),
			Country: r.str("country"),
		}
	case string:
		return domain.Airport{Code: strings.TrimSpace(t)}
	}
	return domain.Airport{}
}

// NormalizeAirports normalizes a locations list.
func NormalizeAirports(raw []any) []domain.Airport {
	airports := make([]domain.Airport, 0, len(raw))
	for _, item := range raw {
		a := NormalizeAirport(item)
		if a.Code == "" {
			continue
		}
		airports = append(airports, a)
	}
	return airports
}

func airportValue(r record, field string) domain.Airport {
	v, ok := r.value(field)
	if !ok {
		return domain.Airport{}
	}
	return NormalizeAirport(v)
}

// ParseCabinClass maps the spellings seen from the backend ("ECONOMY",
// "premium_economy", "Premium Economy") onto the canonical enum. Unknown
// values read as empty.
func ParseCabinClass(s string) domain.CabinClass {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))

	switch key {
	case "economy":
		return domain.CabinClassEconomy
	case "premiumeconomy":
		return domain.CabinClassPremiumEconomy
	case "business":
		return domain.CabinClassBusiness
	case "first":
		return domain.CabinClassFirst
	}
	return ""
}
