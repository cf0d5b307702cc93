package domain

import "time"

type CabinClass string

const (
	CabinClassEconomy        CabinClass = "Economy"
	CabinClassPremiumEconomy CabinClass = "Premium Economy"
	CabinClassBusiness       CabinClass = "Business"
	CabinClassFirst          CabinClass = "First"
)

// Valid reports whether c is one of the known cabin classes.
func (c CabinClass) Valid() bool {
	switch c {
	case CabinClassEconomy, CabinClassPremiumEconomy, CabinClassBusiness, CabinClassFirst:
		return true
	}
	return false
}

type Airport struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Flight is the canonical flight record. Extra holds backend fields the
// normalizer does not recognize so they survive a round trip.
type Flight struct {
	ID             string         `json:"id"`
	FlightNumber   string         `json:"flightNumber"`
	Origin         Airport        `json:"origin"`
	Destination    Airport        `json:"destination"`
	DepartureTime  time.Time      `json:"departureTime"`
	ArrivalTime    time.Time      `json:"arrivalTime"`
	Duration       int            `json:"duration"`
	CabinClass     CabinClass     `json:"cabinClass"`
	CabinClassID   string         `json:"cabinClassId"`
	Price          float64        `json:"price"`
	AvailableSeats int            `json:"availableSeats"`
	Aircraft       string         `json:"aircraft"`
	Extra          map[string]any `json:"-"`
}

// ScheduledDuration is arrival minus departure in whole minutes, or 0 when
// either timestamp is unknown or arrival is not after departure.
func (f Flight) ScheduledDuration() int {
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() || !f.ArrivalTime.After(f.DepartureTime) {
		return 0
	}
	return int(f.ArrivalTime.Sub(f.DepartureTime) / time.Minute)
}
