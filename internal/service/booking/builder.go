package booking

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/form"
)

// KeyOutboundFlight is the validation key used when no outbound flight was selected.
const KeyOutboundFlight = "outboundFlight"

// ValidationError lists field problems found before anything was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid booking: " + strings.Join(parts, "; ")
}

type BuildInput struct {
	Outbound *domain.Flight
	Return   *domain.Flight
	Form     *form.Form
	// User is nil for an anonymous visitor.
	User *domain.User
}

type Builder struct {
	now func() time.Time
}

type BuilderOption func(*Builder)

func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the submission payload. It never touches the network.
func (b *Builder) Build(in BuildInput) (*domain.BookingRequest, error) {
	if in.Outbound == nil || strings.TrimSpace(in.Outbound.ID) == "" {
		return nil, &ValidationError{Fields: map[string]string{KeyOutboundFlight: "Please select an outbound flight"}}
	}
	if in.Form == nil {
		in.Form = form.New()
	}
	if errs := in.Form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	passengers := in.Form.Passengers()
	contact := in.Form.Contact()

	outbound := withCabin(*in.Outbound)
	var ret *domain.Flight
	if in.Return != nil {
		r := withCabin(*in.Return)
		ret = &r
	}

	req := &domain.BookingRequest{
		OutboundFlightID: outbound.ID,
		Passengers:       passengers,
		ContactEmail:     strings.TrimSpace(contact.Email),
		ContactPhone:     strings.TrimSpace(contact.Phone),
		Flights: domain.BookingFlights{
			Outbound:     outbound,
			Return:       ret,
			CabinClass:   outbound.CabinClass,
			CabinClassID: outbound.CabinClassID,
		},
		TotalPrice:  TotalPrice(in.Outbound, in.Return, len(passengers)),
		BookingDate: b.now().UTC().Format(time.DateOnly),
	}
	if ret != nil {
		req.ReturnFlightID = ret.ID
	}
	if in.User != nil {
		req.UserID = in.User.ID
	}

	if err := req.CheckConsistency(); err != nil {
		return nil, fmt.Errorf("build booking request: %w", err)
	}
	return req, nil
}

// TotalPrice is the per-passenger fare of both legs times the passenger count.
func TotalPrice(outbound, ret *domain.Flight, passengers int) float64 {
	var perPassenger float64
	if outbound != nil {
		perPassenger += outbound.Price
	}
	if ret != nil {
		perPassenger += ret.Price
	}
	return math.Round(perPassenger*float64(passengers)*100) / 100
}

func withCabin(f domain.Flight) domain.Flight {
	if f.CabinClass == "" {
		f.CabinClass = domain.CabinClassEconomy
	}
	if f.CabinClassID == "" {
		f.CabinClassID = f.ID
	}
	if f.Extra != nil {
		extra := make(map[string]any, len(f.Extra))
		for k, v := range f.Extra {
			extra[k] = v
		}
		f.Extra = extra
	}
	return f
}
