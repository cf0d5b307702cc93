// Package confirmation turns a booking reference into a view-ready
// confirmation with both flight legs resolved.
package confirmation

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/normalize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgNoReference     = "No booking information provided."
	MsgBookingNotFound = "Could not find the booking. Please check your booking reference."
	MsgBookingFailed   = "Failed to load booking details. Please try again later."
	MsgOutboundMissing = "Could not load outbound flight details"
	MsgFlightNotFound  = "Could not find the outbound flight for this booking."
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// State is one step of a confirmation. Booking may be set in PhaseError
// when only a leg failed.
type State struct {
	Phase    Phase           `json:"-"`
	Status   string          `json:"phase"`
	Booking  *domain.Booking `json:"booking,omitempty"`
	Outbound *domain.Flight  `json:"outbound,omitempty"`
	Return   *domain.Flight  `json:"return,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Reference names the booking to confirm: an inline backend record or an id.
// The inline record wins when both are set.
type Reference struct {
	Booking   map[string]any
	BookingID string
}

type API interface {
	GetBookingDetails(ctx context.Context, id string) (map[string]any, error)
	GetFlightDetails(ctx context.Context, id string) (map[string]any, error)
}

type Reconciler struct {
	api    API
	logger *zap.Logger
}

func NewReconciler(api API, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{api: api, logger: logger}
}

// Resolve emits PhaseLoading and then exactly one terminal state before
// closing the channel.
func (r *Reconciler) Resolve(ctx context.Context, ref Reference) <-chan State {
	out := make(chan State, 2)
	out <- newState(PhaseLoading)
	go func() {
		defer close(out)
		out <- r.Reconcile(ctx, ref)
	}()
	return out
}

// Reconcile returns the terminal state for ref. It never returns PhaseLoading.
func (r *Reconciler) Reconcile(ctx context.Context, ref Reference) State {
	raw := ref.Booking
	if len(raw) == 0 {
		id := strings.TrimSpace(ref.BookingID)
		if id == "" {
			return failed(nil, MsgNoReference)
		}
		fetched, err := r.api.GetBookingDetails(ctx, id)
		if err != nil {
			r.logger.Warn("booking lookup failed", zap.String("booking_id", id), zap.Error(err))
			if errors.Is(err, apiclient.ErrNotFound) {
				return failed(nil, MsgBookingNotFound)
			}
			return failed(nil, MsgBookingFailed)
		}
		if len(fetched) == 0 {
			return failed(nil, MsgBookingNotFound)
		}
		raw = fetched
	}

	b := normalize.NormalizeBooking(raw)

	var outbound, ret *domain.Flight
	var outboundErr error
	var g errgroup.Group
	g.Go(func() error {
		outbound, outboundErr = r.leg(ctx, "outbound", b.OutboundFlight, b.OutboundFlightID)
		return nil
	})
	g.Go(func() error {
		ret, _ = r.leg(ctx, "return", b.ReturnFlight, b.ReturnFlightID)
		return nil
	})
	_ = g.Wait()

	if outbound == nil {
		if errors.Is(outboundErr, apiclient.ErrNotFound) {
			return failed(&b, MsgFlightNotFound)
		}
		return failed(&b, MsgOutboundMissing)
	}

	st := newState(PhaseReady)
	st.Booking = &b
	st.Outbound = outbound
	st.Return = ret
	return st
}

// leg returns the embedded flight, or fetches it by id. A nil flight means
// the leg is unresolved; the error, if any, is the lookup failure.
func (r *Reconciler) leg(ctx context.Context, name string, embedded *domain.Flight, id string) (*domain.Flight, error) {
	if embedded != nil {
		f := *embedded
		return &f, nil
	}
	if id == "" {
		return nil, nil
	}
	raw, err := r.api.GetFlightDetails(ctx, id)
	if err != nil {
		r.logger.Warn("flight lookup failed", zap.String("leg", name), zap.String("flight_id", id), zap.Error(err))
		return nil, err
	}
	if len(raw) == 0 {
		r.logger.Warn("flight lookup returned nothing", zap.String("leg", name), zap.String("flight_id", id))
		return nil, nil
	}
	f := normalize.NormalizeFlight(raw)
	return &f, nil
}

func newState(p Phase) State {
	return State{Phase: p, Status: p.String()}
}

func failed(b *domain.Booking, msg string) State {
	st := newState(PhaseError)
	st.Booking = b
	st.Error = msg
	return st
}
