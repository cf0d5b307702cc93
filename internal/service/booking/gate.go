package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"go.uber.org/zap"
)

type GateState int

const (
	GateIdle GateState = iota
	GateAwaitingAuth
	GateResubmitting
	GateFailed
)

func (s GateState) String() string {
	switch s {
	case GateIdle:
		return "idle"
	case GateAwaitingAuth:
		return "awaiting_auth"
	case GateResubmitting:
		return "resubmitting"
	case GateFailed:
		return "failed"
	}
	return fmt.Sprintf("GateState(%d)", int(s))
}

// ErrSubmissionQueued is returned when a submission replaced the held
// request instead of being sent.
var ErrSubmissionQueued = errors.New("booking submission queued behind a pending one")

// Submitter sends a booking request to the backend.
type Submitter interface {
	CreateBooking(ctx context.Context, req *domain.BookingRequest) (map[string]any, error)
}

// Gate holds a booking request while the user signs in and sends it exactly
// once afterwards. Only one request is held; a newer one replaces it.
type Gate struct {
	client   Submitter
	sessions session.Store
	logger   *zap.Logger

	mu       sync.Mutex
	state    GateState
	held     *domain.BookingRequest
	inFlight bool
	expired  bool
	lastErr  error
	// generation changes on Reset; a dispatch started under an older one
	// leaves the gate untouched when it returns.
	generation uint64
}

func NewGate(client Submitter, sessions session.Store, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{client: client, sessions: sessions, logger: logger}
}

// Submit sends req when an identity exists. Without one the request is held
// and an error matching apiclient.ErrAuthRequired is returned.
func (g *Gate) Submit(ctx context.Context, req *domain.BookingRequest) (map[string]any, error) {
	if req == nil {
		return nil, errors.New("booking request is nil")
	}
	if err := req.CheckConsistency(); err != nil {
		return nil, fmt.Errorf("refuse inconsistent booking request: %w", err)
	}

	current, err := g.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	g.mu.Lock()
	if g.state == GateAwaitingAuth || g.inFlight {
		g.held = req
		state := g.state
		g.mu.Unlock()
		if state == GateAwaitingAuth {
			return nil, fmt.Errorf("booking held until sign-in: %w", apiclient.ErrAuthRequired)
		}
		return nil, ErrSubmissionQueued
	}
	g.held = req
	g.lastErr = nil
	if current == nil {
		g.state = GateAwaitingAuth
		g.mu.Unlock()
		g.logger.Info("booking held until sign-in", zap.String("outbound_flight_id", req.OutboundFlightID))
		return nil, fmt.Errorf("booking held until sign-in: %w", apiclient.ErrAuthRequired)
	}
	g.state = GateIdle
	g.inFlight = true
	gen := g.generation
	g.mu.Unlock()

	return g.dispatch(ctx, req, gen)
}

// Authenticated stores the new identity. If a request is held it is sent
// once and its result returned with resubmitted set.
func (g *Gate) Authenticated(ctx context.Context, s domain.Session) (created map[string]any, resubmitted bool, err error) {
	if err := g.sessions.Set(ctx, s); err != nil {
		return nil, false, fmt.Errorf("store session: %w", err)
	}

	g.mu.Lock()
	if g.state != GateAwaitingAuth || g.held == nil || g.inFlight {
		g.mu.Unlock()
		return nil, false, nil
	}
	req := g.held
	g.expired = false
	g.state = GateResubmitting
	g.inFlight = true
	gen := g.generation
	g.mu.Unlock()

	g.logger.Info("resubmitting held booking", zap.String("outbound_flight_id", req.OutboundFlightID))
	created, err = g.dispatch(ctx, req, gen)
	return created, true, err
}

func (g *Gate) dispatch(ctx context.Context, req *domain.BookingRequest, gen uint64) (map[string]any, error) {
	created, err := g.client.CreateBooking(ctx, req)

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		g.logger.Info("gate reset during submission, result not recorded", zap.Error(err))
		return created, err
	}
	g.inFlight = false

	switch {
	case err == nil:
		g.state = GateIdle
		g.held = nil
		g.expired = false
		return created, nil
	case apiclient.IsAuthError(err):
		// held may already be a newer request submitted while this one was in flight
		g.state = GateAwaitingAuth
		g.expired = errors.Is(err, apiclient.ErrUnauthorized)
		g.logger.Info("booking rejected for credentials, awaiting sign-in", zap.Bool("session_expired", g.expired))
		return nil, err
	default:
		g.state = GateFailed
		g.held = nil
		g.lastErr = err
		g.logger.Warn("booking submission failed", zap.Error(err))
		return nil, err
	}
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Held returns a copy of the held request, or nil.
func (g *Gate) Held() *domain.BookingRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held == nil {
		return nil
	}
	req := *g.held
	return &req
}

// SessionExpired reports whether the backend rejected the stored credential
// on the last attempt.
func (g *Gate) SessionExpired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.expired
}

func (g *Gate) LastError() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// Reset drops any held request and returns to idle. A submission still in
// flight completes for its caller but no longer affects the gate.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.inFlight = false
	g.state = GateIdle
	g.held = nil
	g.expired = false
	g.lastErr = nil
}
