package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/form"
	"github.com/Domenick1991/airbooking-client/internal/kafka"
	"github.com/Domenick1991/airbooking-client/internal/normalize"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignUp(ctx context.Context, input apiclient.SignUpInput) (*AuthResult, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	Bookings(ctx context.Context) ([]domain.Booking, error)
	Booking(ctx context.Context, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	PendingCheckout() PendingCheckout
}

// API is the part of the backend client the booking flow needs.
type API interface {
	Submitter
	SignIn(ctx context.Context, email, password string) (*apiclient.AuthResult, error)
	SignUp(ctx context.Context, in apiclient.SignUpInput) (*apiclient.AuthResult, error)
	GetUserBookings(ctx context.Context) ([]any, error)
	GetBookingDetails(ctx context.Context, id string) (map[string]any, error)
	CancelBooking(ctx context.Context, id string) (map[string]any, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	api                API
	sessions           session.Store
	builder            *Builder
	gate               *Gate
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(l *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = l
	}
}

func WithBuilder(b *Builder) BookingServiceOption {
	return func(s *BookingService) {
		s.builder = b
	}
}

// NewBookingService wires the builder and gate around api. producer may be
// nil, in which case no events are published.
func NewBookingService(
	api API,
	sessions session.Store,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		api:          api,
		sessions:     sessions,
		builder:      NewBuilder(),
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	service.gate = NewGate(api, sessions, service.logger)
	return service
}

type CheckoutInput struct {
	Outbound *domain.Flight
	Return   *domain.Flight
	Form     *form.Form
}

type CheckoutStatus string

const (
	CheckoutCreated      CheckoutStatus = "created"
	CheckoutAwaitingAuth CheckoutStatus = "awaiting_auth"
	CheckoutQueued       CheckoutStatus = "queued"
)

type CheckoutResult struct {
	Status         CheckoutStatus         `json:"status"`
	Booking        *domain.Booking        `json:"booking,omitempty"`
	Held           *domain.BookingRequest `json:"held,omitempty"`
	SessionExpired bool                   `json:"sessionExpired,omitempty"`
}

type AuthResult struct {
	Session  domain.Session  `json:"session"`
	Checkout *CheckoutResult `json:"checkout,omitempty"`
	// CheckoutErr is set when the held booking was resubmitted and failed.
	CheckoutErr error `json:"-"`
}

type PendingCheckout struct {
	State          GateState              `json:"-"`
	StateName      string                 `json:"state"`
	Held           *domain.BookingRequest `json:"held,omitempty"`
	SessionExpired bool                   `json:"sessionExpired"`
}

// Checkout validates and builds the request, then submits it through the
// gate. Being held for sign-in is not an error: the result says so.
func (s *BookingService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	req, err := s.builder.Build(BuildInput{
		Outbound: input.Outbound,
		Return:   input.Return,
		Form:     input.Form,
		User:     user,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.gate.Submit(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, ErrSubmissionQueued):
		return &CheckoutResult{Status: CheckoutQueued, Held: s.gate.Held()}, nil
	case apiclient.IsAuthError(err):
		return &CheckoutResult{
			Status:         CheckoutAwaitingAuth,
			Held:           s.gate.Held(),
			SessionExpired: s.gate.SessionExpired(),
		}, nil
	default:
		return nil, err
	}

	b := s.complete(ctx, created)
	s.publishSafe(ctx, kafka.EventBookingCreated, b)
	return &CheckoutResult{Status: CheckoutCreated, Booking: b}, nil
}

// SignIn authenticates and, if a booking is held, resubmits it.
func (s *BookingService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	res, err := s.api.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	sess := res.Session()

	created, resubmitted, err := s.gate.Authenticated(ctx, sess)
	out := &AuthResult{Session: sess}
	if !resubmitted {
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	if err != nil {
		out.CheckoutErr = err
		if apiclient.IsAuthError(err) {
			out.Checkout = &CheckoutResult{Status: CheckoutAwaitingAuth, Held: s.gate.Held(), SessionExpired: s.gate.SessionExpired()}
		}
		return out, nil
	}

	b := s.complete(ctx, created)
	s.publishSafe(ctx, kafka.EventBookingCreated, b)
	out.Checkout = &CheckoutResult{Status: CheckoutCreated, Booking: b}
	return out, nil
}

// SignUp registers the account and signs in with the same credentials.
func (s *BookingService) SignUp(ctx context.Context, input apiclient.SignUpInput) (*AuthResult, error) {
	if _, err := s.api.SignUp(ctx, input); err != nil {
		return nil, err
	}
	return s.SignIn(ctx, input.Email, input.Password)
}

// SignOut forgets the identity and any booking held for sign-in.
func (s *BookingService) SignOut(ctx context.Context) error {
	s.gate.Reset()
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *BookingService) CurrentUser(ctx context.Context) (*domain.User, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	return &sess.User, nil
}

func (s *BookingService) Bookings(ctx context.Context) ([]domain.Booking, error) {
	raw, err := s.api.GetUserBookings(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.NormalizeBookings(raw), nil
}

func (s *BookingService) Booking(ctx context.Context, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("booking id is required")
	}
	raw, err := s.api.GetBookingDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	b := normalize.NormalizeBooking(raw)
	return &b, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("booking id is required")
	}
	raw, err := s.api.CancelBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	b := normalize.NormalizeBooking(raw)
	if b.ID == "" {
		b.ID = id
	}
	// a cancelled booking cannot be pending; some responses omit the status
	if b.Status == domain.BookingStatusPending {
		b.Status = domain.BookingStatusCancelled
	}
	s.publishSafe(ctx, kafka.EventBookingCancelled, &b)
	return &b, nil
}

func (s *BookingService) PendingCheckout() PendingCheckout {
	state := s.gate.State()
	return PendingCheckout{
		State:          state,
		StateName:      state.String(),
		Held:           s.gate.Held(),
		SessionExpired: s.gate.SessionExpired(),
	}
}

// complete fetches the full booking after creation. The created record is
// used when it has no id or the lookup fails.
func (s *BookingService) complete(ctx context.Context, created map[string]any) *domain.Booking {
	b := normalize.NormalizeBooking(created)
	if b.ID == "" {
		return &b
	}
	raw, err := s.api.GetBookingDetails(ctx, b.ID)
	if err != nil {
		s.logger.Warn("fetch complete booking failed, using created record", zap.String("booking_id", b.ID), zap.Error(err))
		return &b
	}
	full := normalize.NormalizeBooking(raw)
	return &full
}

func (s *BookingService) publishSafe(ctx context.Context, eventType string, b *domain.Booking) {
	if err := s.publish(ctx, eventType, b); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, b)
	if err := s.producer.Publish(ctx, s.bookingTopic, b.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, b.ID, event)
	}
	return nil
}

// SubmitMessage turns a checkout error into the text shown to the user.
func SubmitMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return "Please correct the highlighted fields."
	case errors.Is(err, apiclient.ErrValidation):
		if msgs := apiclient.Messages(err); len(msgs) > 0 {
			return "Failed to create booking: " + strings.Join(msgs, ", ")
		}
		return "Failed to create booking. Please try again."
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, apiclient.ErrAuthRequired):
		return "Please sign in to complete your booking."
	}
	return "Failed to create booking. Please try again."
}

var _ BookingUseCase = (*BookingService)(nil)
