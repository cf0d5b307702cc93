package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) CreateBooking(ctx context.Context, req *domain.BookingRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func buildRequest(t *testing.T, passengers ...string) *domain.BookingRequest {
	t.Helper()
	req, err := NewBuilder().Build(BuildInput{Outbound: outboundFlight(), Return: returnFlight(), Form: readyForm(passengers...)})
	require.NoError(t, err)
	return req
}

var validSession = domain.Session{AccessToken: "tok", User: domain.User{ID: "U-1", Email: "ada@example.com"}}

func TestGate_AnonymousSubmitHoldsWithoutNetwork(t *testing.T) {
	sub := &MockSubmitter{}
	g := NewGate(sub, session.NewMemoryStore(), zaptest.NewLogger(t))
	req := buildRequest(t, "A")

	_, err := g.Submit(context.Background(), req)
	assert.ErrorIs(t, err, apiclient.ErrAuthRequired)
	assert.Equal(t, GateAwaitingAuth, g.State())
	assert.Equal(t, req, g.Held())
	assert.False(t, g.SessionExpired())
	sub.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestGate_ResubmitsExactlyOnceWithSamePayload(t *testing.T) {
	sub := &MockSubmitter{}
	store := session.NewMemoryStore()
	g := NewGate(sub, store, nil)
	req := buildRequest(t, "A", "B")
	snapshot := *req

	_, err := g.Submit(context.Background(), req)
	require.ErrorIs(t, err, apiclient.ErrAuthRequired)

	sub.On("CreateBooking", mock.Anything, mock.MatchedBy(func(got *domain.BookingRequest) bool {
		return assert.ObjectsAreEqual(snapshot, *got)
	})).Return(map[string]any{"id": "B-1"}, nil).Once()

	created, resubmitted, err := g.Authenticated(context.Background(), validSession)
	require.NoError(t, err)
	assert.True(t, resubmitted)
	assert.Equal(t, "B-1", created["id"])
	assert.Equal(t, GateIdle, g.State())
	assert.Nil(t, g.Held())

	stored, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", stored.AccessToken)

	// a second sign-in must not resend anything
	_, resubmitted, err = g.Authenticated(context.Background(), validSession)
	require.NoError(t, err)
	assert.False(t, resubmitted)
	sub.AssertNumberOfCalls(t, "CreateBooking", 1)
}

func TestGate_ExpiredCredentialHoldsAndMarks(t *testing.T) {
	sub := &MockSubmitter{}
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), domain.Session{AccessToken: "stale"}))
	g := NewGate(sub, store, nil)
	req := buildRequest(t, "A")

	sub.On("CreateBooking", mock.Anything, req).
		Return(nil, &apiclient.APIError{Op: "createBooking", StatusCode: 403}).Once()

	_, err := g.Submit(context.Background(), req)
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, GateAwaitingAuth, g.State())
	assert.True(t, g.SessionExpired())
	assert.Equal(t, req, g.Held())

	sub.On("CreateBooking", mock.Anything, req).Return(map[string]any{"id": "B-2"}, nil).Once()
	created, resubmitted, err := g.Authenticated(context.Background(), validSession)
	require.NoError(t, err)
	assert.True(t, resubmitted)
	assert.Equal(t, "B-2", created["id"])
	assert.False(t, g.SessionExpired())
	sub.AssertNumberOfCalls(t, "CreateBooking", 2)
}

func TestGate_NonAuthFailureDoesNotRetry(t *testing.T) {
	sub := &MockSubmitter{}
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), validSession))
	g := NewGate(sub, store, nil)
	req := buildRequest(t, "A")

	boom := &apiclient.APIError{Op: "createBooking", StatusCode: 400, Messages: []string{"sold out"}}
	sub.On("CreateBooking", mock.Anything, req).Return(nil, boom).Once()

	_, err := g.Submit(context.Background(), req)
	assert.ErrorIs(t, err, apiclient.ErrValidation)
	assert.Equal(t, GateFailed, g.State())
	assert.Equal(t, boom, g.LastError())
	assert.Nil(t, g.Held())

	_, resubmitted, err := g.Authenticated(context.Background(), validSession)
	require.NoError(t, err)
	assert.False(t, resubmitted)

	// a fresh submit from Failed behaves like one from Idle
	sub.On("CreateBooking", mock.Anything, req).Return(map[string]any{"id": "B-3"}, nil).Once()
	created, err := g.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "B-3", created["id"])
	assert.Equal(t, GateIdle, g.State())
	assert.Nil(t, g.LastError())
}

func TestGate_LastSubmitWinsWhileAwaiting(t *testing.T) {
	sub := &MockSubmitter{}
	g := NewGate(sub, session.NewMemoryStore(), nil)
	first := buildRequest(t, "A")
	second := buildRequest(t, "A", "B")

	_, err := g.Submit(context.Background(), first)
	require.ErrorIs(t, err, apiclient.ErrAuthRequired)
	_, err = g.Submit(context.Background(), second)
	require.ErrorIs(t, err, apiclient.ErrAuthRequired)
	assert.Equal(t, second, g.Held())

	sub.On("CreateBooking", mock.Anything, second).Return(map[string]any{"id": "B-4"}, nil).Once()
	_, _, err = g.Authenticated(context.Background(), validSession)
	require.NoError(t, err)
	sub.AssertExpectations(t)
	sub.AssertNumberOfCalls(t, "CreateBooking", 1)
}

func TestGate_SubmitWhileInFlightIsQueued(t *testing.T) {
	sub := &MockSubmitter{}
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), validSession))
	g := NewGate(sub, store, nil)
	first := buildRequest(t, "A")
	second := buildRequest(t, "A", "B")

	release := make(chan struct{})
	started := make(chan struct{})
	sub.On("CreateBooking", mock.Anything, first).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(map[string]any{"id": "B-5"}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := g.Submit(context.Background(), first)
		done <- err
	}()
	<-started

	_, err := g.Submit(context.Background(), second)
	assert.ErrorIs(t, err, ErrSubmissionQueued)

	close(release)
	require.NoError(t, <-done)
	sub.AssertNumberOfCalls(t, "CreateBooking", 1)
	assert.Equal(t, GateIdle, g.State())
}

func TestGate_ResetWhileInFlight(t *testing.T) {
	sub := &MockSubmitter{}
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), validSession))
	g := NewGate(sub, store, nil)
	first := buildRequest(t, "A")

	release := make(chan struct{})
	started := make(chan struct{})
	sub.On("CreateBooking", mock.Anything, first).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, &apiclient.APIError{StatusCode: 401}).Once()

	done := make(chan error, 1)
	go func() {
		_, err := g.Submit(context.Background(), first)
		done <- err
	}()
	<-started

	g.Reset()
	assert.Equal(t, GateIdle, g.State())
	assert.Nil(t, g.Held())

	close(release)
	assert.ErrorIs(t, <-done, apiclient.ErrUnauthorized)

	// the stale rejection must not put the gate back into awaiting sign-in
	assert.Equal(t, GateIdle, g.State())
	assert.Nil(t, g.Held())
	assert.False(t, g.SessionExpired())

	_, resubmitted, err := g.Authenticated(context.Background(), validSession)
	require.NoError(t, err)
	assert.False(t, resubmitted)
	sub.AssertNumberOfCalls(t, "CreateBooking", 1)
}

func TestGate_RefusesInconsistentRequest(t *testing.T) {
	g := NewGate(&MockSubmitter{}, session.NewMemoryStore(), nil)
	req := buildRequest(t, "A")
	req.Flights.Outbound.ID = "other"

	_, err := g.Submit(context.Background(), req)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, apiclient.ErrAuthRequired))
	assert.Equal(t, GateIdle, g.State())
}

func TestGateState_String(t *testing.T) {
	assert.Equal(t, "awaiting_auth", GateAwaitingAuth.String())
	assert.Equal(t, "GateState(9)", GateState(9).String())
}
