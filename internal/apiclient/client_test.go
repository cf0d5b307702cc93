package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	return New(srv.URL+"/", store, WithLogger(zaptest.NewLogger(t))), store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_SignIn(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/signin", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])

		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken": "tok-1",
			"user":        map[string]any{"id": "U1", "email": "ada@example.com"},
		})
	})

	res, err := c.SignIn(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.Session{AccessToken: "tok-1", User: domain.User{ID: "U1", Email: "ada@example.com"}}, res.Session())
}

func TestClient_SignInWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "U1"}})
	})
	_, err := c.SignIn(context.Background(), "a@b.co", "x")
	assert.ErrorContains(t, err, "no access token")
}

func TestClient_AuthRequiredSkipsNetwork(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.CreateBooking(context.Background(), &domain.BookingRequest{})
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.True(t, IsAuthError(err))

	_, err = c.GetUserBookings(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_SendsBearerToken(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		assert.Equal(t, "/bookings/B%201", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, map[string]any{"id": "B 1", "status": "CONFIRMED"})
	})
	require.NoError(t, store.Set(context.Background(), domain.Session{AccessToken: "tok-9"}))

	raw, err := c.GetBookingDetails(context.Background(), "B 1")
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", raw["status"])
}

func TestClient_FlightDetailsOptionalAuth(t *testing.T) {
	seen := make(chan string, 2)
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"id": "F1"})
	})

	_, err := c.GetFlightDetails(context.Background(), "F1")
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), domain.Session{AccessToken: "t"}))
	_, err = c.GetFlightDetails(context.Background(), "F1")
	require.NoError(t, err)

	assert.Equal(t, "", <-seen)
	assert.Equal(t, "Bearer t", <-seen)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		sentinel error
		messages []string
	}{
		{"validation string", http.StatusBadRequest, map[string]any{"message": "seats sold out"}, ErrValidation, []string{"seats sold out"}},
		{"validation array", http.StatusBadRequest, map[string]any{"message": []any{"email invalid", "phone required"}}, ErrValidation, []string{"email invalid", "phone required"}},
		{"unauthorized", http.StatusUnauthorized, map[string]any{"message": "jwt expired"}, ErrUnauthorized, []string{"jwt expired"}},
		{"forbidden", http.StatusForbidden, nil, ErrUnauthorized, nil},
		{"not found", http.StatusNotFound, map[string]any{"error": "no such booking"}, ErrNotFound, []string{"no such booking"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			require.NoError(t, store.Set(context.Background(), domain.Session{AccessToken: "t"}))

			_, err := c.CreateBooking(context.Background(), &domain.BookingRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.messages, Messages(err))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.False(t, apiErr.Retryable())
		})
	}
}

func TestClient_ServerErrorIsRetryable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.GetLocations(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.Retryable())
	assert.False(t, IsAuthError(err))
	assert.Equal(t, "getLocations: status 502", err.Error())
}

func TestClient_SearchFlights(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req domain.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.TripTypeOneWay, req.TripType)
		writeJSON(w, http.StatusOK, map[string]any{"outbound": []any{map[string]any{"id": "F1"}}, "return": nil})
	})

	res, err := c.SearchFlights(context.Background(), domain.SearchRequest{Origin: "JFK", Destination: "LAX", TripType: domain.TripTypeOneWay})
	require.NoError(t, err)
	assert.Len(t, res.Outbound, 1)
	assert.Nil(t, res.Return)
}

func TestClient_CancelBookingUsesPut(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bookings/B1/cancel", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": "B1", "status": "CANCELLED"})
	})
	require.NoError(t, store.Set(context.Background(), domain.Session{AccessToken: "t"}))

	raw, err := c.CancelBooking(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", raw["status"])
}

func TestClient_EmptyBodyIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	res, err := c.SignUp(context.Background(), SignUpInput{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Empty(t, res.AccessToken)
}
