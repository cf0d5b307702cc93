// Package apiclient talks to the booking backend over HTTP+JSON. It returns
// backend records as decoded JSON; callers normalize them.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
	logger   *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout bounds each request; zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func New(baseURL string, sessions session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		sessions: sessions,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthResult is the sign-in/sign-up response.
type AuthResult struct {
	AccessToken string      `json:"accessToken"`
	User        domain.User `json:"user"`
}

func (r AuthResult) Session() domain.Session {
	return domain.Session{AccessToken: r.AccessToken, User: r.User}
}

type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SearchResult holds the raw flight lists; Return is nil for one-way.
type SearchResult struct {
	Outbound []any `json:"outbound"`
	Return   []any `json:"return"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "signIn", http.MethodPost, "/auth/signin", body, authNone, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("signIn: response has no access token")
	}
	return &out, nil
}

// SignUp registers the account. The backend may or may not return a token;
// callers sign in afterwards either way.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, "signUp", http.MethodPost, "/auth/signup", in, authNone, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLocations(ctx context.Context) ([]any, error) {
	var out []any
	if err := c.do(ctx, "getLocations", http.MethodGet, "/flights/locations/all", nil, authNone, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetLocationDetails(ctx context.Context, locationID string) (map[string]any, error) {
	var out map[string]any
	path := "/flights/locations/" + url.PathEscape(locationID)
	if err := c.do(ctx, "getLocationDetails", http.MethodGet, path, nil, authNone, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchFlights(ctx context.Context, req domain.SearchRequest) (*SearchResult, error) {
	var out SearchResult
	if err := c.do(ctx, "searchFlights", http.MethodPost, "/flights/search", req, authNone, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req *domain.BookingRequest) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, "createBooking", http.MethodPost, "/bookings", req, authRequired, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUserBookings(ctx context.Context) ([]any, error) {
	var out []any
	if err := c.do(ctx, "getUserBookings", http.MethodGet, "/bookings", nil, authRequired, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBookingDetails(ctx context.Context, bookingID string) (map[string]any, error) {
	var out map[string]any
	path := "/bookings/" + url.PathEscape(bookingID)
	if err := c.do(ctx, "getBookingDetails", http.MethodGet, path, nil, authRequired, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFlightDetails sends the credential when one exists but does not need it.
func (c *Client) GetFlightDetails(ctx context.Context, flightID string) (map[string]any, error) {
	var out map[string]any
	path := "/flights/" + url.PathEscape(flightID)
	if err := c.do(ctx, "getFlightDetails", http.MethodGet, path, nil, authOptional, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) (map[string]any, error) {
	var out map[string]any
	path := "/bookings/" + url.PathEscape(bookingID) + "/cancel"
	if err := c.do(ctx, "cancelBooking", http.MethodPut, path, nil, authRequired, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, auth authMode, out any) error {
	token, err := c.token(ctx, auth)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("op", op), zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	c.logger.Debug("backend request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
		var errBody map[string]any
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Messages = parseMessages(errBody)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context, auth authMode) (string, error) {
	if auth == authNone || c.sessions == nil {
		if auth == authRequired {
			return "", ErrAuthRequired
		}
		return "", nil
	}
	s, err := c.sessions.Get(ctx)
	if err != nil {
		if auth == authOptional {
			return "", nil
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	if s == nil || s.AccessToken == "" {
		if auth == authRequired {
			return "", ErrAuthRequired
		}
		return "", nil
	}
	return s.AccessToken, nil
}
