package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/normalize"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	Locations(ctx context.Context) ([]domain.Airport, error)
	Location(ctx context.Context, id string) (*domain.Airport, error)
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
}

type API interface {
	GetLocations(ctx context.Context) ([]any, error)
	GetLocationDetails(ctx context.Context, id string) (map[string]any, error)
	SearchFlights(ctx context.Context, req domain.SearchRequest) (*apiclient.SearchResult, error)
	GetFlightDetails(ctx context.Context, id string) (map[string]any, error)
}

type LocationsCache interface {
	GetLocations(ctx context.Context) ([]domain.Airport, error)
	SetLocations(ctx context.Context, airports []domain.Airport) error
}

var ErrInvalidSearch = errors.New("invalid search")

type FlightService struct {
	api    API
	cache  LocationsCache
	logger *zap.Logger
}

// NewFlightService takes an optional cache; nil reads locations on every call.
func NewFlightService(api API, cache LocationsCache, logger *zap.Logger) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlightService{api: api, cache: cache, logger: logger}
}

func (s *FlightService) Locations(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLocations(ctx)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil {
			s.logger.Warn("locations cache read failed", zap.Error(err))
		}
	}

	raw, err := s.api.GetLocations(ctx)
	if err != nil {
		return nil, err
	}
	airports := normalize.NormalizeAirports(raw)
	if s.cache != nil && len(airports) > 0 {
		if err := s.cache.SetLocations(ctx, airports); err != nil {
			s.logger.Warn("locations cache write failed", zap.Error(err))
		}
	}
	return airports, nil
}

func (s *FlightService) Location(ctx context.Context, id string) (*domain.Airport, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("location id is required")
	}
	raw, err := s.api.GetLocationDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	airport := normalize.NormalizeAirport(raw)
	return &airport, nil
}

// Search checks the request shape before calling the backend. The response
// has a nil Return list for one-way trips.
func (s *FlightService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	req, err := CheckSearch(req)
	if err != nil {
		return nil, err
	}

	res, err := s.api.SearchFlights(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &domain.SearchResponse{Outbound: normalize.NormalizeFlights(res.Outbound)}
	if out.Outbound == nil {
		out.Outbound = []domain.Flight{}
	}
	if req.TripType == domain.TripTypeRoundTrip {
		out.Return = normalize.NormalizeFlights(res.Return)
		if out.Return == nil {
			out.Return = []domain.Flight{}
		}
	}
	return out, nil
}

func (s *FlightService) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("flight id is required")
	}
	raw, err := s.api.GetFlightDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("flight %s: %w", id, apiclient.ErrNotFound)
	}
	f := normalize.NormalizeFlight(raw)
	return &f, nil
}

// CheckSearch fills defaults and rejects malformed searches. The trip type
// follows the presence of a return date when unset.
func CheckSearch(req domain.SearchRequest) (domain.SearchRequest, error) {
	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))
	req.DepartureDate = strings.TrimSpace(req.DepartureDate)
	req.ReturnDate = strings.TrimSpace(req.ReturnDate)

	if req.TripType == "" {
		req.TripType = domain.TripTypeOneWay
		if req.ReturnDate != "" {
			req.TripType = domain.TripTypeRoundTrip
		}
	}
	if req.CabinClass == "" {
		req.CabinClass = domain.CabinClassEconomy
	} else if c := normalize.ParseCabinClass(string(req.CabinClass)); c != "" {
		req.CabinClass = c
	}
	if req.Passengers == 0 {
		req.Passengers = 1
	}

	switch {
	case req.Origin == "":
		return req, fmt.Errorf("%w: origin is required", ErrInvalidSearch)
	case req.Destination == "":
		return req, fmt.Errorf("%w: destination is required", ErrInvalidSearch)
	case req.Origin == req.Destination:
		return req, fmt.Errorf("%w: origin and destination must differ", ErrInvalidSearch)
	case req.Passengers < 1:
		return req, fmt.Errorf("%w: passengers must be at least 1", ErrInvalidSearch)
	case !req.CabinClass.Valid():
		return req, fmt.Errorf("%w: unknown cabin class %q", ErrInvalidSearch, req.CabinClass)
	}

	departure, err := parseDate("departureDate", req.DepartureDate)
	if err != nil {
		return req, err
	}

	switch req.TripType {
	case domain.TripTypeOneWay:
		if req.ReturnDate != "" {
			return req, fmt.Errorf("%w: returnDate is only allowed for round trips", ErrInvalidSearch)
		}
	case domain.TripTypeRoundTrip:
		ret, err := parseDate("returnDate", req.ReturnDate)
		if err != nil {
			return req, err
		}
		if ret.Before(departure) {
			return req, fmt.Errorf("%w: returnDate is before departureDate", ErrInvalidSearch)
		}
	default:
		return req, fmt.Errorf("%w: unknown trip type %q", ErrInvalidSearch, req.TripType)
	}
	return req, nil
}

func parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidSearch, field)
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidSearch, field)
	}
	return t, nil
}

var _ FlightUseCase = (*FlightService)(nil)
