package confirmation

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetBookingDetails(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockAPI) GetFlightDetails(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func flight(id, number string) map[string]any {
	return map[string]any{"flight_id": id, "flight_number": number, "price": "120"}
}

func TestReconcile_OneWayByID(t *testing.T) {
	api := &MockAPI{}
	api.On("GetBookingDetails", mock.Anything, "B-1").Return(map[string]any{
		"id":                 "B-1",
		"outbound_flight_id": "F-1",
		"booking_status":     "CONFIRMED",
	}, nil)
	api.On("GetFlightDetails", mock.Anything, "F-1").Return(flight("F-1", "AA1"), nil)

	st := NewReconciler(api, zaptest.NewLogger(t)).Reconcile(context.Background(), Reference{BookingID: "B-1"})

	require.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, "ready", st.Status)
	assert.Equal(t, "AA1", st.Outbound.FlightNumber)
	assert.Nil(t, st.Return)
	assert.Empty(t, st.Error)
	api.AssertNumberOfCalls(t, "GetFlightDetails", 1)
}

func TestReconcile_EmbeddedLegsSkipLookups(t *testing.T) {
	api := &MockAPI{}
	ref := Reference{Booking: map[string]any{
		"id":              "B-2",
		"outbound_flight": flight("F-1", "AA1"),
		"returnFlight":    map[string]any{"id": "F-2", "flightNumber": "AA2"},
	}}

	st := NewReconciler(api, nil).Reconcile(context.Background(), ref)

	require.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, "AA1", st.Outbound.FlightNumber)
	assert.Equal(t, "AA2", st.Return.FlightNumber)
	api.AssertNotCalled(t, "GetFlightDetails", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "GetBookingDetails", mock.Anything, mock.Anything)
}

func TestReconcile_ReturnFailureDegrades(t *testing.T) {
	api := &MockAPI{}
	api.On("GetFlightDetails", mock.Anything, "F-1").Return(flight("F-1", "AA1"), nil)
	api.On("GetFlightDetails", mock.Anything, "F-2").Return(nil, errors.New("connection reset"))

	st := NewReconciler(api, nil).Reconcile(context.Background(), Reference{Booking: map[string]any{
		"id": "B-3", "outboundFlightId": "F-1", "returnFlightId": "F-2",
	}})

	require.Equal(t, PhaseReady, st.Phase)
	assert.NotNil(t, st.Outbound)
	assert.Nil(t, st.Return)
}

func TestReconcile_MissingOutboundIsError(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*MockAPI)
		raw   map[string]any
		want  string
	}{
		{
			name:  "no outbound reference",
			setup: func(*MockAPI) {},
			raw:   map[string]any{"id": "B-4"},
			want:  MsgOutboundMissing,
		},
		{
			name: "lookup not found",
			setup: func(m *MockAPI) {
				m.On("GetFlightDetails", mock.Anything, "F-1").Return(nil, &apiclient.APIError{StatusCode: 404})
			},
			raw:  map[string]any{"id": "B-4", "outbound_flight_id": "F-1"},
			want: MsgFlightNotFound,
		},
		{
			name: "lookup fails",
			setup: func(m *MockAPI) {
				m.On("GetFlightDetails", mock.Anything, "F-1").Return(nil, &apiclient.APIError{StatusCode: 502})
			},
			raw:  map[string]any{"id": "B-4", "outbound_flight_id": "F-1"},
			want: MsgOutboundMissing,
		},
		{
			name: "lookup returns null",
			setup: func(m *MockAPI) {
				m.On("GetFlightDetails", mock.Anything, "F-1").Return(nil, nil)
			},
			raw:  map[string]any{"id": "B-4", "outbound_flight_id": "F-1"},
			want: MsgOutboundMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockAPI{}
			tt.setup(api)

			st := NewReconciler(api, nil).Reconcile(context.Background(), Reference{Booking: tt.raw})
			assert.Equal(t, PhaseError, st.Phase)
			assert.Equal(t, tt.want, st.Error)
			require.NotNil(t, st.Booking)
			assert.Equal(t, "B-4", st.Booking.ID)
		})
	}
}

func TestReconcile_BookingLookupErrors(t *testing.T) {
	api := &MockAPI{}
	api.On("GetBookingDetails", mock.Anything, "gone").Return(nil, &apiclient.APIError{StatusCode: 404})
	api.On("GetBookingDetails", mock.Anything, "broken").Return(nil, &apiclient.APIError{StatusCode: 503})
	r := NewReconciler(api, nil)

	assert.Equal(t, MsgNoReference, r.Reconcile(context.Background(), Reference{}).Error)
	assert.Equal(t, MsgNoReference, r.Reconcile(context.Background(), Reference{BookingID: "  "}).Error)
	assert.Equal(t, MsgBookingNotFound, r.Reconcile(context.Background(), Reference{BookingID: "gone"}).Error)
	assert.Equal(t, MsgBookingFailed, r.Reconcile(context.Background(), Reference{BookingID: "broken"}).Error)
}

func TestResolve_LoadingThenOneTerminalState(t *testing.T) {
	api := &MockAPI{}
	api.On("GetFlightDetails", mock.Anything, "F-1").Return(nil, errors.New("down"))

	var states []State
	for st := range NewReconciler(api, nil).Resolve(context.Background(), Reference{Booking: map[string]any{"outbound_flight_id": "F-1"}}) {
		states = append(states, st)
	}

	require.Len(t, states, 2)
	assert.Equal(t, PhaseLoading, states[0].Phase)
	assert.Equal(t, PhaseError, states[1].Phase)
	assert.Equal(t, MsgOutboundMissing, states[1].Error)
}
