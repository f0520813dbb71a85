package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carpool-planner/internal/adapters/routing"
	"carpool-planner/internal/api/dto"
)

func newPlanHandler() *PlanHandler {
	provider := routing.NewProvider(
		[]routing.Backend{routing.NewEstimator(30)},
		routing.NewMemoryCache(),
		zap.NewNop(),
	)
	return &PlanHandler{
		Provider:      provider,
		PenaltyWeight: 2,
		SeatCapacity:  4,
		Buffer:        5 * time.Minute,
		Log:           zap.NewNop(),
	}
}

const planBody = `{
	"destination": {
		"coordinate": {"lat": 0, "lng": 3},
		"deadline": "2026-06-01T12:00:00Z"
	},
	"drivers": [
		{"name": "driver", "coordinate": {"lat": 0, "lng": 0}, "seat_capacity": 4}
	],
	"pickups": [
		{"name": "p2", "coordinate": {"lat": 0, "lng": 2}, "party_size": 1},
		{"name": "p1", "coordinate": {"lat": 0, "lng": 1}, "party_size": 1}
	]
}`

func TestPlanHandler(t *testing.T) {
	h := newPlanHandler()

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(planBody))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Plans, 1)
	require.Empty(t, res.Warnings)

	plan := res.Plans[0]
	require.Equal(t, "driver", plan.DriverName)
	require.Equal(t, "estimator", plan.Route.Source)

	// Stops come back in visiting order with backward-propagated arrivals.
	require.Len(t, plan.Stops, 2)
	require.Equal(t, "p1", plan.Stops[0].PickupName)
	require.Equal(t, "p2", plan.Stops[1].PickupName)
	require.True(t, plan.DepartAt.Before(plan.Stops[0].ArriveAt))
	require.True(t, plan.Stops[0].ArriveAt.Before(plan.Stops[1].ArriveAt))

	deadline := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, plan.Stops[1].ArriveAt.Before(deadline))
}

func TestPlanHandlerOverCapacityWarns(t *testing.T) {
	h := newPlanHandler()

	body := `{
		"destination": {"coordinate": {"lat": 0, "lng": 3}, "deadline": "2026-06-01T12:00:00Z"},
		"drivers": [{"name": "driver", "coordinate": {"lat": 0, "lng": 0}, "seat_capacity": 1}],
		"pickups": [
			{"name": "p1", "coordinate": {"lat": 0, "lng": 1}, "party_size": 1},
			{"name": "p2", "coordinate": {"lat": 0, "lng": 2}, "party_size": 1}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Warnings, 1)
	require.Equal(t, 2, res.Warnings[0].Load)
	require.Equal(t, 1, res.Warnings[0].SeatCapacity)
}

func TestPlanHandlerRejectsBadRequests(t *testing.T) {
	h := newPlanHandler()

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "unknown field", body: `{"bogus": true}`},
		{name: "missing deadline", body: `{"destination": {"coordinate": {"lat": 0, "lng": 1}}, "drivers": [{"name": "d", "coordinate": {"lat": 0, "lng": 0}}]}`},
		{name: "no drivers", body: `{"destination": {"coordinate": {"lat": 0, "lng": 1}, "deadline": "2026-06-01T12:00:00Z"}}`},
		{name: "unknown strategy", body: `{"destination": {"coordinate": {"lat": 0, "lng": 1}, "deadline": "2026-06-01T12:00:00Z"}, "drivers": [{"name": "d", "coordinate": {"lat": 0, "lng": 0}}], "strategy": "bogus"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Plan(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPlanHandlerMethodNotAllowed(t *testing.T) {
	h := newPlanHandler()

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestPlanHandlerUnresolvableAddress(t *testing.T) {
	h := newPlanHandler()

	body := `{
		"destination": {"coordinate": {"lat": 0, "lng": 3}, "deadline": "2026-06-01T12:00:00Z"},
		"drivers": [{"name": "driver", "address": "somewhere unresolvable"}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
