package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"carpool-planner/internal/api/handlers"
	"carpool-planner/internal/ports"
)

// RouterConfig carries the tunables handlers need; everything else arrives
// through ports.
type RouterConfig struct {
	LoadPenaltyWeight   float64
	DefaultSeatCapacity int
	Buffer              time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	resolver ports.GeoResolver,
	provider ports.RouteProvider,
	store ports.SnapshotStore,
	cfg RouterConfig,
	log *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Log: log}
	planHandler := &handlers.PlanHandler{
		Resolver:      resolver,
		Provider:      provider,
		PenaltyWeight: cfg.LoadPenaltyWeight,
		SeatCapacity:  cfg.DefaultSeatCapacity,
		Buffer:        cfg.Buffer,
		Log:           log,
	}
	snapshotHandler := &handlers.SnapshotHandler{Store: store, Log: log}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/snapshots", snapshotHandler.Save)
	mux.HandleFunc("/snapshots/", snapshotHandler.Load)

	return loggingMiddleware(log)(mux)
}
