package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carpool-planner/internal/adapters/geocode"
	"carpool-planner/internal/adapters/routing"
	"carpool-planner/internal/adapters/snapshot"
	"carpool-planner/internal/api"
	"carpool-planner/internal/config"
	"carpool-planner/internal/platform/db"
	"carpool-planner/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Google, OSRM, Nominatim, Redis, Postgres)
// behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := newLogger(cfg.AppEnv)
	defer log.Sync()

	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	router := api.NewRouter(
		buildResolver(cfg, log),
		buildProvider(cfg, log),
		buildSnapshotStore(cfg, log),
		api.RouterConfig{
			LoadPenaltyWeight:   cfg.LoadPenaltyWeight,
			DefaultSeatCapacity: cfg.DefaultSeatCapacity,
			Buffer:              time.Duration(cfg.BufferMinutes) * time.Minute,
		},
		log,
	)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Info("server listening", zap.String("addr", ":"+cfg.Port))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

func newLogger(appEnv string) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return log
}

// buildProvider chains routing backends in preference order: Google when an
// API key is configured, OSRM when enabled, and the estimator always last so
// planning never fails outright.
func buildProvider(cfg config.Config, log *zap.Logger) ports.RouteProvider {
	var backends []routing.Backend

	if cfg.GoogleMapsAPIKey != "" {
		google, err := routing.NewGoogleBackend(cfg.GoogleMapsAPIKey, cfg.MaxWaypoints)
		if err != nil {
			log.Fatal("google maps client", zap.Error(err))
		}
		backends = append(backends, google)
	}
	if cfg.OSRMEnabled {
		backends = append(backends, routing.NewOSRMBackend(cfg.OSRMBaseURL))
	}
	backends = append(backends, routing.NewEstimator(cfg.EstimatorSpeedKmh))

	var cache routing.RouteCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = routing.NewRedisCache(rdb, 0, log)
		log.Info("route cache", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
	} else {
		cache = routing.NewMemoryCache()
		log.Info("route cache", zap.String("backend", "memory"))
	}

	return routing.NewProvider(backends, cache, log)
}

func buildResolver(cfg config.Config, log *zap.Logger) ports.GeoResolver {
	nominatim := geocode.NewNominatimClient(cfg.NominatimBaseURL)
	return geocode.NewResolver(nominatim, geocode.NewGazetteer(), log)
}

// buildSnapshotStore prefers Postgres when DATABASE_URL is set and falls back
// to the in-memory store for local runs.
func buildSnapshotStore(cfg config.Config, log *zap.Logger) ports.SnapshotStore {
	if cfg.DatabaseURL == "" {
		log.Info("snapshot store", zap.String("backend", "memory"))
		return snapshot.NewMemoryStore()
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open postgres", zap.Error(err))
	}
	if err := snapshot.InitSchema(conn); err != nil {
		log.Fatal("init snapshot schema", zap.Error(err))
	}

	log.Info("snapshot store", zap.String("backend", "postgres"))
	return snapshot.NewPostgresStore(conn)
}
