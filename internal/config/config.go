package config

import (
	"os"
	"strconv"
)

// Config is built once at startup and passed into component constructors as
// an immutable value; components never read process state themselves. Change
// the configuration by recreating the dependent components.
type Config struct {
	Port   string
	AppEnv string

	GoogleMapsAPIKey string
	OSRMEnabled      bool
	OSRMBaseURL      string
	NominatimBaseURL string

	EstimatorSpeedKmh   float64
	BufferMinutes       int
	MaxWaypoints        int
	LoadPenaltyWeight   float64
	DefaultSeatCapacity int

	RedisAddr   string
	DatabaseURL string
}

func Load() Config {
	return Config{
		Port:   envOrDefault("PORT", "8080"),
		AppEnv: envOrDefault("APP_ENV", "development"),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		OSRMEnabled:      envOrDefaultBool("OSRM_ENABLED", true),
		OSRMBaseURL:      envOrDefault("OSRM_BASE_URL", "https://router.project-osrm.org"),
		NominatimBaseURL: envOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		EstimatorSpeedKmh:   envOrDefaultFloat("ESTIMATOR_SPEED_KMH", 30),
		BufferMinutes:       envOrDefaultInt("BUFFER_MINUTES", 5),
		MaxWaypoints:        envOrDefaultInt("MAX_WAYPOINTS", 23),
		LoadPenaltyWeight:   envOrDefaultFloat("LOAD_PENALTY_WEIGHT", 2),
		DefaultSeatCapacity: envOrDefaultInt("DEFAULT_SEAT_CAPACITY", 4),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
