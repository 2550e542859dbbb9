package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	// Pricing constants for the unit being sold. The full price and area are
	// fixed per deployment, not user input.
	FullPrice     int64
	ApartmentArea float64

	// DepositDate is the nominal booking date for the deposit row.
	DepositDate time.Time

	// AuthSecret signs API bearer tokens. Empty disables auth (local dev).
	AuthSecret string

	// AllowedOrigins is the CORS allowlist for the frontend.
	AllowedOrigins []string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		FullPrice:      envInt64("FULL_PRICE", 25_558_146),
		ApartmentArea:  envFloat("APARTMENT_AREA", 39),
		DepositDate:    envDate("DEPOSIT_DATE", time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)),
		AuthSecret:     os.Getenv("AUTH_SECRET"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDate(key string, fallback time.Time) time.Time {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return fallback
	}
	return t
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			s := v[start:i]
			start = i + 1
			for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
				s = s[1:]
			}
			for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
				s = s[:len(s)-1]
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
