package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultAddr          = ":8080"
	DefaultCatalogPath   = "catalog.yaml"
	DefaultConsentDays   = 365
	DefaultSchemaVersion = "1.0"
	DefaultFetchTimeout  = 10 * time.Second
)

// Server captures process level configuration for the consent service.
type Server struct {
	Addr              string
	CatalogPath       string
	ConsentTTLDays    int
	SchemaVersion     string
	ReceiptSigningKey string
	ResourceBaseURL   string
	FetchTimeout      time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:              envOr("CONSENTGATE_ADDR", DefaultAddr),
		CatalogPath:       envOr("CONSENTGATE_CATALOG", DefaultCatalogPath),
		ConsentTTLDays:    DefaultConsentDays,
		SchemaVersion:     envOr("CONSENT_SCHEMA_VERSION", DefaultSchemaVersion),
		ReceiptSigningKey: os.Getenv("RECEIPT_SIGNING_KEY"),
		ResourceBaseURL:   os.Getenv("RESOURCE_BASE_URL"),
		FetchTimeout:      DefaultFetchTimeout,
	}

	if days := os.Getenv("CONSENT_TTL_DAYS"); days != "" {
		if parsed, err := strconv.Atoi(days); err == nil && parsed > 0 {
			cfg.ConsentTTLDays = parsed
		}
	}
	if timeout := os.Getenv("RESOURCE_FETCH_TIMEOUT"); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil && parsed > 0 {
			cfg.FetchTimeout = parsed
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
