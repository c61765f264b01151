package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "8080"
	defaultDatabaseURL     = "photobooking.db"
	defaultUploadsDir      = "./uploads"
	defaultStaticBase      = "/static/uploads"
	defaultTokenTTL        = "24h"
	defaultTokenSecret     = "change-me-draft-token-secret"
	defaultSuggestInterval = "30s"
	defaultDPMinAmount     = "50000"
	defaultMessageTemplate = "Halo! Saya {{customer_name}}, sudah booking sesi {{service_name}} " +
		"tanggal {{date}} jam {{time}}. Total {{total}}. Kode booking: {{booking_id}}."
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	UploadsDir string
	StaticBase string

	TokenSecret string
	TokenTTL    time.Duration

	CatalogBaseURL string
	CouponBaseURL  string
	BookingBaseURL string
	BookingToken   string

	SuggestInterval time.Duration
	DPMinAmount     int64

	WhatsAppNumber  string
	MessageTemplate string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:          envOrDefault("APP_ENV", "dev"),
		Port:            envOrDefault("PORT", defaultPort),
		DatabaseURL:     envOrDefault("DATABASE_URL", defaultDatabaseURL),
		UploadsDir:      envOrDefault("UPLOADS_DIR", defaultUploadsDir),
		StaticBase:      envOrDefault("STATIC_URL_BASE", defaultStaticBase),
		TokenSecret:     envOrDefault("DRAFT_TOKEN_SECRET", defaultTokenSecret),
		CatalogBaseURL:  os.Getenv("CATALOG_BASE_URL"),
		CouponBaseURL:   os.Getenv("COUPON_BASE_URL"),
		BookingBaseURL:  os.Getenv("BOOKING_BASE_URL"),
		BookingToken:    os.Getenv("BOOKING_INTERNAL_TOKEN"),
		WhatsAppNumber:  os.Getenv("WHATSAPP_NUMBER"),
		MessageTemplate: envOrDefault("HANDOFF_MESSAGE_TEMPLATE", defaultMessageTemplate),
	}

	ttl, err := time.ParseDuration(envOrDefault("DRAFT_TOKEN_TTL", defaultTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid DRAFT_TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	interval, err := time.ParseDuration(envOrDefault("COUPON_SUGGEST_INTERVAL", defaultSuggestInterval))
	if err != nil {
		return nil, fmt.Errorf("invalid COUPON_SUGGEST_INTERVAL: %w", err)
	}
	cfg.SuggestInterval = interval

	dpMin, err := strconv.ParseInt(envOrDefault("DP_MIN_AMOUNT", defaultDPMinAmount), 10, 64)
	if err != nil || dpMin < 1 {
		return nil, fmt.Errorf("invalid DP_MIN_AMOUNT")
	}
	cfg.DPMinAmount = dpMin

	if cfg.AppEnv != "dev" && cfg.TokenSecret == defaultTokenSecret {
		return nil, fmt.Errorf("DRAFT_TOKEN_SECRET must be set outside dev")
	}

	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
