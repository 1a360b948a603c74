package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, payment recipient, etc.), security settings
// - default: Values common across all environments (limits, timeouts, etc.), standard settings
// - optional (no default): features that are disabled when empty (audit log, admin API, facilitator auth)
// -----------------------------------------------------------------------------

const (
	PaymentModeOnchain     = "onchain"
	PaymentModeFacilitator = "facilitator"
)

var evmAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Audit     AuditConfig
	CORS      CORSConfig
	Log       LogConfig
	Quota     QuotaConfig
	Payment   PaymentConfig
	Screening ScreeningConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	Port           string   `envconfig:"PORT" required:"true"`
	Version        string   `envconfig:"SERVICE_VERSION" default:"1.0.0"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TLS      bool          `envconfig:"REDIS_TLS" default:"false"`
	Timeout  time.Duration `envconfig:"STORE_TIMEOUT" default:"2s"`
}

type AuditConfig struct {
	DatabaseURL string `envconfig:"AUDIT_DATABASE_URL"`
}

func (c AuditConfig) Enabled() bool {
	return c.DatabaseURL != ""
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-API-Key,X-Payment,X-Correlation-ID,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset,Retry-After,X-Correlation-ID,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type QuotaConfig struct {
	FreeTierLimit          int64 `envconfig:"FREE_TIER_LIMIT" default:"10"`
	PaidTierLimitPerMinute int64 `envconfig:"PAID_TIER_LIMIT_PER_MINUTE" default:"100"`
	AdminLimit             int64 `envconfig:"ADMIN_RATE_LIMIT" default:"10"`
}

type PaymentConfig struct {
	PricePerCheck     string        `envconfig:"PRICE_PER_CHECK" default:"0.005"`
	Recipient         string        `envconfig:"PAYMENT_RECIPIENT_ADDRESS" required:"true"`
	Network           string        `envconfig:"PAYMENT_NETWORK" default:"base-sepolia"`
	Mode              string        `envconfig:"PAYMENT_MODE" default:"onchain"`
	RPCURL            string        `envconfig:"PAYMENT_VERIFICATION_RPC"`
	FacilitatorURL    string        `envconfig:"X402_FACILITATOR_URL" default:"https://facilitator.cdp.coinbase.com/verify"`
	FacilitatorSecret string        `envconfig:"X402_FACILITATOR_SECRET"`
	Timeout           time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"5s"`
}

// Issues lists soft misconfigurations. They do not stop the process but are
// surfaced through the health endpoint, and payments fail until they are fixed.
func (c PaymentConfig) Issues() []string {
	var issues []string
	if !evmAddressPattern.MatchString(c.Recipient) {
		issues = append(issues, "PAYMENT_RECIPIENT_ADDRESS is not a valid EVM address")
	}
	switch c.Mode {
	case PaymentModeOnchain:
		if c.RPCURL == "" {
			issues = append(issues, "PAYMENT_VERIFICATION_RPC is required in onchain mode")
		}
	case PaymentModeFacilitator:
		if c.FacilitatorURL == "" {
			issues = append(issues, "X402_FACILITATOR_URL is required in facilitator mode")
		}
	default:
		issues = append(issues, fmt.Sprintf("unknown PAYMENT_MODE %q", c.Mode))
	}
	return issues
}

type ScreeningConfig struct {
	BatchMaxSize      int           `envconfig:"BATCH_MAX_SIZE" default:"1000"`
	BatchConcurrency  int           `envconfig:"BATCH_CONCURRENCY" default:"32"`
	StaleAfter        time.Duration `envconfig:"SANCTIONS_STALE_AFTER" default:"24h"`
	FreshnessSchedule string        `envconfig:"FRESHNESS_SCHEDULE" default:"@every 1h"`
}

type AdminConfig struct {
	TokenHash string `envconfig:"ADMIN_TOKEN_HASH"`
}

func (c AdminConfig) Enabled() bool {
	return c.TokenHash != ""
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Screening.BatchConcurrency < 1 {
		cfg.Screening.BatchConcurrency = 1
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:    "8889", // Test port
			Version: "1.0.0",
		},
		Redis: RedisConfig{
			Addr:    "localhost:16379", // Test Redis port
			Timeout: 2 * time.Second,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Quota: QuotaConfig{
			FreeTierLimit:          10,
			PaidTierLimitPerMinute: 100,
			AdminLimit:             10,
		},
		Payment: PaymentConfig{
			PricePerCheck:  "0.005",
			Recipient:      "0x1111111111111111111111111111111111111111",
			Network:        "base-sepolia",
			Mode:           PaymentModeFacilitator,
			FacilitatorURL: "http://127.0.0.1:0/verify",
			Timeout:        5 * time.Second,
		},
		Screening: ScreeningConfig{
			BatchMaxSize:      1000,
			BatchConcurrency:  8,
			StaleAfter:        24 * time.Hour,
			FreshnessSchedule: "@every 1h",
		},
	}
}
