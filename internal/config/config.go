package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Chat failure policies decide the response shape when the completion
// provider cannot be reached.
const (
	FailurePolicyFallback = "fallback"
	FailurePolicyError    = "error"
)

// Config holds the environment driven configuration for the recommend service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"recommend-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// Completion provider (OpenAI compatible)
	CompletionBaseURL     string        `env:"COMPLETION_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	CompletionAPIKey      string        `env:"COMPLETION_API_KEY"`
	CompletionModel       string        `env:"COMPLETION_MODEL" envDefault:"deepseek/deepseek-chat"`
	CompletionTimeout     time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"30s"`
	CompletionMaxTokens   int           `env:"COMPLETION_MAX_TOKENS" envDefault:"1500"`
	CompletionTemperature float32       `env:"COMPLETION_TEMPERATURE" envDefault:"0.3"`

	// Chat behavior
	ChatFailurePolicy      string `env:"CHAT_FAILURE_POLICY" envDefault:"fallback"`
	DefaultRecommendations int    `env:"DEFAULT_RECOMMENDATIONS" envDefault:"3"`

	// Catalogs. Empty paths fall back to the embedded snapshots.
	CatalogFile       string `env:"CATALOG_FILE"`
	WidgetCatalogFile string `env:"WIDGET_CATALOG_FILE"`

	// Base domain baked into the embed script served at /widget.js.
	WidgetDomain string `env:"WIDGET_DOMAIN" envDefault:"http://localhost:8080"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.ChatFailurePolicy = strings.ToLower(cfg.ChatFailurePolicy)

	switch cfg.ChatFailurePolicy {
	case FailurePolicyFallback, FailurePolicyError:
	default:
		return nil, fmt.Errorf("invalid CHAT_FAILURE_POLICY %q: must be %q or %q",
			cfg.ChatFailurePolicy, FailurePolicyFallback, FailurePolicyError)
	}

	if _, err := url.ParseRequestURI(cfg.CompletionBaseURL); err != nil {
		return nil, fmt.Errorf("invalid COMPLETION_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.WidgetDomain); err != nil {
		return nil, fmt.Errorf("invalid WIDGET_DOMAIN: %w", err)
	}

	if cfg.DefaultRecommendations < 1 {
		return nil, fmt.Errorf("DEFAULT_RECOMMENDATIONS must be at least 1, got %d", cfg.DefaultRecommendations)
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
