package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServiceName != "recommend-api" {
		t.Errorf("ServiceName = %q, want recommend-api", cfg.ServiceName)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.CompletionTemperature != 0.3 {
		t.Errorf("CompletionTemperature = %v, want 0.3", cfg.CompletionTemperature)
	}
	if cfg.CompletionMaxTokens != 1500 {
		t.Errorf("CompletionMaxTokens = %d, want 1500", cfg.CompletionMaxTokens)
	}
	if cfg.CompletionTimeout != 30*time.Second {
		t.Errorf("CompletionTimeout = %v, want 30s", cfg.CompletionTimeout)
	}
	if cfg.ChatFailurePolicy != FailurePolicyFallback {
		t.Errorf("ChatFailurePolicy = %q, want %q", cfg.ChatFailurePolicy, FailurePolicyFallback)
	}
	if cfg.DefaultRecommendations != 3 {
		t.Errorf("DefaultRecommendations = %d, want 3", cfg.DefaultRecommendations)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad failure policy", key: "CHAT_FAILURE_POLICY", value: "retry"},
		{name: "bad completion base url", key: "COMPLETION_BASE_URL", value: "not a url"},
		{name: "bad widget domain", key: "WIDGET_DOMAIN", value: "::::"},
		{name: "zero default recommendations", key: "DEFAULT_RECOMMENDATIONS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestLoadFailurePolicyCaseInsensitive(t *testing.T) {
	t.Setenv("CHAT_FAILURE_POLICY", "ERROR")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChatFailurePolicy != FailurePolicyError {
		t.Errorf("ChatFailurePolicy = %q, want %q", cfg.ChatFailurePolicy, FailurePolicyError)
	}
}
