package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.LLMProvider != ProviderOpenAI {
		t.Errorf("default provider = %q, want openai", cfg.LLMProvider)
	}
	if cfg.MaxTokens != 8192 {
		t.Errorf("default max tokens = %d, want 8192", cfg.MaxTokens)
	}
	if cfg.SubmitTimeout != 5*time.Second {
		t.Errorf("default submit timeout = %v, want 5s", cfg.SubmitTimeout)
	}
	if cfg.SubmissionDelay != 10*time.Second {
		t.Errorf("default submission delay = %v, want 10s", cfg.SubmissionDelay)
	}
	if cfg.ProfileName != "concise" {
		t.Errorf("default profile = %q, want concise", cfg.ProfileName)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FORMGHOST_PROVIDER", "ollama")
	t.Setenv("FORMGHOST_MAX_TOKENS", "1024")
	t.Setenv("FORMGHOST_SUBMISSION_DELAY", "2s")
	t.Setenv("FORMGHOST_PERSONA_TEMPERATURE", "0.7")

	cfg := Load()
	if cfg.LLMProvider != ProviderOllama {
		t.Errorf("provider = %q, want ollama", cfg.LLMProvider)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("max tokens = %d, want 1024", cfg.MaxTokens)
	}
	if cfg.SubmissionDelay != 2*time.Second {
		t.Errorf("submission delay = %v, want 2s", cfg.SubmissionDelay)
	}
	if cfg.PersonaTemperature != 0.7 {
		t.Errorf("persona temperature = %v, want 0.7", cfg.PersonaTemperature)
	}
}
