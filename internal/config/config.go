package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// LLM backend
	LLMProvider     Provider
	PersonaModel    string
	AnswerModel     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	OllamaHost      string
	AWSRegion       string

	// Sampling
	PersonaTemperature float64
	AnswerTemperature  float64
	TopP               float64
	MaxTokens          int
	LLMTimeout         time.Duration

	// Submission
	SubmitTimeout   time.Duration
	SubmissionDelay time.Duration

	// Answering profile
	ProfileName string
	ProfilePath string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// OpenAIBaseURL allows pointing the openai provider at any
// OpenAI-compatible endpoint (Groq, vLLM, ...).
func Load() Config {
	return Config{
		LLMProvider:     Provider(getEnv("FORMGHOST_PROVIDER", "openai")),
		PersonaModel:    getEnv("FORMGHOST_PERSONA_MODEL", "openai/gpt-oss-20b"),
		AnswerModel:     getEnv("FORMGHOST_ANSWER_MODEL", "moonshotai/kimi-k2-instruct-0905"),
		OpenAIAPIKey:    getEnv("FORMGHOST_OPENAI_API_KEY", os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   getEnv("FORMGHOST_OPENAI_BASE_URL", ""),
		AnthropicAPIKey: getEnv("FORMGHOST_ANTHROPIC_API_KEY", os.Getenv("ANTHROPIC_API_KEY")),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),

		PersonaTemperature: getEnvFloat("FORMGHOST_PERSONA_TEMPERATURE", 1.5),
		AnswerTemperature:  getEnvFloat("FORMGHOST_ANSWER_TEMPERATURE", 1.0),
		TopP:               getEnvFloat("FORMGHOST_TOP_P", 1.0),
		MaxTokens:          getEnvInt("FORMGHOST_MAX_TOKENS", 8192),
		LLMTimeout:         getEnvDuration("FORMGHOST_LLM_TIMEOUT", 60*time.Second),

		SubmitTimeout:   getEnvDuration("FORMGHOST_SUBMIT_TIMEOUT", 5*time.Second),
		SubmissionDelay: getEnvDuration("FORMGHOST_SUBMISSION_DELAY", 10*time.Second),

		ProfileName: getEnv("FORMGHOST_PROFILE", "concise"),
		ProfilePath: getEnv("FORMGHOST_PROFILE_FILE", ""),

		LogFile:  getEnv("FORMGHOST_LOG_FILE", "/tmp/formghost.log"),
		LogLevel: parseLogLevel(getEnv("FORMGHOST_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
