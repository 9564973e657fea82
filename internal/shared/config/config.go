package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string   `validate:"required"`
	Env             string   `validate:"oneof=dev local staging production"`
	CORSAllowOrigin []string
	LogJSON         bool
	LogDebug        bool
	MaxUploadBytes  int64         `validate:"gt=0"`
	SessionTTL      time.Duration `validate:"gt=0"`
	RateLimitRPS    float64       `validate:"gte=0"`
	RateLimitBurst  int           `validate:"gte=0"`
	Feedback        FeedbackConfig
	Report          ReportConfig
}

// FeedbackConfig selects and configures the language-model provider used for qualitative feedback.
type FeedbackConfig struct {
	Provider          string        `validate:"oneof=none openai ollama gemini"`
	Model             string
	APIKey            string
	BaseURL           string        `validate:"omitempty,url"`
	Timeout           time.Duration `validate:"gt=0"`
	SystemInstruction string
}

// ReportConfig controls PDF report rendering.
type ReportConfig struct {
	Title string `validate:"required"`
	// FeedbackMaxChars truncates feedback text when positive; zero renders it in full.
	FeedbackMaxChars int `validate:"gte=0"`
}

const (
	defaultTitle             = "ResumeLens AI – Resume Analysis Report"
	defaultSystemInstruction = "You are a professional resume reviewer."
)

// Load reads configuration from environment variables, an optional config file and
// local .env files, with sensible defaults. A config file named by RESUMELENS_CONFIG
// that cannot be read is an error.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}
	return FromViper(v), nil
}

// LoadAndValidate is Load followed by Validate.
func LoadAndValidate() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := strings.TrimSpace(v.GetString("resumelens_config")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "dev")
	v.SetDefault("cors_allow_origins", "http://localhost:5173")
	v.SetDefault("log_json", true)
	v.SetDefault("log_debug", false)
	v.SetDefault("max_upload_bytes", int64(10<<20))
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("rate_limit_rps", 2.0)
	v.SetDefault("rate_limit_burst", 5)
	v.SetDefault("llm_provider", "none")
	v.SetDefault("llm_timeout", 30*time.Second)
	v.SetDefault("llm_system_instruction", defaultSystemInstruction)
	v.SetDefault("report_title", defaultTitle)
	v.SetDefault("report_feedback_max_chars", 0)
}

// FromViper maps a viper instance onto Config.
func FromViper(v *viper.Viper) Config {
	provider := normalizeProvider(v.GetString("llm_provider"))
	return Config{
		Port:            v.GetString("port"),
		Env:             normalizeEnv(v.GetString("env")),
		CORSAllowOrigin: splitAndTrim(v.GetString("cors_allow_origins")),
		LogJSON:         v.GetBool("log_json"),
		LogDebug:        v.GetBool("log_debug"),
		MaxUploadBytes:  v.GetInt64("max_upload_bytes"),
		SessionTTL:      v.GetDuration("session_ttl"),
		RateLimitRPS:    v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:  v.GetInt("rate_limit_burst"),
		Feedback: FeedbackConfig{
			Provider:          provider,
			Model:             strings.TrimSpace(v.GetString("llm_model")),
			APIKey:            apiKeyFor(v, provider),
			BaseURL:           strings.TrimSpace(v.GetString("llm_base_url")),
			Timeout:           v.GetDuration("llm_timeout"),
			SystemInstruction: v.GetString("llm_system_instruction"),
		},
		Report: ReportConfig{
			Title:            v.GetString("report_title"),
			FeedbackMaxChars: v.GetInt("report_feedback_max_chars"),
		},
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func apiKeyFor(v *viper.Viper, provider string) string {
	if key := strings.TrimSpace(v.GetString("llm_api_key")); key != "" {
		return key
	}
	switch provider {
	case "openai":
		return strings.TrimSpace(v.GetString("openai_api_key"))
	case "gemini":
		return strings.TrimSpace(v.GetString("gemini_api_key"))
	default:
		return ""
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "openai", "ollama", "gemini":
		return p
	case "", "none", "off":
		return "none"
	default:
		return p
	}
}
