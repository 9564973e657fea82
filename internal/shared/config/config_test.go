package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := FromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigin)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "none", cfg.Feedback.Provider)
	assert.Equal(t, 30*time.Second, cfg.Feedback.Timeout)
	assert.Equal(t, defaultSystemInstruction, cfg.Feedback.SystemInstruction)
	assert.Equal(t, 0, cfg.Report.FeedbackMaxChars)
	require.NoError(t, cfg.Validate())
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("env", "prod")
	v.Set("llm_provider", " OpenAI ")
	v.Set("openai_api_key", "sk-test")
	v.Set("llm_timeout", "45s")
	v.Set("cors_allow_origins", "https://a.example, ,https://b.example")
	v.Set("report_feedback_max_chars", 1000)

	cfg := FromViper(v)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "openai", cfg.Feedback.Provider)
	assert.Equal(t, "sk-test", cfg.Feedback.APIKey)
	assert.Equal(t, 45*time.Second, cfg.Feedback.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.Equal(t, 1000, cfg.Report.FeedbackMaxChars)
}

func TestExplicitAPIKeyWins(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("llm_provider", "gemini")
	v.Set("llm_api_key", "explicit")
	v.Set("gemini_api_key", "fallback")

	assert.Equal(t, "explicit", FromViper(v).Feedback.APIKey)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("llm_provider", "mystery")

	err := FromViper(v).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Provider")
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resumelens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\nreport_title: Custom Title\n"), 0o644))
	t.Setenv("RESUMELENS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Custom Title", cfg.Report.Title)
}

func TestLoadFailsOnUnreadableConfigFile(t *testing.T) {
	t.Setenv("RESUMELENS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")

	_, err = LoadAndValidate()
	require.Error(t, err)
}
