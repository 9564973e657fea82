package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resumelens/internal/analyses"
	"resumelens/internal/feedback"
	"resumelens/internal/feedback/gemini"
	"resumelens/internal/feedback/ollama"
	"resumelens/internal/feedback/openai"
	"resumelens/internal/report"
	"resumelens/internal/services/health"
	"resumelens/internal/shared/config"
	"resumelens/internal/shared/server"
	"resumelens/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Feedback        feedback.Client
	Renderer        *report.Renderer
	AnalysesRepo    *analyses.MemoryRepo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Health          *health.Service
}

// Build prepares dependencies and the HTTP router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	fb, err := BuildFeedbackClient(ctx, cfg.Feedback)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		Feedback:     fb,
		Renderer:     BuildRenderer(cfg.Report),
		AnalysesRepo: analyses.NewMemoryRepo(nil),
		Health:       health.NewService(feedback.ProviderName(fb), nil),
	}
	app.AnalysesService = &analyses.Service{
		Repo:              app.AnalysesRepo,
		Feedback:          app.Feedback,
		Renderer:          app.Renderer,
		FeedbackTimeout:   cfg.Feedback.Timeout,
		SystemInstruction: cfg.Feedback.SystemInstruction,
		TTL:               cfg.SessionTTL,
	}
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService, cfg.MaxUploadBytes)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":               cfg.Env,
		"feedback_provider": feedback.ProviderName(fb),
		"feedback_model":    feedback.ModelName(fb),
		"session_ttl":       cfg.SessionTTL.String(),
	})
	return app, nil
}

// BuildRenderer maps report configuration onto a renderer.
func BuildRenderer(cfg config.ReportConfig) *report.Renderer {
	return report.NewRenderer(report.Options{
		Title:            cfg.Title,
		FeedbackMaxChars: cfg.FeedbackMaxChars,
	})
}

// BuildFeedbackClient selects the feedback provider named in cfg.
func BuildFeedbackClient(ctx context.Context, cfg config.FeedbackConfig) (feedback.Client, error) {
	switch cfg.Provider {
	case "", "none":
		return feedback.PlaceholderClient{}, nil
	case "openai":
		client, err := openai.NewClient(openai.Options{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("openai feedback client: %w", err)
		}
		return client, nil
	case "ollama":
		return ollama.NewClient(ollama.Options{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini feedback client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
}
