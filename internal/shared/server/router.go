package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumelens/internal/analyses"
	"resumelens/internal/services/health"
	"resumelens/internal/shared/config"
	"resumelens/internal/shared/metrics"
	"resumelens/internal/shared/server/middleware"
	"resumelens/internal/shared/server/respond"
)

const (
	rateGroupAnalyze = "ANALYZE"
	rateGroupRead    = "READ"
)

// RouterDeps bundles handlers for router registration.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if deps.Config.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = deps.Config.MaxUploadBytes
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(deps.Config.Feedback.Provider, nil)
	}
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: rateGroupAnalyze,
		GroupFor:     rateGroupFor,
		Limiter:      deps.RateLimiter,
		Rules:        rateLimitRules(deps.Config),
	}))
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(limited)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "route not found", nil)
	})

	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return rateGroupRead
	}
	return rateGroupAnalyze
}

// Reads get five times the upload budget so clients can poll and download freely.
func rateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil
	}
	return map[string]middleware.RateLimitRule{
		rateGroupAnalyze: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
		rateGroupRead:    {Rate: cfg.RateLimitRPS * 5, Burst: cfg.RateLimitBurst * 5},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
