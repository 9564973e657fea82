package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resumelens/internal/analyses"
	"resumelens/internal/services/health"
	"resumelens/internal/shared/config"
	"resumelens/internal/shared/server/middleware"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "8080",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		MaxUploadBytes:  1 << 20,
		RateLimitRPS:    1,
		RateLimitBurst:  1,
		Feedback:        config.FeedbackConfig{Provider: "none"},
	}
}

func TestHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: testConfig()})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var status health.Status
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if !status.OK || status.FeedbackProvider != "none" {
		t.Fatalf("unexpected health %+v", status)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "analysis_started_total") {
		t.Fatalf("unexpected metrics response %d", resp.Code)
	}
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: testConfig()})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), `"code":"not_found"`) {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}
}

func TestAnalysisRoutesAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	svc := &analyses.Service{Repo: analyses.NewMemoryRepo(nil)}
	r := NewRouter(RouterDeps{
		Config:          testConfig(),
		AnalysisHandler: analyses.NewHandler(svc, 0),
		RateLimiter:     middleware.NewRateLimiter(func() time.Time { return now }),
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		r.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}

	// Reads have their own larger bucket.
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/missing", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for read, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
