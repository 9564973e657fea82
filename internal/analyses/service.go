package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumelens/internal/extract"
	"resumelens/internal/feedback"
	"resumelens/internal/report"
	"resumelens/internal/scoring"
	"resumelens/internal/shared/metrics"
	"resumelens/internal/shared/telemetry"
	"resumelens/internal/shared/util"
)

// DefaultTTL is how long a completed analysis stays retrievable.
const DefaultTTL = 30 * time.Minute

const logPreviewRunes = 200

// Service runs the extract, score, feedback and render pipeline.
type Service struct {
	Repo              Repo
	Feedback          feedback.Client
	Renderer          *report.Renderer
	FeedbackTimeout   time.Duration
	SystemInstruction string
	TTL               time.Duration
	Now               func() time.Time
}

// Analyze screens one resume. Extraction and rendering failures are returned as errors;
// a feedback failure is not, it only sets FeedbackWarning.
func (s *Service) Analyze(ctx context.Context, in Input) (Analysis, error) {
	start := time.Now()
	analysisID := uuid.NewString()
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysisID,
		"file_name":   in.FileName,
		"media_type":  in.MediaType,
		"bytes":       len(in.Data),
		"sha256":      util.Digest(in.Data),
	})

	mediaType := extract.ResolveMediaType(in.MediaType, in.FileName, in.Data)
	text, err := extract.Extract(ctx, extract.Document{Data: in.Data, MediaType: mediaType, FileName: in.FileName})
	if err != nil {
		return Analysis{}, s.fail(ctx, analysisID, "extract", err)
	}

	scores := scoring.Evaluate(text, in.JobDescription)

	fb := feedback.Fetch(ctx, s.Feedback, feedback.Request{
		SystemInstruction: s.SystemInstruction,
		ResumeText:        text,
		JobDescription:    in.JobDescription,
	}, s.FeedbackTimeout)
	if fb.Err != nil {
		metrics.IncFeedbackFailed()
		// Provider errors can carry whole response bodies.
		telemetry.Warn("analysis.feedback_unavailable", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysisID,
			"provider":    feedback.ProviderName(s.Feedback),
			"error":       telemetry.TruncateForLog(fb.Err.Error(), logPreviewRunes),
		})
	} else {
		telemetry.Debug("analysis.feedback_received", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysisID,
			"provider":    feedback.ProviderName(s.Feedback),
			"characters":  len([]rune(fb.Text)),
			"preview":     telemetry.TruncateForLog(fb.Text, logPreviewRunes),
		})
	}

	now := s.now()
	pdf, err := s.renderer().WithCreationDate(now).Render(scores, fb)
	if err != nil {
		return Analysis{}, s.fail(ctx, analysisID, "render", err)
	}

	analysis := Analysis{
		ID:                analysisID,
		FileName:          in.FileName,
		MediaType:         mediaType,
		HasJobDescription: strings.TrimSpace(in.JobDescription) != "",
		Scores:            scores,
		FeedbackProvider:  feedback.ProviderName(s.Feedback),
		FeedbackWarning:   fb.Warning(),
		Report:            pdf,
		DurationMs:        float64(time.Since(start).Microseconds()) / 1000.0,
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.ttl()),
	}
	if fb.Present() {
		analysis.Feedback = fb.Text
	}

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, analysis); err != nil {
			return Analysis{}, s.fail(ctx, analysisID, "store", err)
		}
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(analysis.DurationMs)
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":      requestIDFromContext(ctx),
		"analysis_id":     analysisID,
		"ats_score":       scores.ATSScore,
		"readability":     scores.ReadabilityScore,
		"skill_match":     scores.SkillMatchPercent,
		"has_feedback":    fb.Present(),
		"report_bytes":    len(pdf),
		"duration_ms":     analysis.DurationMs,
		"text_characters": len([]rune(text)),
	})
	return analysis, nil
}

// Get returns a stored analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Analysis{}, fmt.Errorf("%w: analysis id is required", ErrValidation)
	}
	if s.Repo == nil {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, analysisID)
}

func (s *Service) fail(ctx context.Context, analysisID, stage string, err error) error {
	metrics.IncAnalysisFailed()
	fields := map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysisID,
		"stage":       stage,
		"error":       err,
	}
	if isClientError(err) {
		telemetry.Warn("analysis.rejected", fields)
	} else {
		telemetry.Error("analysis.failed", fields)
	}
	return err
}

func isClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, extract.ErrUnsupportedFormat) ||
		errors.Is(err, extract.ErrEmptyContent)
}

func (s *Service) renderer() *report.Renderer {
	if s.Renderer == nil {
		return report.NewRenderer(report.Options{})
	}
	return s.Renderer
}

func (s *Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultTTL
	}
	return s.TTL
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}
