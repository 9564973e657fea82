package analyses

import (
	"time"

	"resumelens/internal/scoring"
)

// Analysis is one completed screening of a resume, kept for the session TTL.
type Analysis struct {
	ID                string         `json:"id"`
	FileName          string         `json:"fileName,omitempty"`
	MediaType         string         `json:"mediaType"`
	HasJobDescription bool           `json:"hasJobDescription"`
	Scores            scoring.Report `json:"scores"`
	Feedback          string         `json:"feedback,omitempty"`
	FeedbackProvider  string         `json:"feedbackProvider"`
	FeedbackWarning   string         `json:"feedbackWarning,omitempty"`
	Report            []byte         `json:"-"`
	DurationMs        float64        `json:"durationMs"`
	CreatedAt         time.Time      `json:"createdAt"`
	ExpiresAt         time.Time      `json:"expiresAt"`
}

// Input is an uploaded resume plus an optional job description.
type Input struct {
	FileName       string
	MediaType      string
	Data           []byte
	JobDescription string
}
