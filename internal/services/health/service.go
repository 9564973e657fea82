package health

import "time"

// Service encapsulates health-related checks.
type Service struct {
	feedbackProvider string
	startedAt        time.Time
	now              func() time.Time
}

// Status is the health payload.
type Status struct {
	OK               bool   `json:"ok"`
	FeedbackProvider string `json:"feedbackProvider"`
	UptimeSeconds    int64  `json:"uptimeSeconds"`
}

// NewService constructs a new health service.
func NewService(feedbackProvider string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{feedbackProvider: feedbackProvider, startedAt: now(), now: now}
}

// Status returns the health payload.
func (s *Service) Status() Status {
	return Status{
		OK:               true,
		FeedbackProvider: s.feedbackProvider,
		UptimeSeconds:    int64(s.now().Sub(s.startedAt) / time.Second),
	}
}
