package analyses

import (
	"context"
	"time"

	"resumelens/internal/feedback"
	"resumelens/internal/report"
)

const sampleResume = "Summary\nExperience\n- Developed payment APIs in Python\n- Led a team of four\nSkills: python, kubernetes, terraform\nEducation: BSc"

type stubFeedback struct {
	text  string
	err   error
	calls int
	last  feedback.Request
}

func (s *stubFeedback) Feedback(ctx context.Context, req feedback.Request) (string, error) {
	s.calls++
	s.last = req
	return s.text, s.err
}

func (s *stubFeedback) Name() string { return "stub" }

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time { return c.t }

func newTestService(fb feedback.Client, clk *clock) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo(clk.Now)
	return &Service{
		Repo:              repo,
		Feedback:          fb,
		Renderer:          report.NewRenderer(report.Options{}),
		FeedbackTimeout:   time.Second,
		SystemInstruction: "You are a professional resume reviewer.",
		TTL:               30 * time.Minute,
		Now:               clk.Now,
	}, repo
}
