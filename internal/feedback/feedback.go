package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds a single feedback call when the caller does not configure one.
const DefaultTimeout = 30 * time.Second

// Client abstracts language-model providers that review a resume.
type Client interface {
	Feedback(ctx context.Context, req Request) (string, error)
}

// Request is the payload sent to a feedback provider.
type Request struct {
	SystemInstruction string
	ResumeText        string
	JobDescription    string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("feedback provider not configured")

// ErrEmptyResponse is returned by providers that answered without any text.
var ErrEmptyResponse = errors.New("feedback provider returned empty response")

// ServiceError reports a failed feedback call. It never aborts an analysis.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("feedback service: %v", e.Err)
	}
	return fmt.Sprintf("feedback service %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Result is either feedback text or the reason it is missing.
type Result struct {
	Text string
	Err  error
}

// OK wraps successful feedback text.
func OK(text string) Result { return Result{Text: text} }

// Failed wraps a feedback failure.
func Failed(err error) Result { return Result{Err: err} }

// Present reports whether the result carries non-empty feedback text.
func (r Result) Present() bool {
	return r.Err == nil && strings.TrimSpace(r.Text) != ""
}

// Warning returns a user-facing message when feedback could not be produced.
func (r Result) Warning() string {
	if r.Err == nil {
		return ""
	}
	if errors.Is(r.Err, ErrNotConfigured) {
		return "AI-powered detailed feedback is not configured; scores are fully functional."
	}
	return "AI-powered detailed feedback could not be generated; scores are fully functional."
}

// Named is implemented by clients that report a provider name for logs and errors.
type Named interface {
	Name() string
}

// Modeled is implemented by clients that report the model they call.
type Modeled interface {
	Model() string
}

// Fetch makes exactly one feedback call bounded by timeout. Failures are returned
// as a Result carrying a *ServiceError instead of an error value.
func Fetch(ctx context.Context, client Client, req Request, timeout time.Duration) Result {
	provider := ProviderName(client)
	if client == nil {
		return Failed(&ServiceError{Provider: provider, Err: ErrNotConfigured})
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := client.Feedback(callCtx, req)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return Failed(&ServiceError{Provider: provider, Err: err})
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Failed(&ServiceError{Provider: provider, Err: ErrEmptyResponse})
	}
	return OK(text)
}

// ModelName returns the model client talks to, or "" when it does not report one.
func ModelName(client Client) string {
	if m, ok := client.(Modeled); ok {
		return m.Model()
	}
	return ""
}

// ProviderName returns the provider name of client, or "none".
func ProviderName(client Client) string {
	if n, ok := client.(Named); ok {
		return n.Name()
	}
	return "none"
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Feedback returns ErrNotConfigured.
func (PlaceholderClient) Feedback(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// Name implements Named.
func (PlaceholderClient) Name() string { return "none" }
