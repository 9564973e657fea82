package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"resumelens/internal/feedback"
	"resumelens/internal/scoring"
)

// FileName is the suggested download name of a rendered report.
const FileName = "resume_report.pdf"

// ContentType is the media type of a rendered report.
const ContentType = "application/pdf"

// DefaultTitle is drawn at the top of page one unless overridden.
const DefaultTitle = "ResumeLens AI – Resume Analysis Report"

// ErrRender wraps any failure producing the PDF document.
var ErrRender = errors.New("render report")

// Options controls report rendering.
type Options struct {
	Title string
	// FeedbackMaxChars truncates feedback when positive.
	FeedbackMaxChars int
	// WrapWidth is the maximum number of characters per feedback line.
	WrapWidth int
	// CreatedAt is stamped into the document metadata when set.
	CreatedAt time.Time
}

// Renderer draws analysis results onto Letter-sized PDF pages.
type Renderer struct {
	opts Options
}

// NewRenderer applies defaults to opts.
func NewRenderer(opts Options) *Renderer {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = defaultWrapWidth
	}
	if opts.FeedbackMaxChars < 0 {
		opts.FeedbackMaxChars = 0
	}
	return &Renderer{opts: opts}
}

// WithCreationDate returns a copy of r that stamps t as the document creation date.
func (r *Renderer) WithCreationDate(t time.Time) *Renderer {
	opts := r.opts
	opts.CreatedAt = t
	return &Renderer{opts: opts}
}

// Render lays out and draws the report.
func (r *Renderer) Render(scores scoring.Report, fb feedback.Result) ([]byte, error) {
	return r.Draw(r.Layout(scores, fb))
}

// Draw writes a precomputed layout to PDF bytes.
func (r *Renderer) Draw(layout Layout) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrRender, rec)
		}
	}()

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(r.opts.Title, true)
	doc.SetCreator("ResumeLens", false)
	if !r.opts.CreatedAt.IsZero() {
		doc.SetCreationDate(r.opts.CreatedAt)
		doc.SetModificationDate(r.opts.CreatedAt)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, page := range layout.Pages {
		doc.AddPage()
		for _, ln := range page.Lines {
			style := ""
			if ln.Bold {
				style = "B"
			}
			doc.SetFont("Helvetica", style, ln.Size)
			doc.Text(marginLeft, ln.Y, tr(ln.Text))
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
