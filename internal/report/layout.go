package report

import (
	"fmt"
	"strings"

	"resumelens/internal/feedback"
	"resumelens/internal/scoring"
)

// Letter page geometry in points, measured from the top-left corner.
const (
	pageHeight   = 792.0
	marginLeft   = 50.0
	marginTop    = 50.0
	marginBottom = 50.0
	bottomCutoff = pageHeight - marginBottom

	titleSize = 16.0
	bodySize  = 12.0

	scoresTop    = 90.0
	scoreStep    = 20.0
	feedbackStep = 15.0

	defaultWrapWidth = 90
)

// Line is a single string drawn at a baseline Y on a page.
type Line struct {
	Text string
	Y    float64
	Size float64
	Bold bool
}

// Page is an ordered set of lines.
type Page struct {
	Lines []Line
}

// Layout is the fully positioned report, independent of any PDF library.
type Layout struct {
	Pages []Page
}

// Texts returns all line texts in drawing order.
func (l Layout) Texts() []string {
	var out []string
	for _, p := range l.Pages {
		for _, ln := range p.Lines {
			out = append(out, ln.Text)
		}
	}
	return out
}

type cursor struct {
	pages []Page
	y     float64
}

func newCursor() *cursor {
	return &cursor{pages: []Page{{}}}
}

func (c *cursor) draw(text string, size float64, bold bool) {
	p := &c.pages[len(c.pages)-1]
	p.Lines = append(p.Lines, Line{Text: text, Y: c.y, Size: size, Bold: bold})
}

// flowing draws a line, starting a new page first if the cursor is past the bottom margin.
func (c *cursor) flowing(text string, size float64, bold bool) {
	if c.y > bottomCutoff {
		c.pages = append(c.pages, Page{})
		c.y = marginTop
	}
	c.draw(text, size, bold)
}

// Layout positions the title, scores block and feedback section.
func (r *Renderer) Layout(scores scoring.Report, fb feedback.Result) Layout {
	c := newCursor()

	c.y = marginTop
	c.draw(r.opts.Title, titleSize, true)

	c.y = scoresTop
	for _, s := range scoreLines(scores) {
		c.draw(s, bodySize, false)
		c.y += scoreStep
	}
	c.y += scoreStep

	switch {
	case fb.Err != nil:
		c.flowing(fb.Warning(), bodySize, false)
	case fb.Present():
		text, truncated := truncateRunes(strings.TrimSpace(fb.Text), r.opts.FeedbackMaxChars)
		heading := "AI Feedback:"
		if truncated {
			heading = "AI Feedback (truncated):"
		}
		c.flowing(heading, bodySize, true)
		c.y += scoreStep
		for _, ln := range wrapText(text, r.opts.WrapWidth) {
			c.flowing(ln, bodySize, false)
			c.y += feedbackStep
		}
	}

	return Layout{Pages: c.pages}
}

func scoreLines(s scoring.Report) []string {
	skill := "Skill Match: N/A"
	if s.SkillMatchPercent != nil {
		skill = fmt.Sprintf("Skill Match: %s%%", formatPercent(*s.SkillMatchPercent))
	}
	lines := []string{
		fmt.Sprintf("ATS Score: %d/100", s.ATSScore),
		skill,
		fmt.Sprintf("Readability: %d/100", s.ReadabilityScore),
	}
	if len(s.MatchedKeywords) > 0 {
		lines = append(lines, "Matched Keywords: "+strings.Join(s.MatchedKeywords, ", "))
	}
	return lines
}

// formatPercent always shows one decimal place, e.g. 50.0.
func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
