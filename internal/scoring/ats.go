package scoring

import "strings"

const maxATSScore = 100

type weightedKeyword struct {
	keyword string
	points  int
}

var sectionWeights = []weightedKeyword{
	{keyword: "experience", points: 10},
	{keyword: "skills", points: 10},
	{keyword: "education", points: 8},
	{keyword: "projects", points: 6},
	{keyword: "summary", points: 6},
}

var impactVerbs = []string{"developed", "built", "designed", "implemented", "optimized", "led", "improved", "automated"}

const (
	pointsPerVerb = 2
	maxVerbPoints = 15
)

// ATSBreakdown holds the points earned by each ATS component.
type ATSBreakdown struct {
	WordCount     int      `json:"wordCount"`
	LengthPoints  int      `json:"lengthPoints"`
	Sections      []string `json:"sections"`
	SectionPoints int      `json:"sectionPoints"`
	Verbs         []string `json:"verbs"`
	VerbPoints    int      `json:"verbPoints"`
	BulletLines   int      `json:"bulletLines"`
	BulletPoints  int      `json:"bulletPoints"`
}

// Total sums the components, capped at 100.
func (b ATSBreakdown) Total() int {
	total := b.LengthPoints + b.SectionPoints + b.VerbPoints + b.BulletPoints
	if total > maxATSScore {
		return maxATSScore
	}
	return total
}

// ATSScore returns the heuristic applicant-tracking-system score of text in [0,100].
func ATSScore(text string) int {
	return ATS(text).Total()
}

// ATS scores length, section headings, impact verbs and bullet density.
func ATS(text string) ATSBreakdown {
	lower := strings.ToLower(text)
	b := ATSBreakdown{
		WordCount:   len(strings.Fields(text)),
		Sections:    []string{},
		Verbs:       []string{},
		BulletLines: countBulletLines(text),
	}
	b.LengthPoints = lengthPoints(b.WordCount)

	for _, s := range sectionWeights {
		if strings.Contains(lower, s.keyword) {
			b.Sections = append(b.Sections, s.keyword)
			b.SectionPoints += s.points
		}
	}

	for _, v := range impactVerbs {
		if strings.Contains(lower, v) {
			b.Verbs = append(b.Verbs, v)
		}
	}
	b.VerbPoints = min(pointsPerVerb*len(b.Verbs), maxVerbPoints)

	switch {
	case b.BulletLines >= 12:
		b.BulletPoints = 15
	case b.BulletLines >= 6:
		b.BulletPoints = 8
	}
	return b
}

func lengthPoints(words int) int {
	switch {
	case words >= 500 && words <= 800:
		return 30
	case (words >= 300 && words < 500) || (words > 800 && words <= 1000):
		return 20
	default:
		return 5
	}
}

func countBulletLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			n++
		}
	}
	return n
}
