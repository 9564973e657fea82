package scoring

// Report is the immutable result of scoring one resume.
type Report struct {
	ATSScore          int          `json:"atsScore"`
	ATS               ATSBreakdown `json:"ats"`
	SkillMatchPercent *float64     `json:"skillMatchPercent"`
	MatchedKeywords   []string     `json:"matchedKeywords"`
	ReadabilityScore  int          `json:"readabilityScore"`
}

// Evaluate runs the three scorers over text. jobDescription may be empty.
func Evaluate(text, jobDescription string) Report {
	ats := ATS(text)
	pct, matched := SkillMatch(text, jobDescription)
	return Report{
		ATSScore:          ats.Total(),
		ATS:               ats,
		SkillMatchPercent: pct,
		MatchedKeywords:   matched,
		ReadabilityScore:  Readability(text),
	}
}
