package scoring

import (
	"sort"
	"strconv"
	"strings"
)

const maxMatchedKeywords = 10

// SkillMatch compares the vocabularies of a resume and a job description.
//
// An empty job description yields a nil percentage. A job description without any
// qualifying tokens yields 0. Otherwise the percentage is the share of job-description
// tokens present in the resume, rounded to one decimal. Matched keywords are sorted and
// limited to the first ten.
func SkillMatch(text, jobDescription string) (*float64, []string) {
	if jobDescription == "" {
		return nil, []string{}
	}

	resumeWords := keywordSet(strings.ToLower(text))
	jdWords := keywordSet(strings.ToLower(jobDescription))
	if len(jdWords) == 0 {
		zero := 0.0
		return &zero, []string{}
	}

	matched := make([]string, 0, len(jdWords))
	for w := range jdWords {
		if _, ok := resumeWords[w]; ok {
			matched = append(matched, w)
		}
	}
	sort.Strings(matched)

	pct := roundOneDecimal(float64(len(matched)) / float64(len(jdWords)) * 100)
	if len(matched) > maxMatchedKeywords {
		matched = matched[:maxMatchedKeywords]
	}
	return &pct, matched
}

// roundOneDecimal rounds half to even on the exact binary value of v.
func roundOneDecimal(v float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return out
}
