package scoring

import (
	"math"
	"strings"
)

const (
	minReadability   = 30
	maxReadability   = 100
	complexWordRunes = 12
)

// Readability penalizes long sentences and long words. It returns 0 when text has
// no sentences or no words, otherwise a score in [30,100].
func Readability(text string) int {
	sentences := 0
	for _, s := range strings.FieldsFunc(text, isSentenceTerminator) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	words := wordRuns(text)
	if sentences == 0 || len(words) == 0 {
		return 0
	}

	complexWords := 0
	for _, w := range words {
		if runeLen(w) > complexWordRunes {
			complexWords++
		}
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)
	complexRatio := float64(complexWords) / float64(len(words))
	raw := 100 - avgSentenceLen*1.5 - complexRatio*100

	score := int(math.RoundToEven(raw))
	return max(min(score, maxReadability), minReadability)
}

func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
