package scoring

import (
	"unicode"
	"unicode/utf8"
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

// wordRuns returns the maximal runs of word characters (letters, digits, underscore) in text.
func wordRuns(text string) []string {
	var (
		runs  []string
		start = -1
	)
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, text[start:])
	}
	return runs
}

// keywordSet returns the distinct word runs of text that consist solely of ASCII
// letters and are at least three characters long. text is expected to be lower-cased.
func keywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRuns(text) {
		if len(w) < 3 || !isASCIILetters(w) {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
