package report

import (
	"strings"
	"unicode/utf8"
)

// wrapText splits text into lines of at most width runes. Existing newlines are kept,
// words are not broken unless a single word is longer than width.
func wrapText(text string, width int) []string {
	if width <= 0 {
		width = defaultWrapWidth
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(para, width)...)
	}
	return out
}

func wrapParagraph(para string, width int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		n = 0
	}
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if n > 0 {
				flush()
			}
			head, tail := splitRunes(w, width)
			lines = append(lines, head)
			w = tail
		}
		wl := utf8.RuneCountInString(w)
		if n > 0 && n+1+wl > width {
			flush()
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		flush()
	}
	return lines
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}

// truncateRunes keeps the first limit runes of s, appending "..." when anything was cut.
func truncateRunes(s string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	head, _ := splitRunes(s, limit)
	return head + "...", true
}
