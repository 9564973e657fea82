package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameRunes = 255

// SanitizeFileName strips directories and control characters from a client-supplied file name.
func SanitizeFileName(name string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == ".." {
		return "", errors.New("invalid file name")
	}
	if r := []rune(s); len(r) > maxFileNameRunes {
		s = string(r[len(r)-maxFileNameRunes:])
	}
	return s, nil
}
