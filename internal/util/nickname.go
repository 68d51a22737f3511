package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Words case-folds s and splits it on whitespace, trimming punctuation around each word.
func Words(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, field := range strings.Fields(folder.String(s)) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			words[word] = struct{}{}
		}
	}
	return words
}

// SharesWord reports whether nickname and teamName have at least one word in common.
func SharesWord(nickname string, teamName string) bool {
	teamWords := Words(teamName)
	for word := range Words(nickname) {
		if _, ok := teamWords[word]; ok {
			return true
		}
	}
	return false
}

func SameNickname(a string, b string) bool {
	return a != "" && b != "" && folder.String(a) == folder.String(b)
}

// Truncate cuts s to at most limit characters.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func DefaultNickname(username string, teamName string, limit int) string {
	return Truncate(username+" | "+teamName, limit)
}
