package repair

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTitleLength is the shortest normalized title that may be matched.
const minTitleLength = 3

// punctuation is replaced by spaces. Typographic quotes are not in the set,
// so "Don’t" and "Don't" normalize differently.
const punctuation = ".,;:!?()[]{}\"'—–-"

// WorkTitle is the part of a work the matcher looks at.
type WorkTitle struct {
	ID    string
	Title string
}

// NormalizeText lowercases text, turns punctuation into spaces and collapses
// runs of whitespace.
func NormalizeText(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, text)

	return strings.Join(strings.Fields(mapped), " ")
}

// FindWorkReferences returns the ids of the works whose normalized title
// occurs in the normalized content, in the order the works are given.
func FindWorkReferences(content string, works []WorkTitle) []string {
	normalized := NormalizeText(content)

	var ids []string
	for _, work := range works {
		title := NormalizeText(work.Title)
		if utf8.RuneCountInString(title) < minTitleLength {
			continue
		}
		if strings.Contains(normalized, title) {
			ids = append(ids, work.ID)
		}
	}
	return ids
}
