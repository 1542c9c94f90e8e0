package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var vowelY = regexp.MustCompile(`[aeiou]y$`)

// Pluralize returns the English plural of an instrument name for count > 1.
func Pluralize(word string, count int) string {
	if count <= 1 {
		return word
	}

	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "o"):
		return word + "s"
	case strings.HasSuffix(lower, "ss"):
		return word + "es"
	case strings.HasSuffix(lower, "s"):
		return word
	case strings.HasSuffix(lower, "y") && !vowelY.MatchString(lower):
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}

// Join joins the non-empty parts with single spaces.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// InstrumentItem is one resolved instrumentation entry.
type InstrumentItem struct {
	Quantity int    `json:"quantity,omitempty"`
	Name     string `json:"name"`
}

// Instrumentation is the instrumentation of a work as displayed.
type Instrumentation struct {
	UseAbbreviated bool
	Abbreviated    string
	Items          []InstrumentItem
}

// FormatInstrumentation renders instrumentation as "2 violins, cello". A set
// abbreviated string wins over the item list. Items without a name are
// skipped; an empty list yields "".
func FormatInstrumentation(in Instrumentation) string {
	if in.UseAbbreviated && in.Abbreviated != "" {
		return in.Abbreviated
	}

	names := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Name == "" {
			continue
		}
		if item.Quantity > 1 {
			names = append(names, fmt.Sprintf("%d %s", item.Quantity, Pluralize(item.Name, item.Quantity)))
			continue
		}
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
