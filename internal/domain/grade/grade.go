// Package grade classifies free-text authenticity labels into a fixed set of categories.
package grade

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is an authenticity class.
type Category string

// Categories in classification priority order, Unknown last.
const (
	Sahih      Category = "sahih"
	Hasan      Category = "hasan"
	Daif       Category = "daif"
	Fabricated Category = "fabricated"
	Unknown    Category = "unknown"
)

type rule struct {
	keyword  string
	category Category
}

// rules are evaluated top to bottom and the first containment match wins,
// so "Hasan Sahih" is Sahih and "Sahih (weak chain)" is Sahih too.
var rules = []rule{
	{"sahih", Sahih},
	{"hasan", Hasan},
	{"da'if", Daif},
	{"da’if", Daif},
	{"daif", Daif},
	{"weak", Daif},
	{"mawdu", Fabricated},
	{"maudu", Fabricated},
	{"fabricated", Fabricated},
}

// Classify maps a nullable grade label onto a Category. It never fails.
func Classify(label *string) Category {
	if label == nil {
		return Unknown
	}
	folded := cases.Fold().String(*label)
	for _, r := range rules {
		if strings.Contains(folded, r.keyword) {
			return r.category
		}
	}
	return Unknown
}

// Label is the short human-readable name of c.
func (c Category) Label() string {
	switch c {
	case Sahih:
		return "Sahih"
	case Hasan:
		return "Hasan"
	case Daif:
		return "Da'if"
	case Fabricated:
		return "Fabricated"
	}
	return "Ungraded"
}

// Style is the presentation triple of a category, as hex colors.
type Style struct {
	Fill       string
	Foreground string
	Indicator  string
}

var styles = map[Category]Style{
	Sahih:      {Fill: "#DCFCE7", Foreground: "#166534", Indicator: "#22C55E"},
	Hasan:      {Fill: "#DBEAFE", Foreground: "#1E40AF", Indicator: "#3B82F6"},
	Daif:       {Fill: "#FEF3C7", Foreground: "#92400E", Indicator: "#F59E0B"},
	Fabricated: {Fill: "#FEE2E2", Foreground: "#991B1B", Indicator: "#EF4444"},
	Unknown:    {Fill: "#F3F4F6", Foreground: "#374151", Indicator: "#9CA3AF"},
}

// StyleFor returns the style of c. Unrecognized categories get the Unknown style.
func StyleFor(c Category) Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return styles[Unknown]
}
