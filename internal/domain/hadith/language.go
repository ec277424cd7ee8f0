package hadith

import "fmt"

// Lang is a content language tag.
type Lang string

// Supported languages.
const (
	LangEnglish Lang = "en"
	LangArabic  Lang = "ar"
	LangBengali Lang = "bn"
	LangUrdu    Lang = "ur"
)

var priorities = map[Lang][]Lang{
	LangEnglish: {LangEnglish, LangArabic, LangBengali, LangUrdu},
	LangBengali: {LangBengali, LangEnglish, LangArabic, LangUrdu},
	LangArabic:  {LangArabic, LangEnglish, LangBengali, LangUrdu},
	LangUrdu:    {LangUrdu, LangEnglish, LangArabic, LangBengali},
}

// ParseLang validates a language tag. An empty string is allowed and means "unset".
func ParseLang(s string) (Lang, error) {
	switch l := Lang(s); l {
	case "", LangEnglish, LangArabic, LangBengali, LangUrdu:
		return l, nil
	}
	return "", fmt.Errorf("unsupported language %q: want one of en, ar, bn, ur", s)
}

// Priority is the fallback order used when picking text for display in l.
// Unknown languages use the English order.
func (l Lang) Priority() []Lang {
	if p, ok := priorities[l]; ok {
		return p
	}
	return priorities[LangEnglish]
}

// RightToLeft reports whether l is written right to left.
func (l Lang) RightToLeft() bool {
	return l == LangArabic || l == LangUrdu
}

func inArabicBlock(r rune) bool  { return r >= 0x0600 && r <= 0x06FF }
func inBengaliBlock(r rune) bool { return r >= 0x0980 && r <= 0x09FF }

// DetectLanguage guesses the query language from its script.
// Any Bengali character wins, then any Arabic-block character, otherwise English.
// Urdu shares the Arabic block and is reported as Arabic.
func DetectLanguage(text string) Lang {
	arabic := false
	for _, r := range text {
		if inBengaliBlock(r) {
			return LangBengali
		}
		if inArabicBlock(r) {
			arabic = true
		}
	}
	if arabic {
		return LangArabic
	}
	return LangEnglish
}
