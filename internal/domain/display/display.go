// Package display turns hadith records into display-ready text.
// Every function here is pure and total: bad input degrades to an empty result.
package display

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/kailas-cloud/hadithview/internal/domain/grade"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Rendered is the text chosen for display and its direction.
// Lang is empty when the record had no usable text.
type Rendered struct {
	Text string
	Lang hadith.Lang
	RTL  bool
}

// Text picks English when present and non-empty, otherwise Arabic.
// A record with neither is invalid and yields an empty left-to-right result.
func Text(r hadith.Record) Rendered {
	if r.EnglishText != nil && *r.EnglishText != "" {
		return Rendered{Text: *r.EnglishText, Lang: hadith.LangEnglish}
	}
	if r.ArabicText != "" {
		return Rendered{Text: r.ArabicText, Lang: hadith.LangArabic, RTL: true}
	}
	return Rendered{}
}

// TextFor picks the first non-empty body in lang's priority order.
func TextFor(r hadith.Record, lang hadith.Lang) Rendered {
	for _, l := range lang.Priority() {
		if t := r.Text(l); t != nil && *t != "" {
			return Rendered{Text: *t, Lang: l, RTL: l.RightToLeft()}
		}
	}
	return Rendered{}
}

// Truncate shortens text to at most limit grapheme clusters, trims trailing
// whitespace and appends Ellipsis. Text within the limit is returned as is.
// A limit <= 0 disables truncation.
func Truncate(text string, limit int) string {
	if limit <= 0 || uniseg.GraphemeClusterCount(text) <= limit {
		return text
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < limit && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace) + Ellipsis
}

// Formatted is everything a result row needs.
type Formatted struct {
	Rendered
	Full      string // untruncated text
	Truncated bool
	Grade     grade.Category
}

// Format applies text selection, truncation and grade classification to r.
// An empty lang uses the English-then-Arabic rule of Text.
func Format(r hadith.Record, lang hadith.Lang, limit int) Formatted {
	var rd Rendered
	if lang == "" {
		rd = Text(r)
	} else {
		rd = TextFor(r, lang)
	}
	full := rd.Text
	rd.Text = Truncate(full, limit)
	return Formatted{
		Rendered:  rd,
		Full:      full,
		Truncated: rd.Text != full,
		Grade:     grade.Classify(r.GradeText),
	}
}

// GradeLabel returns the grade label to show for lang: the Bengali label
// when lang is Bengali and one is present, otherwise the English one.
func GradeLabel(s hadith.Summary, lang hadith.Lang) string {
	if lang == hadith.LangBengali && s.GradeTextBn != nil && *s.GradeTextBn != "" {
		return *s.GradeTextBn
	}
	if s.GradeText != nil && *s.GradeText != "" {
		return *s.GradeText
	}
	return grade.Classify(s.GradeText).Label()
}

// BookTitle returns the denormalized book title to show for lang.
func BookTitle(s hadith.Summary, lang hadith.Lang) string {
	if lang == hadith.LangBengali && s.BookTitleBn != nil && *s.BookTitleBn != "" {
		return *s.BookTitleBn
	}
	return s.BookTitle
}
