// Package hadith holds the value types exchanged with the hadith search backend.
//
// All values are decoded from backend responses and never mutated afterwards:
// a new fetch produces a new value that replaces the old one wholesale.
package hadith

import "strings"

// Record is the part shared by every hadith shape (list item, search hit, detail).
// Arabic text is always present; every other language field is optional.
type Record struct {
	ID              int     `json:"hadith_id" yaml:"id"`
	BookID          int     `json:"book_id" yaml:"book_id"`
	ChapterID       int     `json:"chapter_id" yaml:"chapter_id"`
	Number          int     `json:"hadith_number" yaml:"number"`
	GradeID         *int    `json:"grade_id" yaml:"grade_id"`
	ArabicText      string  `json:"ar_text" yaml:"ar_text"`
	EnglishText     *string `json:"en_text" yaml:"en_text"`
	BengaliText     *string `json:"bn_text" yaml:"bn_text"`
	UrduText        *string `json:"ur_text" yaml:"ur_text"`
	ArabicNarrator  *string `json:"ar_narrator" yaml:"ar_narrator"`
	EnglishNarrator *string `json:"en_narrator" yaml:"en_narrator"`
	BengaliNarrator *string `json:"bn_narrator" yaml:"bn_narrator"`
	UrduNarrator    *string `json:"ur_narrator" yaml:"ur_narrator"`
	GradeText       *string `json:"grade_text" yaml:"grade_text"`
}

// Text returns the body for lang, or nil when the record has none.
func (r Record) Text(lang Lang) *string {
	switch lang {
	case LangArabic:
		if r.ArabicText == "" {
			return nil
		}
		return &r.ArabicText
	case LangEnglish:
		return r.EnglishText
	case LangBengali:
		return r.BengaliText
	case LangUrdu:
		return r.UrduText
	}
	return nil
}

// Narrator returns the narrator chain for lang, or nil.
func (r Record) Narrator(lang Lang) *string {
	switch lang {
	case LangArabic:
		return r.ArabicNarrator
	case LangEnglish:
		return r.EnglishNarrator
	case LangBengali:
		return r.BengaliNarrator
	case LangUrdu:
		return r.UrduNarrator
	}
	return nil
}

// Summary is the list shape: a search hit or a browse item.
// Score is set only on search results; browse results carry no book fields.
type Summary struct {
	Record
	BookTitle   string   `json:"book_title,omitempty"`
	BookTitleBn *string  `json:"book_title_bn,omitempty"`
	BookSlug    string   `json:"book_slug,omitempty"`
	GradeTextBn *string  `json:"grade_text_bn,omitempty"`
	Score       *float64 `json:"score,omitempty"`
}

// Detail is the single-item shape returned by GET /hadiths/{id}.
type Detail struct {
	Record
	BookTitle    string `json:"book_title"`
	BookSlug     string `json:"book_slug"`
	ChapterTitle string `json:"chapter_title"`
}

// Book is a hadith collection.
type Book struct {
	ID           int     `json:"book_id" yaml:"id"`
	Slug         string  `json:"slug" yaml:"slug"`
	EnglishTitle string  `json:"en_title" yaml:"en_title"`
	ArabicTitle  *string `json:"ar_title" yaml:"ar_title"`
	BengaliTitle *string `json:"bn_title" yaml:"bn_title"`
	UrduTitle    *string `json:"ur_title" yaml:"ur_title"`
	Description  *string `json:"description" yaml:"description"`
	HadithCount  int     `json:"hadith_count" yaml:"-"`
}

// Title returns the book title in lang, falling back to English.
func (b Book) Title(lang Lang) string {
	var t *string
	switch lang {
	case LangArabic:
		t = b.ArabicTitle
	case LangBengali:
		t = b.BengaliTitle
	case LangUrdu:
		t = b.UrduTitle
	}
	if t != nil && *t != "" {
		return *t
	}
	return b.EnglishTitle
}

// Chapter is a section of a book. OrderIndex defines display order and may have gaps.
type Chapter struct {
	ID           int     `json:"chapter_id" yaml:"id"`
	OrderIndex   int     `json:"order_index" yaml:"order_index"`
	EnglishTitle *string `json:"en_title" yaml:"en_title"`
	ArabicTitle  *string `json:"ar_title" yaml:"ar_title"`
	BengaliTitle *string `json:"bn_title" yaml:"bn_title"`
	UrduTitle    *string `json:"ur_title" yaml:"ur_title"`
	HadithCount  int     `json:"hadith_count" yaml:"-"`
}

// Title returns the first non-empty chapter title, preferring lang.
func (c Chapter) Title(lang Lang) string {
	byLang := map[Lang]*string{
		LangEnglish: c.EnglishTitle,
		LangArabic:  c.ArabicTitle,
		LangBengali: c.BengaliTitle,
		LangUrdu:    c.UrduTitle,
	}
	for _, l := range lang.Priority() {
		if t := byLang[l]; t != nil && *t != "" {
			return *t
		}
	}
	return ""
}

// ChapterList is the response of GET /books/{id}/chapters.
type ChapterList struct {
	BookID   int       `json:"book_id"`
	Chapters []Chapter `json:"chapters"`
}

// Page is one page of a paginated listing. Page is 1-based.
type Page[T any] struct {
	Results  []T `json:"results"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"per_page"`
	Pages    int `json:"pages"`
}

// PageCount returns ceil(total/pageSize), or 0 when there is nothing to page.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Expansion describes how the backend widened the query.
type Expansion struct {
	Original []string `json:"original"`
	Expanded []string `json:"expanded"`
	Language Lang     `json:"language"`
}

// Extra returns the expanded terms missing from the original terms,
// in expanded order and without duplicates. The comparison is exact.
func (e Expansion) Extra() []string {
	seen := make(map[string]struct{}, len(e.Original)+len(e.Expanded))
	for _, t := range e.Original {
		seen[t] = struct{}{}
	}
	var out []string
	for _, t := range e.Expanded {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SearchOutcome is the response of POST /search. Results are in backend order.
type SearchOutcome struct {
	Query     string    `json:"query"`
	QueryLang Lang      `json:"query_lang"`
	Expansion Expansion `json:"expansion"`
	Count     int       `json:"count"`
	Results   []Summary `json:"results"`
}

// Search body limits enforced by the backend.
const (
	MinQueryLength = 2
	MaxQueryLength = 500
	DefaultLimit   = 20
	MaxLimit       = 100
)

// SearchQuery is the body of POST /search. Zero values are omitted.
type SearchQuery struct {
	Query    string `json:"query"`
	Language Lang   `json:"lang,omitempty"`
	BookID   int    `json:"book_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Normalized trims the query text.
func (q SearchQuery) Normalized() SearchQuery {
	q.Query = strings.TrimSpace(q.Query)
	return q
}

// ListQuery holds the optional parameters of GET /books/{id}/hadiths.
// Zero fields are not sent.
type ListQuery struct {
	ChapterID int
	Page      int
	PageSize  int
}

// Health is the response of GET /health.
type Health struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	TotalHadiths int    `json:"total_hadiths"`
	Error        string `json:"error,omitempty"`
}
