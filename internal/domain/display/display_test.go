package display

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"

	"github.com/kailas-cloud/hadithview/internal/domain/grade"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

func ptr(s string) *string { return &s }

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		record   hadith.Record
		wantText string
		wantRTL  bool
	}{
		{"english", hadith.Record{EnglishText: ptr("Actions are by intentions"), ArabicText: "إنما الأعمال بالنيات"}, "Actions are by intentions", false},
		{"empty english", hadith.Record{EnglishText: ptr(""), ArabicText: "إنما الأعمال بالنيات"}, "إنما الأعمال بالنيات", true},
		{"nil english", hadith.Record{ArabicText: "الصلاة"}, "الصلاة", true},
		{"invalid", hadith.Record{BengaliText: ptr("নামাজ")}, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.record)
			if got.Text != tc.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tc.wantText)
			}
			if got.RTL != tc.wantRTL {
				t.Errorf("RTL = %v, want %v", got.RTL, tc.wantRTL)
			}
		})
	}
}

func TestTextFor(t *testing.T) {
	r := hadith.Record{
		ArabicText:  "نص",
		EnglishText: ptr("text"),
		UrduText:    ptr("متن"),
	}

	tests := []struct {
		lang     hadith.Lang
		wantLang hadith.Lang
		wantRTL  bool
	}{
		{hadith.LangEnglish, hadith.LangEnglish, false},
		{hadith.LangBengali, hadith.LangEnglish, false},
		{hadith.LangArabic, hadith.LangArabic, true},
		{hadith.LangUrdu, hadith.LangUrdu, true},
	}
	for _, tc := range tests {
		got := TextFor(r, tc.lang)
		if got.Lang != tc.wantLang || got.RTL != tc.wantRTL {
			t.Errorf("TextFor(%s) = %s/%v, want %s/%v", tc.lang, got.Lang, got.RTL, tc.wantLang, tc.wantRTL)
		}
	}

	if got := TextFor(hadith.Record{}, hadith.LangEnglish); got != (Rendered{}) {
		t.Errorf("TextFor(empty) = %+v, want zero", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"shorter", "hello", 10, "hello"},
		{"equal", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello…"},
		{"trailing space trimmed", "hello world", 6, "hello…"},
		{"no limit", "hello world", 0, "hello world"},
		{"negative limit", "hello", -1, "hello"},
		{"arabic", "إنما الأعمال بالنيات", 4, "إنما…"},
		// флаг из двух рун не разрезается пополам
		{"flag grapheme", "ab🇸🇦cd", 3, "ab🇸🇦…"},
		{"combining mark", "e\u0301e\u0301e\u0301", 2, "e\u0301e\u0301…"},
		{"empty", "", 3, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.text, tc.limit); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.text, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncate_Properties(t *testing.T) {
	texts := []string{
		"The Prophet said: the strong man is not the one who wrestles",
		"قال رسول الله صلى الله عليه وسلم",
		"রাসূলুল্লাহ সাল্লাল্লাহু আলাইহি ওয়াসাল্লাম বলেছেন",
		"     ",
		"👨‍👩‍👧‍👦👨‍👩‍👧‍👦👨‍👩‍👧‍👦",
	}

	for _, text := range texts {
		for limit := 1; limit <= 12; limit++ {
			once := Truncate(text, limit)
			if twice := Truncate(once, limit); twice != once {
				t.Errorf("not idempotent for %q/%d: %q -> %q", text, limit, once, twice)
			}
			if n := uniseg.GraphemeClusterCount(once); n > limit+1 {
				t.Errorf("Truncate(%q, %d) has %d graphemes", text, limit, n)
			}
			if once != text && !strings.HasSuffix(once, Ellipsis) {
				t.Errorf("Truncate(%q, %d) = %q lacks ellipsis", text, limit, once)
			}
		}
	}
}

func TestFormat(t *testing.T) {
	r := hadith.Record{
		ArabicText:  "الصلاة نور",
		EnglishText: ptr("Prayer is light and charity is proof"),
		GradeText:   ptr("Sahih"),
	}

	f := Format(r, "", 10)
	if f.Text != "Prayer is…" {
		t.Errorf("Text = %q", f.Text)
	}
	if !f.Truncated {
		t.Error("expected Truncated")
	}
	if f.Full != *r.EnglishText {
		t.Errorf("Full = %q", f.Full)
	}
	if f.Grade != grade.Sahih {
		t.Errorf("Grade = %q, want sahih", f.Grade)
	}

	f = Format(r, hadith.LangArabic, 0)
	if !f.RTL || f.Text != "الصلاة نور" || f.Truncated {
		t.Errorf("arabic format = %+v", f)
	}
}

func TestLocalizedLabels(t *testing.T) {
	s := hadith.Summary{
		Record:      hadith.Record{GradeText: ptr("Sahih")},
		BookTitle:   "Sahih al-Bukhari",
		BookTitleBn: ptr("সহীহ বুখারী"),
		GradeTextBn: ptr("সহীহ"),
	}

	if got := BookTitle(s, hadith.LangBengali); got != "সহীহ বুখারী" {
		t.Errorf("BookTitle(bn) = %q", got)
	}
	if got := BookTitle(s, hadith.LangEnglish); got != "Sahih al-Bukhari" {
		t.Errorf("BookTitle(en) = %q", got)
	}
	if got := GradeLabel(s, hadith.LangBengali); got != "সহীহ" {
		t.Errorf("GradeLabel(bn) = %q", got)
	}
	if got := GradeLabel(hadith.Summary{}, hadith.LangEnglish); got != "Ungraded" {
		t.Errorf("GradeLabel(none) = %q", got)
	}
}
