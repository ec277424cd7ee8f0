package hadith

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExpansion_Extra(t *testing.T) {
	tests := []struct {
		name     string
		original []string
		expanded []string
		want     []string
	}{
		{"grows", []string{"prayer"}, []string{"prayer", "salah", "salat"}, []string{"salah", "salat"}},
		{"same set", []string{"a", "b"}, []string{"b", "a"}, nil},
		// замена без роста длины всё равно даёт подсказку
		{"substitution without growth", []string{"namaz"}, []string{"salah"}, []string{"salah"}},
		{"duplicates collapsed", []string{"x"}, []string{"x", "y", "y", "z"}, []string{"y", "z"}},
		{"empty", nil, nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Expansion{Original: tc.original, Expanded: tc.expanded}.Extra()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Extra() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{45, 20, 3},
		{40, 20, 2},
		{0, 20, 0},
		{1, 50, 1},
		{10, 0, 0},
	}
	for _, tc := range tests {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"prayer", LangEnglish},
		{"", LangEnglish},
		{"الصلاة", LangArabic},
		{"নামাজ", LangBengali},
		{"prayer الصلاة", LangArabic},
		{"الصلاة নামাজ", LangBengali},
	}
	for _, tc := range tests {
		if got := DetectLanguage(tc.in); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseLang(t *testing.T) {
	for _, ok := range []string{"", "en", "ar", "bn", "ur"} {
		if _, err := ParseLang(ok); err != nil {
			t.Errorf("ParseLang(%q) unexpected error: %v", ok, err)
		}
	}
	if _, err := ParseLang("fr"); err == nil {
		t.Error("ParseLang(fr) expected error")
	}
}

func TestSummary_DecodeSearchHit(t *testing.T) {
	body := `{
		"hadith_id": 7, "book_id": 1, "chapter_id": 2, "hadith_number": 8,
		"grade_id": null, "en_text": "Prayer is light", "ar_text": "الصلاة نور",
		"bn_text": null, "ur_text": null, "en_narrator": "Abu Malik",
		"ar_narrator": null, "bn_narrator": null,
		"book_title": "Sahih Muslim", "book_title_bn": null, "book_slug": "muslim",
		"grade_text": "Sahih", "grade_text_bn": null, "score": 0.82
	}`

	var s Summary
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.ID != 7 || s.Number != 8 {
		t.Errorf("ids = %d/%d, want 7/8", s.ID, s.Number)
	}
	if s.EnglishText == nil || *s.EnglishText != "Prayer is light" {
		t.Errorf("en_text = %v", s.EnglishText)
	}
	if s.Score == nil || *s.Score != 0.82 {
		t.Errorf("score = %v, want 0.82", s.Score)
	}
	if s.GradeID != nil {
		t.Errorf("grade_id = %v, want nil", *s.GradeID)
	}
}

func TestSummary_BrowseItemHasNoScore(t *testing.T) {
	var s Summary
	if err := json.Unmarshal([]byte(`{"hadith_id": 1, "ar_text": "x"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Score != nil {
		t.Errorf("score = %v, want nil", *s.Score)
	}
}

func TestChapter_TitleFallback(t *testing.T) {
	ar := "كتاب الصلاة"
	en := "Prayer"
	c := Chapter{ArabicTitle: &ar}
	if got := c.Title(LangEnglish); got != ar {
		t.Errorf("Title(en) = %q, want arabic fallback", got)
	}
	c.EnglishTitle = &en
	if got := c.Title(LangArabic); got != ar {
		t.Errorf("Title(ar) = %q, want %q", got, ar)
	}
	if got := (Chapter{}).Title(LangEnglish); got != "" {
		t.Errorf("empty chapter title = %q", got)
	}
}

func TestBook_Title(t *testing.T) {
	bn := "সহীহ বুখারী"
	b := Book{EnglishTitle: "Sahih al-Bukhari", BengaliTitle: &bn}
	if got := b.Title(LangBengali); got != bn {
		t.Errorf("Title(bn) = %q, want %q", got, bn)
	}
	if got := b.Title(LangUrdu); got != "Sahih al-Bukhari" {
		t.Errorf("Title(ur) = %q, want english fallback", got)
	}
}

func TestValidate(t *testing.T) {
	ok := Summary{Record: Record{ID: 1, ArabicText: "أ"}}
	bad := Summary{Record: Record{ArabicText: "أ"}}

	tests := []struct {
		name    string
		v       interface{ Validate() error }
		wantErr bool
	}{
		{"record", Record{ID: 3}, false},
		{"record zero id", Record{}, true},
		{"book", Book{ID: 1, EnglishTitle: "B"}, false},
		{"book no title", Book{ID: 1}, true},
		{"chapters", ChapterList{BookID: 1, Chapters: []Chapter{{ID: 101}}}, false},
		{"chapters zero id", ChapterList{Chapters: []Chapter{{ID: 101}, {}}}, true},
		{"page", Page[Summary]{Results: []Summary{ok}, Total: 1, Page: 1, Pages: 1}, false},
		{"page empty", Page[Summary]{Results: []Summary{}}, false},
		{"page bad item", Page[Summary]{Results: []Summary{ok, bad}, Total: 2, Page: 1, Pages: 1}, true},
		{"page negative", Page[Summary]{Total: -1}, true},
		{"outcome", SearchOutcome{Results: []Summary{ok}}, false},
		{"outcome bad hit", SearchOutcome{Results: []Summary{bad}}, true},
	}
	for _, tc := range tests {
		if err := tc.v.Validate(); (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}
