package catalog

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// maxFuzzyDistance bounds the edit distance of a fuzzy word match.
const maxFuzzyDistance = 3

// document is the search view of one hadith: folded tokens per language.
type document struct {
	pos   int // index into Catalog.hadiths
	words map[hadith.Lang][]string
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// tokenize splits folded text into words. Combining marks stay inside words
// so Arabic diacritics do not split tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Mn, r)
	})
}

func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (c *Catalog) index() []document {
	docs := make([]document, len(c.hadiths))
	for i, r := range c.hadiths {
		words := make(map[hadith.Lang][]string, 4)
		for _, l := range []hadith.Lang{hadith.LangEnglish, hadith.LangArabic, hadith.LangBengali, hadith.LangUrdu} {
			var parts []string
			if t := r.Text(l); t != nil {
				parts = append(parts, tokenize(*t)...)
			}
			if n := r.Narrator(l); n != nil {
				parts = append(parts, tokenize(*n)...)
			}
			words[l] = dedupe(parts)
		}
		docs[i] = document{pos: i, words: words}
	}
	return docs
}

// expand appends configured alternates of each term, keeping first occurrence order.
func (c *Catalog) expand(terms []string) []string {
	out := append([]string(nil), terms...)
	for _, t := range terms {
		for _, alt := range c.expansions[t] {
			out = append(out, tokenize(alt)...)
		}
	}
	return dedupe(out)
}

// candidates returns the documents eligible for q and, per document, the words to match.
func (c *Catalog) candidates(q hadith.SearchQuery) ([]document, [][]string) {
	var docs []document
	var words [][]string
	for _, d := range c.docs {
		if q.BookID != 0 && c.hadiths[d.pos].BookID != q.BookID {
			continue
		}
		var w []string
		if q.Language != "" {
			w = d.words[q.Language]
		} else {
			for _, ws := range d.words {
				w = append(w, ws...)
			}
		}
		docs = append(docs, d)
		words = append(words, w)
	}
	return docs, words
}

// rankKeyword orders documents by how many distinct terms they contain verbatim.
func rankKeyword(docs []document, words [][]string, terms []string) []int {
	type hit struct {
		pos     int
		matched int
	}
	var hits []hit
	for i, d := range docs {
		set := make(map[string]struct{}, len(words[i]))
		for _, w := range words[i] {
			set[w] = struct{}{}
		}
		n := 0
		for _, t := range terms {
			if _, ok := set[t]; ok {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, hit{pos: d.pos, matched: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].matched > hits[j].matched })

	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.pos
	}
	return out
}

// rankFuzzy orders documents by the smallest edit distance of any word
// that contains a term as a subsequence.
func rankFuzzy(docs []document, words [][]string, terms []string) []int {
	type hit struct {
		pos      int
		distance int
	}
	var hits []hit
	for i, d := range docs {
		best := -1
		for _, t := range terms {
			if utf8.RuneCountInString(t) < 2 {
				continue
			}
			for _, r := range fuzzy.RankFindNormalizedFold(t, words[i]) {
				if best < 0 || r.Distance < best {
					best = r.Distance
				}
			}
		}
		if best >= 0 && best <= maxFuzzyDistance {
			hits = append(hits, hit{pos: d.pos, distance: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.pos
	}
	return out
}

// Search ranks hadiths for q by fusing an exact keyword ranking over the
// expanded terms with a fuzzy ranking over the original terms.
func (c *Catalog) Search(_ context.Context, q hadith.SearchQuery) (hadith.SearchOutcome, error) {
	q = q.Normalized()
	limit := q.Limit
	if limit <= 0 {
		limit = hadith.DefaultLimit
	}
	lang := hadith.DetectLanguage(q.Query)

	original := dedupe(tokenize(q.Query))
	expanded := c.expand(original)

	docs, words := c.candidates(q)
	fused := fuseRRF(rankKeyword(docs, words, expanded), rankFuzzy(docs, words, original), limit)

	results := make([]hadith.Summary, len(fused))
	for i, f := range fused {
		results[i] = c.summary(c.hadiths[f.pos], f.score)
	}

	return hadith.SearchOutcome{
		Query:     q.Query,
		QueryLang: lang,
		Expansion: hadith.Expansion{Original: original, Expanded: expanded, Language: lang},
		Count:     len(results),
		Results:   results,
	}, nil
}
