// Package catalog is a read-only, in-memory hadith catalog loaded from YAML
// fixtures. It backs the local stub server so the client can run offline.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/hadithview/internal/domain"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

type grade struct {
	en string
	bn *string
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	books       []hadith.Book
	bookByID    map[int]int // book id -> index in books
	chapters    map[int][]hadith.Chapter
	chapterByID map[int]hadith.Chapter
	hadiths     []hadith.Record // sorted by book, then hadith number
	hadithByID  map[int]int
	grades      map[int]grade
	expansions  map[string][]string
	docs        []document
}

func build(f fixtureFile) (*Catalog, error) {
	c := &Catalog{
		bookByID:    make(map[int]int, len(f.Books)),
		chapters:    make(map[int][]hadith.Chapter, len(f.Books)),
		chapterByID: make(map[int]hadith.Chapter),
		hadithByID:  make(map[int]int, len(f.Hadiths)),
		grades:      make(map[int]grade, len(f.Grades)),
		expansions:  make(map[string][]string, len(f.Expansions)),
	}

	var errs []error
	for _, g := range f.Grades {
		c.grades[g.ID] = grade{en: g.EnglishText, bn: g.BengaliText}
	}

	chapterBook := make(map[int]int)
	for _, fb := range f.Books {
		b := fb.Book
		if b.ID < 1 || b.EnglishTitle == "" {
			errs = append(errs, fmt.Errorf("book %d: id and en_title are required", b.ID))
			continue
		}
		if _, dup := c.bookByID[b.ID]; dup {
			errs = append(errs, fmt.Errorf("book %d: duplicate id", b.ID))
			continue
		}
		c.bookByID[b.ID] = len(c.books)
		c.books = append(c.books, b)

		for _, ch := range fb.Chapters {
			if _, dup := chapterBook[ch.ID]; dup {
				errs = append(errs, fmt.Errorf("chapter %d: duplicate id", ch.ID))
				continue
			}
			chapterBook[ch.ID] = b.ID
			c.chapters[b.ID] = append(c.chapters[b.ID], ch)
		}
	}

	for _, r := range f.Hadiths {
		switch {
		case r.ArabicText == "":
			errs = append(errs, fmt.Errorf("hadith %d: ar_text is required", r.ID))
			continue
		case r.ID < 1:
			errs = append(errs, fmt.Errorf("hadith %d: id must be positive", r.ID))
			continue
		}
		if _, ok := c.bookByID[r.BookID]; !ok {
			errs = append(errs, fmt.Errorf("hadith %d: unknown book %d", r.ID, r.BookID))
			continue
		}
		if owner, ok := chapterBook[r.ChapterID]; !ok || owner != r.BookID {
			errs = append(errs, fmt.Errorf("hadith %d: chapter %d is not in book %d", r.ID, r.ChapterID, r.BookID))
			continue
		}
		if _, dup := c.hadithByID[r.ID]; dup {
			errs = append(errs, fmt.Errorf("hadith %d: duplicate id", r.ID))
			continue
		}
		if r.GradeID != nil {
			g, ok := c.grades[*r.GradeID]
			if !ok {
				errs = append(errs, fmt.Errorf("hadith %d: unknown grade %d", r.ID, *r.GradeID))
				continue
			}
			text := g.en
			r.GradeText = &text
		}
		c.hadithByID[r.ID] = 0
		c.hadiths = append(c.hadiths, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	sort.SliceStable(c.hadiths, func(i, j int) bool {
		a, b := c.hadiths[i], c.hadiths[j]
		if a.BookID != b.BookID {
			return a.BookID < b.BookID
		}
		return a.Number < b.Number
	})
	sort.SliceStable(c.books, func(i, j int) bool { return c.books[i].ID < c.books[j].ID })
	for i, b := range c.books {
		c.bookByID[b.ID] = i
	}

	chapterCounts := make(map[int]int)
	for i, r := range c.hadiths {
		c.hadithByID[r.ID] = i
		c.books[c.bookByID[r.BookID]].HadithCount++
		chapterCounts[r.ChapterID]++
	}
	for bookID, chs := range c.chapters {
		for i := range chs {
			chs[i].HadithCount = chapterCounts[chs[i].ID]
			c.chapterByID[chs[i].ID] = chs[i]
		}
		sort.SliceStable(chs, func(i, j int) bool { return chs[i].OrderIndex < chs[j].OrderIndex })
		c.chapters[bookID] = chs
	}

	for term, alts := range f.Expansions {
		c.expansions[fold(term)] = alts
	}
	c.docs = c.index()
	return c, nil
}

// Count returns the number of hadiths.
func (c *Catalog) Count(_ context.Context) (int, error) {
	return len(c.hadiths), nil
}

// ListBooks returns every book ordered by id.
func (c *Catalog) ListBooks(_ context.Context) ([]hadith.Book, error) {
	out := make([]hadith.Book, len(c.books))
	copy(out, c.books)
	return out, nil
}

// GetBook returns one book or an error wrapping domain.ErrNotFound.
func (c *Catalog) GetBook(_ context.Context, id int) (hadith.Book, error) {
	i, ok := c.bookByID[id]
	if !ok {
		return hadith.Book{}, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return c.books[i], nil
}

// ListChapters returns the chapters of a book in order_index order.
// An unknown book yields an empty list.
func (c *Catalog) ListChapters(_ context.Context, bookID int) (hadith.ChapterList, error) {
	chs := make([]hadith.Chapter, len(c.chapters[bookID]))
	copy(chs, c.chapters[bookID])
	return hadith.ChapterList{BookID: bookID, Chapters: chs}, nil
}

// ListHadithsByBook pages through a book in hadith-number order.
// q.Page and q.PageSize must already be validated.
func (c *Catalog) ListHadithsByBook(
	_ context.Context, bookID int, q hadith.ListQuery,
) (hadith.Page[hadith.Summary], error) {
	var matched []hadith.Record
	for _, r := range c.hadiths {
		if r.BookID != bookID {
			continue
		}
		if q.ChapterID != 0 && r.ChapterID != q.ChapterID {
			continue
		}
		matched = append(matched, r)
	}

	start := min((q.Page-1)*q.PageSize, len(matched))
	end := min(start+q.PageSize, len(matched))

	results := make([]hadith.Summary, 0, end-start)
	for _, r := range matched[start:end] {
		results = append(results, hadith.Summary{Record: r})
	}
	return hadith.Page[hadith.Summary]{
		Results:  results,
		Total:    len(matched),
		Page:     q.Page,
		PageSize: q.PageSize,
		Pages:    hadith.PageCount(len(matched), q.PageSize),
	}, nil
}

// GetHadith returns the detail shape of one hadith or an error wrapping domain.ErrNotFound.
func (c *Catalog) GetHadith(_ context.Context, id int) (hadith.Detail, error) {
	i, ok := c.hadithByID[id]
	if !ok {
		return hadith.Detail{}, fmt.Errorf("hadith %d: %w", id, domain.ErrNotFound)
	}
	r := c.hadiths[i]
	b := c.books[c.bookByID[r.BookID]]
	return hadith.Detail{
		Record:       r,
		BookTitle:    b.EnglishTitle,
		BookSlug:     b.Slug,
		ChapterTitle: c.chapterByID[r.ChapterID].Title(hadith.LangEnglish),
	}, nil
}

func (c *Catalog) summary(r hadith.Record, score float64) hadith.Summary {
	b := c.books[c.bookByID[r.BookID]]
	s := hadith.Summary{
		Record:      r,
		BookTitle:   b.EnglishTitle,
		BookTitleBn: b.BengaliTitle,
		BookSlug:    b.Slug,
		Score:       &score,
	}
	if r.GradeID != nil {
		s.GradeTextBn = c.grades[*r.GradeID].bn
	}
	return s
}
