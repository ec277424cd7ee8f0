// Package browse drives the browse-by-book view.
//
// The view holds three independent fetches: book metadata and the chapter
// list (triggered by the book id) and the hadith list (triggered by book id,
// page and chapter filter). A failure in one never blocks the others.
package browse

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/domain/pagination"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Position is where the view currently points. Chapter 0 means all chapters.
type Position struct {
	BookID    int
	Page      int
	ChapterID int
}

// Orchestrator owns the browse view state.
type Orchestrator struct {
	api      Catalog
	logger   *zap.Logger
	pageSize int

	book     *view.Machine[hadith.Book]
	chapters *view.Machine[hadith.ChapterList]
	hadiths  *view.Machine[hadith.Page[hadith.Summary]]

	mu  sync.Mutex
	pos Position

	// page count of the current book and chapter filter, from the last list
	// response; pagesKnown is false until one arrives
	pages      int
	pagesKnown bool
	listEpoch  int
}

// New creates an Orchestrator with nothing opened.
func New(api Catalog, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		api:      api,
		logger:   logger,
		pageSize: DefaultPageSize,
		book: view.NewMachine[hadith.Book]("browse.book",
			view.DescribeFailure("Loading book", "Book not found."), logger),
		chapters: view.NewMachine[hadith.ChapterList]("browse.chapters",
			view.DescribeFailure("Loading chapters", ""), logger),
		hadiths: view.NewMachine[hadith.Page[hadith.Summary]]("browse.hadiths",
			view.DescribeFailure("Loading hadiths", ""), logger),
	}
}

// WithPageSize sets the page size. Values outside 1..100 keep the default.
func (o *Orchestrator) WithPageSize(n int) *Orchestrator {
	if n >= 1 && n <= hadith.MaxLimit {
		o.pageSize = n
	}
	return o
}

// Open points the view at a book, resetting to page 1 of all chapters.
// Re-opening the current book is a no-op. An id < 1 clears the view.
func (o *Orchestrator) Open(bookID int) []view.Fetch {
	o.mu.Lock()
	defer o.mu.Unlock()

	if bookID < 1 {
		o.pos = Position{}
		o.forgetPages()
		o.book.Reset()
		o.chapters.Reset()
		o.hadiths.Reset()
		return nil
	}
	if bookID == o.pos.BookID && o.book.State().Status != view.Idle {
		return nil
	}

	o.pos = Position{BookID: bookID, Page: 1}
	o.forgetPages()
	o.logger.Debug("browse book opened", zap.Int("book_id", bookID))
	return []view.Fetch{o.triggerBook(), o.triggerChapters(), o.triggerList()}
}

// Reload re-fetches everything for the current book, e.g. after a failure.
func (o *Orchestrator) Reload() []view.Fetch {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pos.BookID == 0 {
		return nil
	}
	return []view.Fetch{o.triggerBook(), o.triggerChapters(), o.triggerList()}
}

// GoToPage moves the hadith list to page. Once the page count is known the
// target is clamped into range, also while a later page is still loading or
// after it failed. Asking for the page already shown or loading is a no-op.
func (o *Orchestrator) GoToPage(page int) view.Fetch {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pos.BookID == 0 {
		return nil
	}

	list := o.hadiths.State()
	target := max(page, 1)
	if o.pagesKnown {
		target = pagination.Clamp(page, o.pages)
	}
	if target == o.pos.Page && (list.Status == view.Success || list.Status == view.Loading) {
		return nil
	}

	o.pos.Page = target
	return o.triggerList()
}

// Next moves one page forward when the paginator allows it.
func (o *Orchestrator) Next() view.Fetch {
	nav, ok := o.nav()
	if !ok || !nav.Next.Enabled {
		return nil
	}
	return o.GoToPage(nav.Next.Page)
}

// Prev moves one page back when the paginator allows it.
func (o *Orchestrator) Prev() view.Fetch {
	nav, ok := o.nav()
	if !ok || !nav.Prev.Enabled {
		return nil
	}
	return o.GoToPage(nav.Prev.Page)
}

// FilterChapter restricts the list to one chapter (0 = all) and returns to page 1.
func (o *Orchestrator) FilterChapter(chapterID int) view.Fetch {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pos.BookID == 0 || chapterID < 0 || chapterID == o.pos.ChapterID {
		return nil
	}
	o.pos.ChapterID = chapterID
	o.pos.Page = 1
	o.forgetPages()
	return o.triggerList()
}

// Position returns the current book, page and chapter filter.
func (o *Orchestrator) Position() Position {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pos
}

// Book returns the metadata state.
func (o *Orchestrator) Book() view.State[hadith.Book] { return o.book.State() }

// Chapters returns the chapter list state.
func (o *Orchestrator) Chapters() view.State[hadith.ChapterList] { return o.chapters.State() }

// Hadiths returns the hadith list state.
func (o *Orchestrator) Hadiths() view.State[hadith.Page[hadith.Summary]] { return o.hadiths.State() }

// Caption is "Showing 21-40 of 45" for a loaded non-empty page, otherwise "".
func (o *Orchestrator) Caption() string {
	s := o.hadiths.State()
	if s.Status != view.Success {
		return ""
	}
	p := s.Value
	from, to := pagination.Range(p.Page, p.PageSize, p.Total)
	if from == 0 {
		return ""
	}
	return fmt.Sprintf("Showing %d-%d of %d", from, to, p.Total)
}

func (o *Orchestrator) nav() (pagination.Nav, bool) {
	s := o.hadiths.State()
	if s.Status != view.Success {
		return pagination.Nav{}, false
	}
	return pagination.Controls(s.Value.Page, s.Value.Pages), true
}

// forgetPages drops the page count when the book or chapter filter changes.
// Responses issued before that no longer update it. Called with o.mu held.
func (o *Orchestrator) forgetPages() {
	o.pages, o.pagesKnown = 0, false
	o.listEpoch++
}

func (o *Orchestrator) rememberPages(epoch, pages int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if epoch == o.listEpoch {
		o.pages, o.pagesKnown = pages, true
	}
}

// trigger* must be called with o.mu held so the captured position is consistent.

func (o *Orchestrator) triggerBook() view.Fetch {
	id := o.pos.BookID
	return o.book.Trigger(func(ctx context.Context) (hadith.Book, error) {
		b, err := o.api.GetBook(ctx, id)
		if err != nil {
			return hadith.Book{}, fmt.Errorf("book %d: %w", id, err)
		}
		return b, nil
	})
}

func (o *Orchestrator) triggerChapters() view.Fetch {
	id := o.pos.BookID
	return o.chapters.Trigger(func(ctx context.Context) (hadith.ChapterList, error) {
		cl, err := o.api.ListChapters(ctx, id)
		if err != nil {
			return hadith.ChapterList{}, fmt.Errorf("chapters of book %d: %w", id, err)
		}
		return cl, nil
	})
}

func (o *Orchestrator) triggerList() view.Fetch {
	id, epoch := o.pos.BookID, o.listEpoch
	q := hadith.ListQuery{ChapterID: o.pos.ChapterID, Page: o.pos.Page, PageSize: o.pageSize}
	o.logger.Debug("browse list triggered",
		zap.Int("book_id", id),
		zap.Int("page", q.Page),
		zap.Int("chapter_id", q.ChapterID),
	)
	return o.hadiths.Trigger(func(ctx context.Context) (hadith.Page[hadith.Summary], error) {
		p, err := o.api.ListHadithsByBook(ctx, id, q)
		if err != nil {
			return hadith.Page[hadith.Summary]{}, fmt.Errorf("hadiths of book %d page %d: %w", id, q.Page, err)
		}
		o.rememberPages(epoch, p.Pages)
		return p, nil
	})
}
