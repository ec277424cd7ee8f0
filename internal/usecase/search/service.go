// Package search drives the search view: one query in, one outcome out.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// MaxAlsoSearched caps the "also searched" hint.
const MaxAlsoSearched = 5

// Result is what the search view renders on success.
type Result struct {
	Outcome      hadith.SearchOutcome
	AlsoSearched []string // at most MaxAlsoSearched terms, empty when nothing was added
}

// Orchestrator owns the search view state.
type Orchestrator struct {
	api     Searcher
	machine *view.Machine[Result]
	logger  *zap.Logger

	language hadith.Lang
	bookID   int
	limit    int

	mu    sync.Mutex
	query hadith.SearchQuery
}

// New creates an Orchestrator in the Idle state.
func New(api Searcher, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		api:     api,
		machine: view.NewMachine[Result]("search", view.DescribeFailure("Search", ""), logger),
		logger:  logger,
	}
}

// WithDefaults sets the language, book filter and limit sent with every query.
// Zero values are not sent.
func (o *Orchestrator) WithDefaults(lang hadith.Lang, bookID, limit int) *Orchestrator {
	o.language = lang
	o.bookID = bookID
	o.limit = limit
	return o
}

// Submit triggers a search for text with the default filters.
// A blank query resets the view to Idle, supersedes any in-flight search and returns nil.
func (o *Orchestrator) Submit(text string) view.Fetch {
	return o.SubmitQuery(hadith.SearchQuery{
		Query:    text,
		Language: o.language,
		BookID:   o.bookID,
		Limit:    o.limit,
	})
}

// SubmitQuery triggers a search with explicit filters.
func (o *Orchestrator) SubmitQuery(q hadith.SearchQuery) view.Fetch {
	q = q.Normalized()

	o.mu.Lock()
	o.query = q
	o.mu.Unlock()

	if q.Query == "" {
		o.machine.Reset()
		return nil
	}

	o.logger.Debug("search triggered",
		zap.String("query", q.Query),
		zap.Int("book_id", q.BookID),
	)
	return o.machine.Trigger(func(ctx context.Context) (Result, error) {
		out, err := o.api.Search(ctx, q)
		if err != nil {
			return Result{}, fmt.Errorf("search %q: %w", q.Query, err)
		}
		return newResult(out), nil
	})
}

// SubmitURL triggers from a navigable location such as "/search?q=prayer&book=1&lang=en".
// Parameters absent from the URL fall back to the defaults.
func (o *Orchestrator) SubmitURL(raw string) (view.Fetch, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := u.Query()

	q := hadith.SearchQuery{
		Query:    params.Get("q"),
		Language: o.language,
		BookID:   o.bookID,
		Limit:    o.limit,
	}
	if v := params.Get("lang"); v != "" {
		lang, err := hadith.ParseLang(v)
		if err != nil {
			return nil, err
		}
		q.Language = lang
	}
	if v := params.Get("book"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid book %q", v)
		}
		q.BookID = id
	}
	return o.SubmitQuery(q), nil
}

// Run submits text and waits for the outcome. Convenient for one-shot callers.
func (o *Orchestrator) Run(ctx context.Context, text string) view.State[Result] {
	if f := o.Submit(text); f != nil {
		f(ctx)
	}
	return o.State()
}

// Query returns the last submitted (normalized) query.
func (o *Orchestrator) Query() hadith.SearchQuery {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.query
}

// State returns the current view state.
func (o *Orchestrator) State() view.State[Result] {
	return o.machine.State()
}

func newResult(out hadith.SearchOutcome) Result {
	extra := out.Expansion.Extra()
	if len(extra) > MaxAlsoSearched {
		extra = extra[:MaxAlsoSearched]
	}
	return Result{Outcome: out, AlsoSearched: extra}
}

// Hint formats the "also searched" line, or "" when there is nothing to show.
func (r Result) Hint() string {
	if len(r.AlsoSearched) == 0 {
		return ""
	}
	return "Also searched: " + strings.Join(r.AlsoSearched, ", ")
}

// CountLabel is "1 result" or "N results".
func (r Result) CountLabel() string {
	if r.Outcome.Count == 1 {
		return "1 result"
	}
	return strconv.Itoa(r.Outcome.Count) + " results"
}
