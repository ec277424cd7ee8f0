package search

import (
	"context"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Searcher runs a backend search.
type Searcher interface {
	Search(ctx context.Context, q hadith.SearchQuery) (hadith.SearchOutcome, error)
}
