package chi

import (
	"context"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Catalog is the read-only data source behind the stub backend.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	ListBooks(ctx context.Context) ([]hadith.Book, error)
	GetBook(ctx context.Context, id int) (hadith.Book, error)
	ListChapters(ctx context.Context, bookID int) (hadith.ChapterList, error)
	ListHadithsByBook(ctx context.Context, bookID int, q hadith.ListQuery) (hadith.Page[hadith.Summary], error)
	GetHadith(ctx context.Context, id int) (hadith.Detail, error)
	Search(ctx context.Context, q hadith.SearchQuery) (hadith.SearchOutcome, error)
}
