package browse

import (
	"context"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Catalog reads books and their hadiths from the backend.
type Catalog interface {
	GetBook(ctx context.Context, id int) (hadith.Book, error)
	ListChapters(ctx context.Context, bookID int) (hadith.ChapterList, error)
	ListHadithsByBook(ctx context.Context, bookID int, q hadith.ListQuery) (hadith.Page[hadith.Summary], error)
}
