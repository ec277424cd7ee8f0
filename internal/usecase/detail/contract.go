package detail

import (
	"context"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Getter loads one hadith.
type Getter interface {
	GetHadith(ctx context.Context, id int) (hadith.Detail, error)
}
