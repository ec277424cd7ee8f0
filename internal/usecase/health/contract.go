package health

import (
	"context"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Prober fetches the backend health document.
type Prober interface {
	Health(ctx context.Context) (hadith.Health, error)
}
