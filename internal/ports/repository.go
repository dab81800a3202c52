package ports

import (
	"context"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

type IdentifyCacheRepository interface {
	Get(ctx context.Context, contentHash, language string) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}
