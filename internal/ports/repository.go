package ports

import (
	"context"

	"shopify-template-sync/internal/domain"
)

// SyncRunRepository defines the interface for run history persistence
type SyncRunRepository interface {
	Save(ctx context.Context, run *domain.SyncRun) error
	ListRecent(ctx context.Context, limit int64) ([]*domain.SyncRun, error)
}
