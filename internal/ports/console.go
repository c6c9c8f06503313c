package ports

import (
	"context"

	"shopify-template-sync/internal/domain"
)

// Prompter asks the operator for input
type Prompter interface {
	Input(message string) (string, error)
	MultiSelect(message string, options []string) ([]string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// Reporter prints operator-facing status lines
type Reporter interface {
	Success(format string, args ...any)
	Failure(format string, args ...any)
	Detail(format string, args ...any)
	Info(format string, args ...any)
}

// EventPublisher receives every sync event of a run
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.SyncEvent) error
}
