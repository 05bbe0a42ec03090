package ports

import (
	"context"

	"github.com/unimag/portal/internal/core/domain"
)

// ActivityRepository persists audit trail entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
}

// ActivityRecorder is the fire-and-forget side of the audit trail. Record
// never blocks the request path and never fails it; persistence errors are
// logged and dropped.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}
