package worktime

import (
	"context"
	"time"
)

// Service recomputes and serves day summaries. Recalculate is the entry point
// the punch-write boundary invokes for every affected (user, work date); it is
// idempotent for a fixed punch set and policy snapshot.
type Service interface {
	// Recalculate re-reads the full punch set for the key and upserts the
	// summary row. Rows a human has overridden (auto_calculated=false) are
	// left untouched and ErrManuallyOverridden is returned.
	Recalculate(ctx context.Context, userID string, workDate time.Time) (DaySummary, error)

	// RecalculateForced recomputes even over a manual override. Only the
	// explicit recompute endpoint uses it.
	RecalculateForced(ctx context.Context, userID string, workDate time.Time) (DaySummary, error)

	ListSummaries(ctx context.Context, filter SummaryFilter) (ListSummariesResponse, error)
	GetMySummaries(ctx context.Context, filter SummaryFilter) (ListSummariesResponse, error)
	ActivePolicy(ctx context.Context) (PolicyResponse, error)
}
