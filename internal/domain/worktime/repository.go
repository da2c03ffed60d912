package worktime

import (
	"context"
	"time"
)

// SummaryRepository persists day summaries. The store owns durability and the
// (user_id, work_date) uniqueness constraint; the engine owns the derivation.
type SummaryRepository interface {
	// Upsert atomically inserts or updates the summary row for
	// (summary.UserID, summary.WorkDate).
	Upsert(ctx context.Context, summary DaySummary) (DaySummary, error)

	// GetByUserAndDate returns nil, nil when no row exists yet.
	GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*DaySummary, error)

	// List returns summaries matching the filter with a total count.
	List(ctx context.Context, filter SummaryFilter) ([]DaySummary, int64, error)

	// LockDay serializes concurrent recalculations of the same (user, date)
	// key for the lifetime of the surrounding transaction.
	LockDay(ctx context.Context, userID string, workDate time.Time) error
}

// HolidayRepository is the external holiday calendar lookup.
type HolidayRepository interface {
	// FindByDate returns nil, nil when the date is not a holiday. Any error
	// must propagate: a silent weekday default would under-pay premiums.
	FindByDate(ctx context.Context, date time.Time) (*Holiday, error)
}

// LeaveGrantRepository is the external approved-leave lookup.
type LeaveGrantRepository interface {
	// FindApproved returns the approved grant covering the date, or nil, nil.
	FindApproved(ctx context.Context, userID string, date time.Time) (*LeaveGrant, error)
}

// PolicyRepository provides versioned compensation policy snapshots.
type PolicyRepository interface {
	// GetActive returns the policy effective for the given date.
	// Returns ErrPolicyConfigMissing when none exists.
	GetActive(ctx context.Context, date time.Time) (PolicyConfig, error)
}
