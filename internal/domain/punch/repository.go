package punch

import (
	"context"
	"time"
)

// DayKey identifies one recalculation unit of work.
type DayKey struct {
	UserID   string
	WorkDate time.Time
}

// EventRepository defines data access for raw punch events.
type EventRepository interface {
	// Create appends a punch event. Events are never updated in place.
	Create(ctx context.Context, event Event) (Event, error)

	// ListByUserAndDate returns every punch recorded for one (user, work date),
	// ordered by punch time ascending.
	ListByUserAndDate(ctx context.Context, userID string, workDate time.Time) ([]Event, error)

	// ListOpenDays returns (user, work date) pairs since the given date that
	// have at least one check_in but no check_out. Used by the nightly sweep.
	ListOpenDays(ctx context.Context, since time.Time) ([]DayKey, error)
}
