package punch

import (
	"time"
)

type Kind string

const (
	KindCheckIn  Kind = "check_in"
	KindCheckOut Kind = "check_out"
)

// Event is a single raw punch. Events are immutable once recorded;
// corrections append new events for the same (user, work date) and the
// work-time engine only ever considers the outer bounds.
type Event struct {
	ID        string
	UserID    string
	WorkDate  time.Time // calendar day the punch was recorded against
	PunchAt   time.Time // wall-clock moment of the punch on WorkDate
	Kind      Kind
	HadDinner bool // only meaningful on check_out events
	IsManual  bool
	CreatedAt time.Time
}
