package worktime

import (
	"time"

	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
)

// punchAggregate is the reduction of one (user, date)'s punch events to the
// outer bounds. A user may punch in or out several times per day; only the
// earliest check-in and the latest check-out matter.
type punchAggregate struct {
	FirstIn *time.Time
	LastOut *time.Time
	// HadDinner comes from the latest check-out event. Dinner is a
	// checkout-time attribute, not a duration property: it is read here once
	// so the break calculator cannot double-apply it.
	HadDinner bool
}

func aggregatePunches(events []punch.Event) punchAggregate {
	var agg punchAggregate
	for _, e := range events {
		switch e.Kind {
		case punch.KindCheckIn:
			if agg.FirstIn == nil || e.PunchAt.Before(*agg.FirstIn) {
				t := e.PunchAt
				agg.FirstIn = &t
			}
		case punch.KindCheckOut:
			if agg.LastOut == nil || e.PunchAt.After(*agg.LastOut) {
				t := e.PunchAt
				agg.LastOut = &t
				agg.HadDinner = e.HadDinner
			}
		}
	}
	return agg
}

// minuteOfDay returns the wall-clock minute offset of t within its day.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
