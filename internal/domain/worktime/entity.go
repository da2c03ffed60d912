package worktime

import (
	"time"
)

// DayType classifies a calendar day for compensation purposes. It is a closed
// set: every policy branch switches over it exhaustively.
type DayType int

const (
	DayWeekday DayType = iota
	DaySaturday
	DaySundayOrHoliday
)

func (d DayType) String() string {
	switch d {
	case DaySaturday:
		return "saturday"
	case DaySundayOrHoliday:
		return "sunday_or_holiday"
	default:
		return "weekday"
	}
}

// Work status tags surfaced on DaySummary. Data-shape anomalies are absorbed
// into these tags rather than raised as errors, so the summary table always
// reflects best effort.
const (
	StatusComplete        = "complete"
	StatusCheckinMissing  = "checkin_missing"
	StatusCheckoutMissing = "checkout_missing"
	StatusAnomaly         = "anomaly"
)

// WorkSession is the inferred first-in/last-out interval for one user on one
// date. Derived on every recalculation, never persisted.
type WorkSession struct {
	CheckIn       time.Time
	CheckOut      time.Time
	SpansMidnight bool
}

// DaySummary is the persisted per-(user, work date) compensation summary.
// Exactly one row exists per key, enforced by upsert-on-conflict.
type DaySummary struct {
	ID                     string
	UserID                 string
	WorkDate               time.Time
	CheckIn                *time.Time
	CheckOut               *time.Time
	BasicHours             float64
	OvertimeHours          float64
	NightHours             float64
	SubstituteLeaveHours   float64
	CompensatoryLeaveHours float64
	WorkStatusTag          string
	IsHoliday              bool
	ComplexCalculation     bool
	AutoCalculated         bool
	CalculatedAt           time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Holiday is a row from the external holiday calendar, consumed read-only.
type Holiday struct {
	Date time.Time
	Name string
}

// LeaveGrant is an approved absence record, consumed read-only. When one
// covers a date it fully determines that day's summary.
type LeaveGrant struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Kind      string
	Hours     float64
	Status    string
}

// LeaveOverride is the resolved precedence result for one date.
type LeaveOverride struct {
	Hours     float64
	StatusTag string
}

// PolicyConfig is one versioned compensation rule set. It is read as an
// immutable snapshot at the start of each computation and passed explicitly;
// changing it never retroactively alters past summaries.
type PolicyConfig struct {
	ID                      string
	OvertimeThresholdHours  float64
	SaturdayRate            float64
	SundayHolidayRate       float64
	NightRate               float64
	MealBreakMinutes        int
	MealBreakTriggerHours   float64
	DinnerBreakMinutes      int
	DinnerBreakTriggerHours float64
	EffectiveFrom           time.Time
}
