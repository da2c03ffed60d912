package worktime

import (
	"github.com/shopspring/decimal"

	domain "github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

// premiumBaseHours is the portion of weekend/holiday work credited at the
// base rate before the premium multiplier kicks in.
const premiumBaseHours = 8.0

// holidayOvertimeRate is the fixed multiplier for Sunday/holiday work beyond
// the premium base.
const holidayOvertimeRate = 2.0

// compensation carries the unrounded policy outputs for one day.
type compensation struct {
	Basic        float64
	Overtime     float64
	Substitute   float64
	Compensatory float64
}

func (c compensation) add(o compensation) compensation {
	return compensation{
		Basic:        c.Basic + o.Basic,
		Overtime:     c.Overtime + o.Overtime,
		Substitute:   c.Substitute + o.Substitute,
		Compensatory: c.Compensatory + o.Compensatory,
	}
}

// applyDayPolicy evaluates the configured rate table for one day class.
// nightHours only matters for the Sunday/holiday class, where it earns an
// additional compensatory-leave premium.
func applyDayPolicy(class domain.DayType, hours float64, nightHours float64, cfg domain.PolicyConfig) compensation {
	switch class {
	case domain.DaySaturday:
		base := hours
		if base > premiumBaseHours {
			base = premiumBaseHours
		}
		excess := hours - premiumBaseHours
		if excess < 0 {
			excess = 0
		}
		return compensation{
			Basic:      hours,
			Substitute: base + excess*cfg.SaturdayRate,
		}

	case domain.DaySundayOrHoliday:
		base := hours
		if base > premiumBaseHours {
			base = premiumBaseHours
		}
		excess := hours - premiumBaseHours
		if excess < 0 {
			excess = 0
		}
		return compensation{
			Basic:        hours,
			Compensatory: base*cfg.SundayHolidayRate + excess*holidayOvertimeRate + nightHours*cfg.NightRate,
		}

	default: // DayWeekday
		basic := hours
		if basic > cfg.OvertimeThresholdHours {
			basic = cfg.OvertimeThresholdHours
		}
		overtime := hours - cfg.OvertimeThresholdHours
		if overtime < 0 {
			overtime = 0
		}
		return compensation{Basic: basic, Overtime: overtime}
	}
}

// computedDay is the full engine output for one (user, work date).
type computedDay struct {
	Comp          compensation
	NightHours    float64
	SpansMidnight bool
	// Complex marks the audit-visible simplification: a midnight-spanning
	// session touching a Sunday/holiday partial is paid entirely at the
	// higher class instead of prorating.
	Complex bool
}

// computeDay runs break subtraction, midnight split, night overlap and the
// rate table for an aggregated punch pair. classToday classifies the work
// date, classNext the following date; classNext is only consulted when the
// session crosses midnight. Results are unrounded; rounding happens once at
// the output stage.
func computeDay(inMin, outMin int, hadDinner bool, classToday, classNext domain.DayType, cfg domain.PolicyConfig) (computedDay, bool) {
	parts, spans, anomaly := splitSession(inMin, outMin)
	if anomaly {
		return computedDay{}, true
	}

	if !spans {
		session := parts[0]
		raw := session.EndMin - session.StartMin
		hours := float64(netWorkedMinutes(raw, hadDinner, cfg)) / 60
		night := float64(nightMinutes(inMin, outMin)) / 60
		return computedDay{
			Comp:       applyDayPolicy(classToday, hours, night, cfg),
			NightHours: night,
		}, false
	}

	// Midnight split: each partial keeps its own raw span for break purposes,
	// and the dinner flag belongs to the checkout partial.
	firstHours := float64(netWorkedMinutes(parts[0].EndMin-parts[0].StartMin, false, cfg)) / 60
	secondHours := float64(netWorkedMinutes(parts[1].EndMin-parts[1].StartMin, hadDinner && parts[1].HasCheckout, cfg)) / 60
	totalHours := firstHours + secondHours
	night := float64(nightMinutes(inMin, outMin+endOfDayMinute)) / 60

	out := computedDay{NightHours: night, SpansMidnight: true}

	switch {
	case classToday == domain.DaySundayOrHoliday || classNext == domain.DaySundayOrHoliday:
		// Favor the employee: the whole combined duration is paid at the
		// Sunday/holiday rate. Flagged for audit visibility.
		out.Comp = applyDayPolicy(domain.DaySundayOrHoliday, totalHours, night, cfg)
		out.Complex = true

	case classToday == classNext:
		out.Comp = applyDayPolicy(classToday, totalHours, night, cfg)

	default:
		// Saturday/weekday mix: the Saturday partial's hours earn
		// substitute-leave credit, the weekday partial's hours are ordinary.
		first := applyDayPolicy(classToday, firstHours, 0, cfg)
		second := applyDayPolicy(classNext, secondHours, 0, cfg)
		out.Comp = first.add(second)
	}

	return out, false
}

// roundHours rounds a computed hour value to one decimal, half up. Applied
// once at the final output stage so intermediate steps never compound
// rounding error.
func roundHours(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
