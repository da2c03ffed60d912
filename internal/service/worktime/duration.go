package worktime

import (
	domain "github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

// netWorkedMinutes derives net worked minutes from a raw in-to-out span.
// The meal break is subtracted once when the span reaches the configured
// trigger. The dinner break is subtracted additionally when the span reaches
// the dinner trigger and applyDinner is set; on a midnight-split day the
// caller sets applyDinner only for the partial containing the check-out, so
// the dinner flag is never charged twice.
func netWorkedMinutes(rawMinutes int, applyDinner bool, cfg domain.PolicyConfig) int {
	if rawMinutes <= 0 {
		return 0
	}

	net := rawMinutes
	if float64(rawMinutes) >= cfg.MealBreakTriggerHours*60 {
		net -= cfg.MealBreakMinutes
	}
	if applyDinner && float64(rawMinutes) >= cfg.DinnerBreakTriggerHours*60 {
		net -= cfg.DinnerBreakMinutes
	}

	if net < 0 {
		return 0
	}
	return net
}
