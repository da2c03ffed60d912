package worktime

import (
	"time"

	domain "github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

// classifyDay maps a date to its compensation class. The holiday flag always
// wins: a holiday falling on a Tuesday is still Sunday/holiday-class for rate
// purposes. Callers resolve the flag through the holiday lookup and must treat
// lookup failures as fatal rather than defaulting to weekday.
func classifyDay(date time.Time, isHoliday bool) domain.DayType {
	if isHoliday || date.Weekday() == time.Sunday {
		return domain.DaySundayOrHoliday
	}
	if date.Weekday() == time.Saturday {
		return domain.DaySaturday
	}
	return domain.DayWeekday
}
