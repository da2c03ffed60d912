package worktime

import (
	"time"

	"github.com/nexhr/worktime-backend-go/internal/pkg/validator"
)

type SummaryFilter struct {
	UserID    *string
	StartDate *string
	EndDate   *string
	StatusTag *string
	SortOrder string
	Page      int
	Limit     int
}

type RecalculateRequest struct {
	UserID   string `json:"user_id"`
	WorkDate string `json:"work_date"` // 2006-01-02
	Force    bool   `json:"force"`
}

func (r RecalculateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	if !validator.IsValidDate(r.WorkDate) {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryResponse struct {
	ID                     string  `json:"id"`
	UserID                 string  `json:"user_id"`
	WorkDate               string  `json:"work_date"`
	CheckIn                *string `json:"check_in"`
	CheckOut               *string `json:"check_out"`
	BasicHours             float64 `json:"basic_hours"`
	OvertimeHours          float64 `json:"overtime_hours"`
	NightHours             float64 `json:"night_hours"`
	SubstituteLeaveHours   float64 `json:"substitute_leave_hours"`
	CompensatoryLeaveHours float64 `json:"compensatory_leave_hours"`
	WorkStatusTag          string  `json:"work_status_tag"`
	IsHoliday              bool    `json:"is_holiday"`
	ComplexCalculation     bool    `json:"complex_calculation"`
	AutoCalculated         bool    `json:"auto_calculated"`
	CalculatedAt           string  `json:"calculated_at"`
}

type ListSummariesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Summaries  []SummaryResponse `json:"summaries"`
}

type PolicyResponse struct {
	ID                      string  `json:"id"`
	OvertimeThresholdHours  float64 `json:"overtime_threshold_hours"`
	SaturdayRate            float64 `json:"saturday_rate"`
	SundayHolidayRate       float64 `json:"sunday_holiday_rate"`
	NightRate               float64 `json:"night_rate"`
	MealBreakMinutes        int     `json:"meal_break_minutes"`
	MealBreakTriggerHours   float64 `json:"meal_break_trigger_hours"`
	DinnerBreakMinutes      int     `json:"dinner_break_minutes"`
	DinnerBreakTriggerHours float64 `json:"dinner_break_trigger_hours"`
	EffectiveFrom           string  `json:"effective_from"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToSummaryResponse converts a DaySummary entity to SummaryResponse
func ToSummaryResponse(s DaySummary) SummaryResponse {
	return SummaryResponse{
		ID:                     s.ID,
		UserID:                 s.UserID,
		WorkDate:               s.WorkDate.Format("2006-01-02"),
		CheckIn:                timePtrToString(s.CheckIn),
		CheckOut:               timePtrToString(s.CheckOut),
		BasicHours:             s.BasicHours,
		OvertimeHours:          s.OvertimeHours,
		NightHours:             s.NightHours,
		SubstituteLeaveHours:   s.SubstituteLeaveHours,
		CompensatoryLeaveHours: s.CompensatoryLeaveHours,
		WorkStatusTag:          s.WorkStatusTag,
		IsHoliday:              s.IsHoliday,
		ComplexCalculation:     s.ComplexCalculation,
		AutoCalculated:         s.AutoCalculated,
		CalculatedAt:           s.CalculatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToPolicyResponse converts a PolicyConfig to PolicyResponse
func ToPolicyResponse(p PolicyConfig) PolicyResponse {
	return PolicyResponse{
		ID:                      p.ID,
		OvertimeThresholdHours:  p.OvertimeThresholdHours,
		SaturdayRate:            p.SaturdayRate,
		SundayHolidayRate:       p.SundayHolidayRate,
		NightRate:               p.NightRate,
		MealBreakMinutes:        p.MealBreakMinutes,
		MealBreakTriggerHours:   p.MealBreakTriggerHours,
		DinnerBreakMinutes:      p.DinnerBreakMinutes,
		DinnerBreakTriggerHours: p.DinnerBreakTriggerHours,
		EffectiveFrom:           p.EffectiveFrom.Format("2006-01-02"),
	}
}
