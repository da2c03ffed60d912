package punch

import (
	"time"

	"github.com/nexhr/worktime-backend-go/internal/pkg/validator"
)

type RecordPunchRequest struct {
	Kind      string `json:"kind"`
	HadDinner bool   `json:"had_dinner"`
}

func (r RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Kind != string(KindCheckIn) && r.Kind != string(KindCheckOut) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be check_in or check_out"})
	}
	if r.HadDinner && r.Kind != string(KindCheckOut) {
		errs = append(errs, validator.ValidationError{Field: "had_dinner", Message: "only allowed on check_out"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualPunchRequest is an administrator correction entry. It carries an
// explicit date and time instead of using the server clock.
type ManualPunchRequest struct {
	UserID    string `json:"user_id"`
	WorkDate  string `json:"work_date"` // 2006-01-02
	Time      string `json:"time"`      // 15:04
	Kind      string `json:"kind"`
	HadDinner bool   `json:"had_dinner"`
}

func (r ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	if !validator.IsValidDate(r.WorkDate) {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !validator.IsValidClockTime(r.Time) {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "must be a valid time (HH:MM)"})
	}
	if r.Kind != string(KindCheckIn) && r.Kind != string(KindCheckOut) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be check_in or check_out"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	WorkDate  string `json:"work_date"`
	PunchAt   string `json:"punch_at"`
	Kind      string `json:"kind"`
	HadDinner bool   `json:"had_dinner"`
	IsManual  bool   `json:"is_manual"`
}

func ToPunchResponse(e Event) PunchResponse {
	return PunchResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		WorkDate:  e.WorkDate.Format("2006-01-02"),
		PunchAt:   e.PunchAt.Format(time.RFC3339),
		Kind:      string(e.Kind),
		HadDinner: e.HadDinner,
		IsManual:  e.IsManual,
	}
}
