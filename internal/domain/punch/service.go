package punch

import (
	"context"

	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

// RecordPunchResponse returns the stored punch together with the summary the
// recalculation produced. Summary is nil when the day's row is protected by a
// manual override.
type RecordPunchResponse struct {
	Punch   PunchResponse              `json:"punch"`
	Summary *worktime.SummaryResponse  `json:"summary,omitempty"`
}

type Service interface {
	// RecordPunch stores a punch for the authenticated user at the current
	// time and synchronously triggers recalculation before returning.
	RecordPunch(ctx context.Context, req RecordPunchRequest) (RecordPunchResponse, error)

	// RecordManualPunch stores an administrator correction entry and triggers
	// recalculation for the affected work date.
	RecordManualPunch(ctx context.Context, req ManualPunchRequest) (RecordPunchResponse, error)
}
