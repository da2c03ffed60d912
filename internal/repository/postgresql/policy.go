package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) worktime.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// GetActive implements worktime.PolicyRepository. The newest policy whose
// effective_from is on or before the date wins; rows are never mutated, a
// change is a new row.
func (r *policyRepositoryImpl) GetActive(ctx context.Context, date time.Time) (worktime.PolicyConfig, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, overtime_threshold_hours, saturday_rate, sunday_holiday_rate,
		       night_rate, meal_break_minutes, meal_break_trigger_hours,
		       dinner_break_minutes, dinner_break_trigger_hours, effective_from
		FROM compensation_policies
		WHERE effective_from <= $1
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var cfg worktime.PolicyConfig
	err := q.QueryRow(ctx, selectQuery, date).Scan(
		&cfg.ID,
		&cfg.OvertimeThresholdHours,
		&cfg.SaturdayRate,
		&cfg.SundayHolidayRate,
		&cfg.NightRate,
		&cfg.MealBreakMinutes,
		&cfg.MealBreakTriggerHours,
		&cfg.DinnerBreakMinutes,
		&cfg.DinnerBreakTriggerHours,
		&cfg.EffectiveFrom,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worktime.PolicyConfig{}, worktime.ErrPolicyConfigMissing
		}
		return worktime.PolicyConfig{}, fmt.Errorf("failed to get active policy: %w", err)
	}

	return cfg, nil
}
