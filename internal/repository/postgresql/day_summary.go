package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
)

type daySummaryRepositoryImpl struct {
	db *database.DB
}

func NewDaySummaryRepository(db *database.DB) worktime.SummaryRepository {
	return &daySummaryRepositoryImpl{db: db}
}

const daySummaryColumns = `
	id, user_id, work_date, check_in, check_out,
	basic_hours, overtime_hours, night_hours,
	substitute_leave_hours, compensatory_leave_hours,
	work_status_tag, is_holiday, complex_calculation, auto_calculated,
	calculated_at, created_at, updated_at`

func scanDaySummary(row pgx.Row) (worktime.DaySummary, error) {
	var s worktime.DaySummary
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.WorkDate,
		&s.CheckIn,
		&s.CheckOut,
		&s.BasicHours,
		&s.OvertimeHours,
		&s.NightHours,
		&s.SubstituteLeaveHours,
		&s.CompensatoryLeaveHours,
		&s.WorkStatusTag,
		&s.IsHoliday,
		&s.ComplexCalculation,
		&s.AutoCalculated,
		&s.CalculatedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Upsert implements worktime.SummaryRepository. The (user_id, work_date)
// unique constraint makes recalculation idempotent at the storage level.
func (r *daySummaryRepositoryImpl) Upsert(ctx context.Context, summary worktime.DaySummary) (worktime.DaySummary, error) {
	q := GetQuerier(ctx, r.db)

	upsertQuery := `
		INSERT INTO day_summaries (
			id, user_id, work_date, check_in, check_out,
			basic_hours, overtime_hours, night_hours,
			substitute_leave_hours, compensatory_leave_hours,
			work_status_tag, is_holiday, complex_calculation, auto_calculated,
			calculated_at
		)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, work_date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			basic_hours = EXCLUDED.basic_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			night_hours = EXCLUDED.night_hours,
			substitute_leave_hours = EXCLUDED.substitute_leave_hours,
			compensatory_leave_hours = EXCLUDED.compensatory_leave_hours,
			work_status_tag = EXCLUDED.work_status_tag,
			is_holiday = EXCLUDED.is_holiday,
			complex_calculation = EXCLUDED.complex_calculation,
			auto_calculated = EXCLUDED.auto_calculated,
			calculated_at = EXCLUDED.calculated_at,
			updated_at = NOW()
		RETURNING ` + daySummaryColumns

	saved, err := scanDaySummary(q.QueryRow(ctx, upsertQuery,
		summary.UserID,
		summary.WorkDate,
		summary.CheckIn,
		summary.CheckOut,
		summary.BasicHours,
		summary.OvertimeHours,
		summary.NightHours,
		summary.SubstituteLeaveHours,
		summary.CompensatoryLeaveHours,
		summary.WorkStatusTag,
		summary.IsHoliday,
		summary.ComplexCalculation,
		summary.AutoCalculated,
		summary.CalculatedAt,
	))
	if err != nil {
		return worktime.DaySummary{}, fmt.Errorf("failed to upsert day summary: %w", err)
	}

	return saved, nil
}

// GetByUserAndDate implements worktime.SummaryRepository.
func (r *daySummaryRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*worktime.DaySummary, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT ` + daySummaryColumns + `
		FROM day_summaries
		WHERE user_id = $1 AND work_date = $2
	`

	s, err := scanDaySummary(q.QueryRow(ctx, selectQuery, userID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get day summary: %w", err)
	}

	return &s, nil
}

// List implements worktime.SummaryRepository.
func (r *daySummaryRepositoryImpl) List(ctx context.Context, filter worktime.SummaryFilter) ([]worktime.DaySummary, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		baseWhere += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		baseWhere += fmt.Sprintf(" AND work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.StatusTag != nil {
		baseWhere += fmt.Sprintf(" AND work_status_tag = $%d", argIdx)
		args = append(args, *filter.StatusTag)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM day_summaries WHERE " + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count day summaries: %w", err)
	}

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM day_summaries
		WHERE %s
		ORDER BY work_date %s, user_id ASC
		LIMIT $%d OFFSET $%d
	`, daySummaryColumns, baseWhere, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list day summaries: %w", err)
	}
	defer rows.Close()

	var summaries []worktime.DaySummary
	for rows.Next() {
		s, err := scanDaySummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan day summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate day summaries: %w", err)
	}

	return summaries, total, nil
}

// LockDay implements worktime.SummaryRepository. The advisory lock is held
// until the surrounding transaction ends, so two recalculations of the same
// key serialize instead of computing from different punch snapshots.
func (r *daySummaryRepositoryImpl) LockDay(ctx context.Context, userID string, workDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	lockQuery := `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`

	if _, err := q.Exec(ctx, lockQuery, userID, workDate.Format("2006-01-02")); err != nil {
		return fmt.Errorf("failed to lock day: %w", err)
	}

	return nil
}
