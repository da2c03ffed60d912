package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
)

type leaveGrantRepositoryImpl struct {
	db *database.DB
}

func NewLeaveGrantRepository(db *database.DB) worktime.LeaveGrantRepository {
	return &leaveGrantRepositoryImpl{db: db}
}

// FindApproved implements worktime.LeaveGrantRepository. Only approved grants
// participate; pending and rejected ones never affect a summary.
func (r *leaveGrantRepositoryImpl) FindApproved(ctx context.Context, userID string, date time.Time) (*worktime.LeaveGrant, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, start_date, end_date, kind, hours, status
		FROM leave_grants
		WHERE user_id = $1
		  AND status = 'approved'
		  AND $2 BETWEEN start_date AND end_date
		ORDER BY start_date DESC
		LIMIT 1
	`

	var g worktime.LeaveGrant
	err := q.QueryRow(ctx, selectQuery, userID, date).Scan(
		&g.ID,
		&g.UserID,
		&g.StartDate,
		&g.EndDate,
		&g.Kind,
		&g.Hours,
		&g.Status,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave grant: %w", err)
	}

	return &g, nil
}
