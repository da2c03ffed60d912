package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.EventRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements punch.EventRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, e punch.Event) (punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO punch_events (id, user_id, work_date, punch_at, kind, had_dinner, is_manual)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, work_date, punch_at, kind, had_dinner, is_manual, created_at
	`

	var created punch.Event
	err := q.QueryRow(ctx, insertQuery,
		e.ID, e.UserID, e.WorkDate, e.PunchAt, string(e.Kind), e.HadDinner, e.IsManual,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.WorkDate,
		&created.PunchAt,
		&created.Kind,
		&created.HadDinner,
		&created.IsManual,
		&created.CreatedAt,
	)
	if err != nil {
		return punch.Event{}, fmt.Errorf("failed to create punch event: %w", err)
	}

	return created, nil
}

// ListByUserAndDate implements punch.EventRepository.
func (r *punchRepositoryImpl) ListByUserAndDate(ctx context.Context, userID string, workDate time.Time) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, work_date, punch_at, kind, had_dinner, is_manual, created_at
		FROM punch_events
		WHERE user_id = $1 AND work_date = $2
		ORDER BY punch_at ASC
	`

	rows, err := q.Query(ctx, selectQuery, userID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var e punch.Event
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.WorkDate,
			&e.PunchAt,
			&e.Kind,
			&e.HadDinner,
			&e.IsManual,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, nil
}

// ListOpenDays implements punch.EventRepository. A day is open when it has a
// check-in but no check-out; the sweep job recalculates these keys so a summary
// row with an explicit missing tag still gets written.
func (r *punchRepositoryImpl) ListOpenDays(ctx context.Context, since time.Time) ([]punch.DayKey, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT user_id, work_date
		FROM punch_events
		WHERE work_date >= $1
		GROUP BY user_id, work_date
		HAVING COUNT(*) FILTER (WHERE kind = 'check_in') > 0
		   AND COUNT(*) FILTER (WHERE kind = 'check_out') = 0
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, selectQuery, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list open days: %w", err)
	}
	defer rows.Close()

	var keys []punch.DayKey
	for rows.Next() {
		var k punch.DayKey
		if err := rows.Scan(&k.UserID, &k.WorkDate); err != nil {
			return nil, fmt.Errorf("failed to scan open day: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open days: %w", err)
	}

	return keys, nil
}
