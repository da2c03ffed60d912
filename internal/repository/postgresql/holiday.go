package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) worktime.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// FindByDate implements worktime.HolidayRepository.
func (r *holidayRepositoryImpl) FindByDate(ctx context.Context, date time.Time) (*worktime.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT holiday_date, name
		FROM holidays
		WHERE holiday_date = $1
	`

	var h worktime.Holiday
	err := q.QueryRow(ctx, selectQuery, date).Scan(&h.Date, &h.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}

	return &h, nil
}
