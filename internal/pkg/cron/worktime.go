package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

type WorktimeJobs struct {
	punchRepo       punch.EventRepository
	worktimeService worktime.Service
	sweepInterval   time.Duration
	sweepLookback   int
}

func NewWorktimeJobs(
	punchRepo punch.EventRepository,
	worktimeService worktime.Service,
	sweepInterval time.Duration,
	sweepLookback int,
) *WorktimeJobs {
	return &WorktimeJobs{
		punchRepo:       punchRepo,
		worktimeService: worktimeService,
		sweepInterval:   sweepInterval,
		sweepLookback:   sweepLookback,
	}
}

func (j *WorktimeJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_open_days", j.sweepInterval, j.SweepOpenDays)
}

// SweepOpenDays recalculates every recent day that has a check-in but no
// check-out, so forgotten checkouts surface as tagged summary rows instead of
// staying invisible until someone queries the punches.
func (j *WorktimeJobs) SweepOpenDays(ctx context.Context) error {
	since := time.Now().UTC().AddDate(0, 0, -j.sweepLookback)
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)

	keys, err := j.punchRepo.ListOpenDays(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list open days: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	slog.Info("Sweeping open days", "count", len(keys), "since", since.Format("2006-01-02"))

	var failed int
	for _, key := range keys {
		if _, err := j.worktimeService.Recalculate(ctx, key.UserID, key.WorkDate); err != nil {
			if errors.Is(err, worktime.ErrManuallyOverridden) {
				continue
			}
			failed++
			slog.Error("Failed to recalculate open day",
				"user_id", key.UserID,
				"work_date", key.WorkDate.Format("2006-01-02"),
				"error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("sweep finished with %d failed recalculations", failed)
	}
	return nil
}
