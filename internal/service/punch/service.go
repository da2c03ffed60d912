package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	domain "github.com/nexhr/worktime-backend-go/internal/domain/punch"
	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/validator"
)

type PunchServiceImpl struct {
	punchRepo       domain.EventRepository
	worktimeService worktime.Service

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewPunchService(punchRepo domain.EventRepository, worktimeService worktime.Service) domain.Service {
	return &PunchServiceImpl{
		punchRepo:       punchRepo,
		worktimeService: worktimeService,
		now:             time.Now,
	}
}

// RecordPunch implements punch.Service.
func (s *PunchServiceImpl) RecordPunch(ctx context.Context, req domain.RecordPunchRequest) (domain.RecordPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.RecordPunchResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return domain.RecordPunchResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return domain.RecordPunchResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	now := s.now().UTC()
	workDate := truncateToDate(now)

	// A check-out before noon closes yesterday's session when yesterday still
	// has an open check-in. Otherwise the punch belongs to the current date.
	if domain.Kind(req.Kind) == domain.KindCheckOut && now.Hour() < 12 {
		yesterday := workDate.AddDate(0, 0, -1)
		open, err := s.hasOpenCheckIn(ctx, userID, yesterday)
		if err != nil {
			return domain.RecordPunchResponse{}, err
		}
		if open {
			workDate = yesterday
		}
	}

	event := domain.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		WorkDate:  workDate,
		PunchAt:   now,
		Kind:      domain.Kind(req.Kind),
		HadDinner: req.HadDinner,
		IsManual:  false,
	}

	return s.storeAndRecalculate(ctx, event)
}

// RecordManualPunch implements punch.Service.
func (s *PunchServiceImpl) RecordManualPunch(ctx context.Context, req domain.ManualPunchRequest) (domain.RecordPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.RecordPunchResponse{}, err
	}

	workDate, _ := validator.ParseDate(req.WorkDate)
	clock, _ := validator.ParseClockTime(req.Time)

	if workDate.After(truncateToDate(s.now().UTC())) {
		return domain.RecordPunchResponse{}, domain.ErrFutureDate
	}

	event := domain.Event{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		WorkDate: workDate,
		PunchAt: time.Date(workDate.Year(), workDate.Month(), workDate.Day(),
			clock.Hour(), clock.Minute(), 0, 0, time.UTC),
		Kind:      domain.Kind(req.Kind),
		HadDinner: req.HadDinner,
		IsManual:  true,
	}

	return s.storeAndRecalculate(ctx, event)
}

func (s *PunchServiceImpl) storeAndRecalculate(ctx context.Context, event domain.Event) (domain.RecordPunchResponse, error) {
	created, err := s.punchRepo.Create(ctx, event)
	if err != nil {
		return domain.RecordPunchResponse{}, fmt.Errorf("failed to create punch: %w", err)
	}

	resp := domain.RecordPunchResponse{Punch: domain.ToPunchResponse(created)}

	summary, err := s.worktimeService.Recalculate(ctx, created.UserID, created.WorkDate)
	if err != nil {
		// A manually overridden row keeps its values; the punch itself is
		// stored and the caller gets no summary back.
		if errors.Is(err, worktime.ErrManuallyOverridden) {
			slog.Warn("summary is manually overridden, skipping recalculation",
				"user_id", created.UserID,
				"work_date", created.WorkDate.Format("2006-01-02"))
			return resp, nil
		}
		return domain.RecordPunchResponse{}, fmt.Errorf("failed to recalculate summary: %w", err)
	}

	summaryResp := worktime.ToSummaryResponse(summary)
	resp.Summary = &summaryResp
	return resp, nil
}

func (s *PunchServiceImpl) hasOpenCheckIn(ctx context.Context, userID string, workDate time.Time) (bool, error) {
	events, err := s.punchRepo.ListByUserAndDate(ctx, userID, workDate)
	if err != nil {
		return false, fmt.Errorf("failed to list punches: %w", err)
	}

	hasIn, hasOut := false, false
	for _, e := range events {
		switch e.Kind {
		case domain.KindCheckIn:
			hasIn = true
		case domain.KindCheckOut:
			hasOut = true
		}
	}
	return hasIn && !hasOut, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
