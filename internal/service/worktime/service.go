package worktime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
	domain "github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
	"github.com/nexhr/worktime-backend-go/internal/repository/postgresql"
)

type WorktimeServiceImpl struct {
	punchRepo   punch.EventRepository
	summaryRepo domain.SummaryRepository
	holidayRepo domain.HolidayRepository
	leaveRepo   domain.LeaveGrantRepository
	policyRepo  domain.PolicyRepository

	// withTx runs one lock-read-upsert sequence inside a storage transaction.
	// Swappable so the orchestration path can run against fakes.
	withTx func(ctx context.Context, fn func(tx pgx.Tx) error) error

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewWorktimeService(
	db *database.DB,
	punchRepo punch.EventRepository,
	summaryRepo domain.SummaryRepository,
	holidayRepo domain.HolidayRepository,
	leaveRepo domain.LeaveGrantRepository,
	policyRepo domain.PolicyRepository,
) domain.Service {
	return &WorktimeServiceImpl{
		punchRepo:   punchRepo,
		summaryRepo: summaryRepo,
		holidayRepo: holidayRepo,
		leaveRepo:   leaveRepo,
		policyRepo:  policyRepo,
		withTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		now: time.Now,
	}
}

// Recalculate implements worktime.Service.
func (s *WorktimeServiceImpl) Recalculate(ctx context.Context, userID string, workDate time.Time) (domain.DaySummary, error) {
	return s.recalculate(ctx, userID, workDate, false)
}

// RecalculateForced implements worktime.Service.
func (s *WorktimeServiceImpl) RecalculateForced(ctx context.Context, userID string, workDate time.Time) (domain.DaySummary, error) {
	return s.recalculate(ctx, userID, workDate, true)
}

func (s *WorktimeServiceImpl) recalculate(ctx context.Context, userID string, workDate time.Time, force bool) (domain.DaySummary, error) {
	workDate = truncateToDate(workDate)

	// The policy snapshot is read once and passed through the whole
	// computation; a concurrent policy change never affects a run in flight.
	cfg, err := s.policyRepo.GetActive(ctx, workDate)
	if err != nil {
		if errors.Is(err, domain.ErrPolicyConfigMissing) {
			return domain.DaySummary{}, err
		}
		return domain.DaySummary{}, fmt.Errorf("failed to load policy snapshot: %w", err)
	}

	var saved domain.DaySummary
	err = s.withTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Serialize concurrent recalculations of the same (user, date) key;
		// each run must see the full punch set it is summarizing.
		if err := s.summaryRepo.LockDay(txCtx, userID, workDate); err != nil {
			return fmt.Errorf("failed to lock day: %w", err)
		}

		existing, err := s.summaryRepo.GetByUserAndDate(txCtx, userID, workDate)
		if err != nil {
			return fmt.Errorf("failed to read existing summary: %w", err)
		}
		if existing != nil && !existing.AutoCalculated && !force {
			saved = *existing
			return domain.ErrManuallyOverridden
		}

		summary, err := s.buildSummary(txCtx, userID, workDate, cfg)
		if err != nil {
			return err
		}

		saved, err = s.summaryRepo.Upsert(txCtx, summary)
		if err != nil {
			return fmt.Errorf("failed to upsert summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return saved, err
	}

	return saved, nil
}

// buildSummary derives the summary row for one key from the current punch
// set, leave grants and holiday calendar. Lookup failures abort before any
// write; data-shape anomalies are absorbed into the work status tag.
func (s *WorktimeServiceImpl) buildSummary(ctx context.Context, userID string, workDate time.Time, cfg domain.PolicyConfig) (domain.DaySummary, error) {
	summary := domain.DaySummary{
		UserID:         userID,
		WorkDate:       workDate,
		AutoCalculated: true,
		CalculatedAt:   s.now(),
	}

	// Leave precedence: an approved grant fully determines the day and no
	// punch data is consulted. All-or-nothing per date.
	grant, err := s.leaveRepo.FindApproved(ctx, userID, workDate)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("%w: leave grant lookup: %v", domain.ErrLookupUnavailable, err)
	}
	if grant != nil {
		summary.BasicHours = roundHours(grant.Hours)
		summary.WorkStatusTag = grant.Kind
		return summary, nil
	}

	holiday, err := s.holidayRepo.FindByDate(ctx, workDate)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("%w: holiday lookup: %v", domain.ErrLookupUnavailable, err)
	}
	summary.IsHoliday = holiday != nil

	punches, err := s.punchRepo.ListByUserAndDate(ctx, userID, workDate)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("failed to list punches: %w", err)
	}

	agg := aggregatePunches(punches)
	summary.CheckIn = agg.FirstIn
	summary.CheckOut = agg.LastOut

	// An incomplete day is written with an explicit tag and zero hours so
	// payroll review can tell "data missing" from "worked zero hours".
	if agg.FirstIn == nil {
		summary.WorkStatusTag = domain.StatusCheckinMissing
		return summary, nil
	}
	if agg.LastOut == nil {
		summary.WorkStatusTag = domain.StatusCheckoutMissing
		return summary, nil
	}

	inMin := minuteOfDay(*agg.FirstIn)
	outMin := minuteOfDay(*agg.LastOut)

	classToday := classifyDay(workDate, holiday != nil)

	// The partial after midnight is classified on its own date.
	classNext := classToday
	if outMin < inMin {
		nextDate := workDate.AddDate(0, 0, 1)
		nextHoliday, err := s.holidayRepo.FindByDate(ctx, nextDate)
		if err != nil {
			return domain.DaySummary{}, fmt.Errorf("%w: holiday lookup: %v", domain.ErrLookupUnavailable, err)
		}
		classNext = classifyDay(nextDate, nextHoliday != nil)
	}

	computed, anomaly := computeDay(inMin, outMin, agg.HadDinner, classToday, classNext, cfg)
	if anomaly {
		summary.WorkStatusTag = domain.StatusAnomaly
		return summary, nil
	}

	summary.BasicHours = roundHours(computed.Comp.Basic)
	summary.OvertimeHours = roundHours(computed.Comp.Overtime)
	summary.NightHours = roundHours(computed.NightHours)
	summary.SubstituteLeaveHours = roundHours(computed.Comp.Substitute)
	summary.CompensatoryLeaveHours = roundHours(computed.Comp.Compensatory)
	summary.ComplexCalculation = computed.Complex
	summary.WorkStatusTag = domain.StatusComplete
	return summary, nil
}

// ListSummaries implements worktime.Service.
func (s *WorktimeServiceImpl) ListSummaries(ctx context.Context, filter domain.SummaryFilter) (domain.ListSummariesResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	summaries, total, err := s.summaryRepo.List(ctx, filter)
	if err != nil {
		return domain.ListSummariesResponse{}, fmt.Errorf("failed to list summaries: %w", err)
	}

	responses := make([]domain.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		responses = append(responses, domain.ToSummaryResponse(sum))
	}

	return domain.ListSummariesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Summaries:  responses,
	}, nil
}

// GetMySummaries implements worktime.Service.
func (s *WorktimeServiceImpl) GetMySummaries(ctx context.Context, filter domain.SummaryFilter) (domain.ListSummariesResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return domain.ListSummariesResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return domain.ListSummariesResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	filter.UserID = &userID
	return s.ListSummaries(ctx, filter)
}

// ActivePolicy implements worktime.Service.
func (s *WorktimeServiceImpl) ActivePolicy(ctx context.Context) (domain.PolicyResponse, error) {
	cfg, err := s.policyRepo.GetActive(ctx, truncateToDate(s.now()))
	if err != nil {
		return domain.PolicyResponse{}, err
	}
	return domain.ToPolicyResponse(cfg), nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
