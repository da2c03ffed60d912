package worktime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
	domain "github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

type fakePunchRepo struct {
	events []punch.Event
	err    error
}

func (f *fakePunchRepo) Create(ctx context.Context, e punch.Event) (punch.Event, error) {
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakePunchRepo) ListByUserAndDate(ctx context.Context, userID string, workDate time.Time) ([]punch.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []punch.Event
	for _, e := range f.events {
		if e.UserID == userID && e.WorkDate.Equal(workDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePunchRepo) ListOpenDays(ctx context.Context, since time.Time) ([]punch.DayKey, error) {
	return nil, nil
}

type fakeHolidayRepo struct {
	holidays map[string]string
	err      error
}

func (f *fakeHolidayRepo) FindByDate(ctx context.Context, d time.Time) (*domain.Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	if name, ok := f.holidays[d.Format("2006-01-02")]; ok {
		return &domain.Holiday{Date: d, Name: name}, nil
	}
	return nil, nil
}

type fakeLeaveRepo struct {
	grant *domain.LeaveGrant
	err   error
}

func (f *fakeLeaveRepo) FindApproved(ctx context.Context, userID string, d time.Time) (*domain.LeaveGrant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grant, nil
}

func newTestService(punches *fakePunchRepo, holidays *fakeHolidayRepo, leaves *fakeLeaveRepo) *WorktimeServiceImpl {
	fixed := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	return &WorktimeServiceImpl{
		punchRepo:   punches,
		holidayRepo: holidays,
		leaveRepo:   leaves,
		now:         func() time.Time { return fixed },
	}
}

func sessionPunches(day time.Time, inHH, inMM, outHH, outMM int, dinner bool) []punch.Event {
	return []punch.Event{
		punchAt(day, inHH, inMM, punch.KindCheckIn, false),
		punchAt(day, outHH, outMM, punch.KindCheckOut, dinner),
	}
}

func TestBuildSummaryCompleteWeekday(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3) // tuesday

	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 19, 0, false)},
		&fakeHolidayRepo{},
		&fakeLeaveRepo{},
	)

	sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, sum.WorkStatusTag)
	assert.Equal(t, 8.0, sum.BasicHours)
	assert.Equal(t, 1.0, sum.OvertimeHours)
	assert.Equal(t, 0.0, sum.NightHours)
	assert.False(t, sum.IsHoliday)
	assert.True(t, sum.AutoCalculated)
	require.NotNil(t, sum.CheckIn)
	require.NotNil(t, sum.CheckOut)
}

func TestBuildSummaryLeavePrecedence(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	// Punches exist, but the approved grant wins: no punch data is consulted
	// and the grant's hours land in basic verbatim.
	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 23, 30, false)},
		&fakeHolidayRepo{},
		&fakeLeaveRepo{grant: &domain.LeaveGrant{
			UserID: "u-1", Kind: "annual_leave", Hours: 8, Status: "approved",
		}},
	)

	sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, "annual_leave", sum.WorkStatusTag)
	assert.Equal(t, 8.0, sum.BasicHours)
	assert.Equal(t, 0.0, sum.OvertimeHours)
	assert.Equal(t, 0.0, sum.NightHours)
	assert.Equal(t, 0.0, sum.SubstituteLeaveHours)
	assert.Equal(t, 0.0, sum.CompensatoryLeaveHours)
	assert.Nil(t, sum.CheckIn)
	assert.Nil(t, sum.CheckOut)
}

func TestBuildSummaryMissingSides(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	t.Run("checkout missing", func(t *testing.T) {
		svc := newTestService(
			&fakePunchRepo{events: []punch.Event{punchAt(day, 9, 0, punch.KindCheckIn, false)}},
			&fakeHolidayRepo{},
			&fakeLeaveRepo{},
		)

		sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCheckoutMissing, sum.WorkStatusTag)
		assert.Equal(t, 0.0, sum.BasicHours)
		assert.NotNil(t, sum.CheckIn)
		assert.Nil(t, sum.CheckOut)
	})

	t.Run("checkin missing", func(t *testing.T) {
		svc := newTestService(
			&fakePunchRepo{events: []punch.Event{punchAt(day, 18, 0, punch.KindCheckOut, false)}},
			&fakeHolidayRepo{},
			&fakeLeaveRepo{},
		)

		sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCheckinMissing, sum.WorkStatusTag)
		assert.Equal(t, 0.0, sum.BasicHours)
	})

	t.Run("no punches at all", func(t *testing.T) {
		svc := newTestService(&fakePunchRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{})

		sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCheckinMissing, sum.WorkStatusTag)
	})
}

func TestBuildSummaryAnomaly(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	// Checkout at 14:00 before an 18:00 check-in: no overnight justification.
	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 18, 0, 14, 0, false)},
		&fakeHolidayRepo{},
		&fakeLeaveRepo{},
	)

	sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnomaly, sum.WorkStatusTag)
	assert.Equal(t, 0.0, sum.BasicHours)
	assert.Equal(t, 0.0, sum.NightHours)
}

func TestBuildSummaryHolidayUpgrade(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3) // tuesday, declared holiday

	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 19, 0, false)},
		&fakeHolidayRepo{holidays: map[string]string{"2025-06-03": "Memorial Day"}},
		&fakeLeaveRepo{},
	)

	sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	assert.True(t, sum.IsHoliday)
	assert.Equal(t, 9.0, sum.BasicHours)
	assert.Equal(t, 0.0, sum.OvertimeHours)
	assert.Equal(t, 14.0, sum.CompensatoryLeaveHours)
}

func TestBuildSummaryMidnightSpanIntoSunday(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 7) // saturday

	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 20, 0, 4, 0, false)},
		&fakeHolidayRepo{},
		&fakeLeaveRepo{},
	)

	sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	assert.True(t, sum.ComplexCalculation)
	assert.Equal(t, 8.0, sum.BasicHours)
	assert.Equal(t, 6.0, sum.NightHours)
	assert.Equal(t, 15.0, sum.CompensatoryLeaveHours)
}

func TestBuildSummaryLookupFailureAborts(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)
	boom := errors.New("connection refused")

	t.Run("holiday lookup", func(t *testing.T) {
		svc := newTestService(
			&fakePunchRepo{events: sessionPunches(day, 9, 0, 18, 0, false)},
			&fakeHolidayRepo{err: boom},
			&fakeLeaveRepo{},
		)

		_, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
		assert.ErrorIs(t, err, domain.ErrLookupUnavailable)
	})

	t.Run("leave lookup", func(t *testing.T) {
		svc := newTestService(
			&fakePunchRepo{events: sessionPunches(day, 9, 0, 18, 0, false)},
			&fakeHolidayRepo{},
			&fakeLeaveRepo{err: boom},
		)

		_, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
		assert.ErrorIs(t, err, domain.ErrLookupUnavailable)
	})
}

// Running the derivation twice over the same punch set and policy snapshot
// must produce identical computed fields; this is what makes recompute-on-
// every-write safe.
func TestBuildSummaryIdempotent(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 6) // friday

	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 20, 0, 6, 0, true)},
		&fakeHolidayRepo{},
		&fakeLeaveRepo{},
	)

	first, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	second, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type fakeSummaryRepo struct {
	stored *domain.DaySummary
	calls  []string
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, s domain.DaySummary) (domain.DaySummary, error) {
	f.calls = append(f.calls, "upsert")
	if s.ID == "" {
		s.ID = "sum-1"
	}
	f.stored = &s
	return s, nil
}

func (f *fakeSummaryRepo) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*domain.DaySummary, error) {
	f.calls = append(f.calls, "get")
	return f.stored, nil
}

func (f *fakeSummaryRepo) List(ctx context.Context, filter domain.SummaryFilter) ([]domain.DaySummary, int64, error) {
	if f.stored == nil {
		return nil, 0, nil
	}
	return []domain.DaySummary{*f.stored}, 1, nil
}

func (f *fakeSummaryRepo) LockDay(ctx context.Context, userID string, workDate time.Time) error {
	f.calls = append(f.calls, "lock")
	return nil
}

type fakePolicyRepo struct {
	missing bool
}

func (f *fakePolicyRepo) GetActive(ctx context.Context, date time.Time) (domain.PolicyConfig, error) {
	if f.missing {
		return domain.PolicyConfig{}, domain.ErrPolicyConfigMissing
	}
	return testPolicy(), nil
}

func newTestOrchestrator(punches *fakePunchRepo, summaries *fakeSummaryRepo) *WorktimeServiceImpl {
	svc := newTestService(punches, &fakeHolidayRepo{}, &fakeLeaveRepo{})
	svc.summaryRepo = summaries
	svc.policyRepo = &fakePolicyRepo{}
	svc.withTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func TestRecalculateWritesSummary(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	summaries := &fakeSummaryRepo{}
	svc := newTestOrchestrator(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 19, 0, false)},
		summaries,
	)

	saved, err := svc.Recalculate(ctx, "u-1", day)
	require.NoError(t, err)

	assert.Equal(t, 8.0, saved.BasicHours)
	assert.Equal(t, 1.0, saved.OvertimeHours)
	assert.True(t, saved.AutoCalculated)
	require.NotNil(t, summaries.stored)

	// Each run takes the per-key lock, reads the current row, then writes.
	assert.Equal(t, []string{"lock", "get", "upsert"}, summaries.calls)
}

func TestRecalculateKeepsManualOverride(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	overridden := domain.DaySummary{
		ID:             "sum-1",
		UserID:         "u-1",
		WorkDate:       day,
		BasicHours:     7.5,
		WorkStatusTag:  domain.StatusComplete,
		AutoCalculated: false,
	}
	summaries := &fakeSummaryRepo{stored: &overridden}
	svc := newTestOrchestrator(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 23, 0, false)},
		summaries,
	)

	saved, err := svc.Recalculate(ctx, "u-1", day)
	assert.ErrorIs(t, err, domain.ErrManuallyOverridden)

	// The overridden row comes back untouched and nothing is written.
	assert.Equal(t, overridden, saved)
	assert.Equal(t, overridden, *summaries.stored)
	assert.NotContains(t, summaries.calls, "upsert")
}

func TestRecalculateForcedOverwritesManualOverride(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	summaries := &fakeSummaryRepo{stored: &domain.DaySummary{
		ID:             "sum-1",
		UserID:         "u-1",
		WorkDate:       day,
		BasicHours:     7.5,
		WorkStatusTag:  domain.StatusComplete,
		AutoCalculated: false,
	}}
	svc := newTestOrchestrator(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 19, 0, false)},
		summaries,
	)

	saved, err := svc.RecalculateForced(ctx, "u-1", day)
	require.NoError(t, err)

	assert.Equal(t, 8.0, saved.BasicHours)
	assert.True(t, saved.AutoCalculated)
	assert.Contains(t, summaries.calls, "upsert")
}

func TestRecalculateTwiceProducesIdenticalRows(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	summaries := &fakeSummaryRepo{}
	svc := newTestOrchestrator(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 19, 0, false)},
		summaries,
	)

	first, err := svc.Recalculate(ctx, "u-1", day)
	require.NoError(t, err)
	second, err := svc.Recalculate(ctx, "u-1", day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecalculateAbortsOnMissingPolicy(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	summaries := &fakeSummaryRepo{}
	svc := newTestOrchestrator(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 19, 0, false)},
		summaries,
	)
	svc.policyRepo = &fakePolicyRepo{missing: true}

	_, err := svc.Recalculate(ctx, "u-1", day)
	assert.ErrorIs(t, err, domain.ErrPolicyConfigMissing)
	assert.Nil(t, summaries.stored)
}

func TestBuildSummaryZeroLengthSession(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.June, 3)

	// Checkout in the same minute as check-in: a worked-zero-hours day, not
	// an ordering anomaly.
	svc := newTestService(
		&fakePunchRepo{events: sessionPunches(day, 9, 0, 9, 0, false)},
		&fakeHolidayRepo{},
		&fakeLeaveRepo{},
	)

	sum, err := svc.buildSummary(ctx, "u-1", day, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, sum.WorkStatusTag)
	assert.Equal(t, 0.0, sum.BasicHours)
	assert.Equal(t, 0.0, sum.OvertimeHours)
	assert.Equal(t, 0.0, sum.NightHours)
}
