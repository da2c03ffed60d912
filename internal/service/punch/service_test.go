package punch

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/nexhr/worktime-backend-go/internal/domain/punch"
	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
)

type fakeEventRepo struct {
	events []domain.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) ListByUserAndDate(ctx context.Context, userID string, workDate time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		if e.UserID == userID && e.WorkDate.Equal(workDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListOpenDays(ctx context.Context, since time.Time) ([]domain.DayKey, error) {
	return nil, nil
}

type fakeWorktimeService struct {
	worktime.Service

	recalcErr   error
	lastUserID  string
	lastDate    time.Time
	recalcCalls int
}

func (f *fakeWorktimeService) Recalculate(ctx context.Context, userID string, workDate time.Time) (worktime.DaySummary, error) {
	f.recalcCalls++
	f.lastUserID = userID
	f.lastDate = workDate
	if f.recalcErr != nil {
		return worktime.DaySummary{}, f.recalcErr
	}
	return worktime.DaySummary{UserID: userID, WorkDate: workDate, WorkStatusTag: worktime.StatusComplete}, nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestPunchService(repo *fakeEventRepo, wt *fakeWorktimeService, at time.Time) *PunchServiceImpl {
	return &PunchServiceImpl{
		punchRepo:       repo,
		worktimeService: wt,
		now:             func() time.Time { return at },
	}
}

func TestRecordPunchAssignsCurrentDate(t *testing.T) {
	repo := &fakeEventRepo{}
	wt := &fakeWorktimeService{}
	svc := newTestPunchService(repo, wt, time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC))

	resp, err := svc.RecordPunch(authedContext(t, "u-1"), domain.RecordPunchRequest{Kind: "check_in"})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-03", resp.Punch.WorkDate)
	assert.Equal(t, "u-1", resp.Punch.UserID)
	assert.False(t, resp.Punch.IsManual)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 1, wt.recalcCalls)
}

func TestRecordPunchMorningCheckoutClosesYesterday(t *testing.T) {
	yesterday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeEventRepo{events: []domain.Event{{
		ID: "e-1", UserID: "u-1", WorkDate: yesterday,
		PunchAt: time.Date(2025, time.June, 2, 20, 0, 0, 0, time.UTC),
		Kind:    domain.KindCheckIn,
	}}}
	wt := &fakeWorktimeService{}
	svc := newTestPunchService(repo, wt, time.Date(2025, time.June, 3, 5, 30, 0, 0, time.UTC))

	resp, err := svc.RecordPunch(authedContext(t, "u-1"), domain.RecordPunchRequest{Kind: "check_out"})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", resp.Punch.WorkDate)
	assert.Equal(t, yesterday, wt.lastDate)
}

func TestRecordPunchMorningCheckoutWithoutOpenDay(t *testing.T) {
	repo := &fakeEventRepo{}
	wt := &fakeWorktimeService{}
	svc := newTestPunchService(repo, wt, time.Date(2025, time.June, 3, 5, 30, 0, 0, time.UTC))

	resp, err := svc.RecordPunch(authedContext(t, "u-1"), domain.RecordPunchRequest{Kind: "check_out"})
	require.NoError(t, err)

	// Nothing open yesterday, so the punch stays on today's date.
	assert.Equal(t, "2025-06-03", resp.Punch.WorkDate)
}

func TestRecordPunchManualOverrideKeepsPunch(t *testing.T) {
	repo := &fakeEventRepo{}
	wt := &fakeWorktimeService{recalcErr: worktime.ErrManuallyOverridden}
	svc := newTestPunchService(repo, wt, time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC))

	resp, err := svc.RecordPunch(authedContext(t, "u-1"), domain.RecordPunchRequest{Kind: "check_in"})
	require.NoError(t, err)

	assert.Nil(t, resp.Summary)
	assert.Len(t, repo.events, 1)
}

func TestRecordPunchRejectsInvalidKind(t *testing.T) {
	svc := newTestPunchService(&fakeEventRepo{}, &fakeWorktimeService{}, time.Now())

	_, err := svc.RecordPunch(authedContext(t, "u-1"), domain.RecordPunchRequest{Kind: "lunch"})
	assert.Error(t, err)
}

func TestRecordManualPunch(t *testing.T) {
	repo := &fakeEventRepo{}
	wt := &fakeWorktimeService{}
	svc := newTestPunchService(repo, wt, time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC))

	resp, err := svc.RecordManualPunch(context.Background(), domain.ManualPunchRequest{
		UserID:   "u-2",
		WorkDate: "2025-06-03",
		Time:     "18:30",
		Kind:     "check_out",
	})
	require.NoError(t, err)

	assert.True(t, resp.Punch.IsManual)
	assert.Equal(t, "2025-06-03", resp.Punch.WorkDate)
	assert.Equal(t, "u-2", wt.lastUserID)

	require.Len(t, repo.events, 1)
	assert.Equal(t, 18, repo.events[0].PunchAt.Hour())
	assert.Equal(t, 30, repo.events[0].PunchAt.Minute())
}

func TestRecordManualPunchRejectsFutureDate(t *testing.T) {
	svc := newTestPunchService(&fakeEventRepo{}, &fakeWorktimeService{}, time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC))

	_, err := svc.RecordManualPunch(context.Background(), domain.ManualPunchRequest{
		UserID:   "u-2",
		WorkDate: "2025-06-11",
		Time:     "09:00",
		Kind:     "check_in",
	})
	assert.ErrorIs(t, err, domain.ErrFutureDate)
}
