package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceExecutesAllJobs(t *testing.T) {
	s := NewScheduler()

	var ran []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "second")
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	// A failing job does not stop the remaining ones.
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestRunOncePassesContext(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sawCancelled bool
	s.AddJob("ctx-check", time.Hour, func(ctx context.Context) error {
		sawCancelled = ctx.Err() != nil
		return ctx.Err()
	})

	s.RunOnce(ctx)
	assert.True(t, sawCancelled)
}

func TestExecuteJobContainsPanic(t *testing.T) {
	s := NewScheduler()
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		panic("job bug")
	})
	s.AddJob("after", time.Hour, func(ctx context.Context) error {
		return nil
	})

	assert.NotPanics(t, func() {
		s.RunOnce(context.Background())
	})
}
