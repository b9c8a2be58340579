package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() Options {
	return Options{
		Total: 200 * time.Millisecond,
		Step:  30 * time.Millisecond,
		Tick:  5 * time.Millisecond,
	}
}

func TestPercent(t *testing.T) {
	total := 7000 * time.Millisecond
	assert.Equal(t, 0, percent(0, total))
	assert.Equal(t, 50, percent(3500*time.Millisecond, total))
	assert.Equal(t, 1, percent(80*time.Millisecond, total))
	assert.Equal(t, 100, percent(9*time.Second, total))
}

func TestRun_Completes(t *testing.T) {
	var updates []Update
	err := Run(context.Background(), "job-1", fastOptions(), func(u Update) {
		updates = append(updates, u)
	})
	require.NoError(t, err)
	require.NotEmpty(t, updates)

	first := updates[0]
	assert.Equal(t, 0, first.Progress)
	assert.Equal(t, 0, first.ActiveStep)
	assert.Equal(t, StepActive, first.Steps[0].Status)
	assert.Equal(t, StepPending, first.Steps[1].Status)

	last := updates[len(updates)-1]
	assert.True(t, last.Complete)
	assert.Equal(t, 100, last.Progress)
	assert.Equal(t, "job-1", last.JobID)
	assert.Equal(t, len(Steps)-1, last.ActiveStep)
	for _, s := range last.Steps {
		assert.Equal(t, StepCompleted, s.Status)
	}

	prev := 0
	for _, u := range updates {
		assert.GreaterOrEqual(t, u.Progress, prev)
		assert.LessOrEqual(t, u.ActiveStep, len(Steps)-1)
		prev = u.Progress
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := DefaultOptions()

	var calls int
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "job-2", opts, func(Update) { calls++ })
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("run did not stop after cancel")
	}
	assert.GreaterOrEqual(t, calls, 1)
}

func TestRun_InvalidOptions(t *testing.T) {
	err := Run(context.Background(), "job", Options{}, func(Update) {})
	assert.Error(t, err)
}

func TestStream_DeliversFinalUpdate(t *testing.T) {
	ch, err := Stream(context.Background(), "job-3", fastOptions())
	require.NoError(t, err)

	var last Update
	for u := range ch {
		last = u
	}
	assert.True(t, last.Complete)
	assert.Equal(t, 100, last.Progress)
}
