package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/pkg/logger"
)

func noop(context.Context) error { return nil }

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(logger.Discard())
	assert.False(t, s.IsRunning())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_AddAndRemoveTasks(t *testing.T) {
	s := NewScheduler(logger.Discard())
	assert.Empty(t, s.ListTasks())

	require.NoError(t, s.AddIntervalTask("refresh", time.Minute, noop))
	require.NoError(t, s.AddCronTask("cleanup", "0 3 * * *", noop))
	assert.Equal(t, []string{"cleanup", "refresh"}, s.ListTasks())

	// Same name replaces the entry.
	require.NoError(t, s.AddIntervalTask("refresh", time.Hour, noop))
	assert.Len(t, s.ListTasks(), 2)

	s.RemoveTask("refresh")
	assert.Equal(t, []string{"cleanup"}, s.ListTasks())
	s.RemoveTask("missing")
}

func TestScheduler_InvalidCron(t *testing.T) {
	s := NewScheduler(logger.Discard())

	assert.Error(t, s.AddCronTask("bad", "every tuesday", noop))
	assert.Empty(t, s.ListTasks())
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler(logger.Discard())
	var runs atomic.Int32

	require.NoError(t, s.AddIntervalTask("count", time.Hour, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		runs.Add(1)
		return nil
	}))
	require.NoError(t, s.AddIntervalTask("fail", time.Hour, func(context.Context) error {
		return errors.New("boom")
	}))

	assert.True(t, s.RunNow("count"))
	assert.True(t, s.RunNow("fail"))
	assert.False(t, s.RunNow("missing"))
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_GetTaskInfo(t *testing.T) {
	s := NewScheduler(logger.Discard())
	require.NoError(t, s.AddIntervalTask("b", time.Minute, noop))
	require.NoError(t, s.AddIntervalTask("a", time.Minute, noop))

	info := s.GetTaskInfo()
	require.Len(t, info, 2)
	assert.Equal(t, "a", info[0].Name)
	assert.Equal(t, "b", info[1].Name)
}
