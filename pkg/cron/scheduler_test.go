package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsOnInterval(t *testing.T) {
	s := NewScheduler(nil)
	var runs atomic.Int32
	s.AddJob(Job{Name: "tick", Interval: 10 * time.Millisecond, Fn: func(context.Context) error {
		runs.Add(1)
		return nil
	}})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestSchedulerRunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler(nil)
	var second atomic.Bool
	s.AddJob(Job{Name: "fails", Interval: time.Hour, Fn: func(context.Context) error { return errors.New("boom") }})
	s.AddJob(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error {
		second.Store(true)
		return nil
	}})
	s.AddJob(Job{Name: "ignored", Interval: 0, Fn: func(context.Context) error { return nil }})

	s.RunOnce(context.Background())
	assert.True(t, second.Load())
	assert.Len(t, s.jobs, 2)
}
