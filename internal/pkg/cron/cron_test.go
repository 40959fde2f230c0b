package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunRecordsOutcome(t *testing.T) {
	s := New(zap.NewNop())
	s.Register(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error { return nil }})
	s.Register(Job{Name: "bad", Interval: time.Hour, Fn: func(context.Context) error { return errors.New("nope") }})

	snap, err := s.Run(context.Background(), "ok")
	require.NoError(t, err)
	require.Equal(t, StatusOK, snap.Status)
	snap, err = s.Run(context.Background(), "bad")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, snap.Status)
	_, err = s.Run(context.Background(), "missing")
	require.ErrorIs(t, err, ErrJobNotFound)

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, "bad", list[0].Name)
	require.Equal(t, StatusFailed, list[0].Status)
	require.Equal(t, "nope", list[0].Message)
	require.Equal(t, StatusOK, list[1].Status)
	require.NotNil(t, list[1].LastRunAt)
}

func TestStartTicksUntilCancelled(t *testing.T) {
	var runs atomic.Int32
	s := New(zap.NewNop())
	s.Register(Job{Name: "tick", Interval: 10 * time.Millisecond, Fn: func(context.Context) error {
		runs.Add(1)
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
}
