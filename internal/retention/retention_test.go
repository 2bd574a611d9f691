package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/permitpal/internal/store"
)

type fakePruner struct {
	before  time.Time
	removed int64
	err     error
}

func (f *fakePruner) PruneLLMEvents(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return f.removed, f.err
}

func TestRunOnceUsesWindow(t *testing.T) {
	p := &fakePruner{removed: 7}
	j := New(p, Config{Window: 48 * time.Hour}, nil)
	now := time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }

	n, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, now.Add(-48*time.Hour), p.before)
}

func TestDefaults(t *testing.T) {
	j := New(&fakePruner{}, Config{}, nil)
	assert.Equal(t, DefaultWindow, j.cfg.Window)
	assert.Equal(t, "03:00", j.cfg.At)
}

func TestRunOnceError(t *testing.T) {
	j := New(&fakePruner{err: errors.New("db locked")}, Config{}, nil)
	_, err := j.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}

func TestStartSchedulesDailyRun(t *testing.T) {
	j := New(&fakePruner{}, Config{At: "04:30"}, nil)
	require.NoError(t, j.Start(context.Background()))
	defer j.Stop()

	next := j.NextRun().UTC()
	assert.Equal(t, 4, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.WithinDuration(t, time.Now(), next, 24*time.Hour)
}

func TestStartRejectsBadTime(t *testing.T) {
	j := New(&fakePruner{}, Config{At: "25:99"}, nil)
	assert.Error(t, j.Start(context.Background()))
}

func TestRunOnceAgainstStore(t *testing.T) {
	s, err := store.Open(store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "chat", Success: true,
	}))

	j := New(s.EventRepo(), Config{}, nil)
	n, err := j.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "fresh event is inside the window")

	j.now = func() time.Time { return time.Now().Add(DefaultWindow + time.Hour) }
	n, err = j.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
