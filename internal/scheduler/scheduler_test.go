package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-history/pkg/logger"
)

type countingRefresher struct {
	calls     int32
	lastLimit int32
	err       error
}

func (c *countingRefresher) RefreshRecent(_ context.Context, limit int) (int, error) {
	atomic.AddInt32(&c.calls, 1)
	atomic.StoreInt32(&c.lastLimit, int32(limit))
	return limit, c.err
}

func testLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", io.Discard)
}

func TestRefresher_RunOnce(t *testing.T) {
	svc := &countingRefresher{}
	r := New(svc, time.Hour, 20, testLogger())

	r.RunOnce()

	assert.EqualValues(t, 1, atomic.LoadInt32(&svc.calls))
	assert.EqualValues(t, 20, atomic.LoadInt32(&svc.lastLimit))
}

func TestRefresher_RunOnceToleratesErrors(t *testing.T) {
	svc := &countingRefresher{err: errors.New("db gone")}
	r := New(svc, time.Hour, 5, testLogger())

	assert.NotPanics(t, r.RunOnce)
	assert.EqualValues(t, 1, atomic.LoadInt32(&svc.calls))
}

func TestRefresher_DefaultInterval(t *testing.T) {
	r := New(&countingRefresher{}, 0, 1, testLogger())
	assert.Equal(t, defaultInterval, r.interval)
}

func TestRefresher_RunsOnSchedule(t *testing.T) {
	svc := &countingRefresher{}
	r := New(svc, time.Second, 3, testLogger())

	require.NoError(t, r.Start())
	defer r.Stop()

	// nothing runs at start
	assert.Zero(t, atomic.LoadInt32(&svc.calls))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&svc.calls) >= 1
	}, 3*time.Second, 50*time.Millisecond)
}
