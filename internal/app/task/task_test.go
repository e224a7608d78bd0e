package task

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/nest-api-demo/pkg/service/health"
)

type fakePinger struct {
	err   atomic.Value
	calls atomic.Int32
}

func (p *fakePinger) Ping(ctx context.Context, path string) error {
	p.calls.Add(1)
	if v := p.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestGatewayHealthCheckJob(t *testing.T) {
	var buf bytes.Buffer
	pinger := &fakePinger{}
	status := health.NewStatus("http://gw")
	job := NewGatewayHealthCheckJob(pinger, "/database/users", status, testLogger(&buf))

	job.Run()
	assert.True(t, status.Snapshot().Healthy)
	assert.Contains(t, buf.String(), "Gateway is healthy")

	buf.Reset()
	job.Run()
	assert.Empty(t, buf.String(), "状态未变化时不输出日志")

	pinger.err.Store(errors.New("connection refused"))
	job.Run()
	report := status.Snapshot()
	assert.False(t, report.Healthy)
	assert.Equal(t, "connection refused", report.Error)
	assert.Contains(t, buf.String(), "Gateway is unhealthy")
	assert.Equal(t, int32(3), pinger.calls.Load())
}

type panicJob struct{}

func (panicJob) Run()         { panic("boom") }
func (panicJob) Name() string { return "panicJob" }

func TestWrappers(t *testing.T) {
	var buf bytes.Buffer
	logger := testLogger(&buf)

	wrapped := cron.NewChain(NewPanicRecoveryWrapper(logger), NewLoggingWrapper(logger)).Then(panicJob{})
	assert.NotPanics(t, wrapped.Run)
	assert.Contains(t, buf.String(), "Job panicked")
	assert.Contains(t, buf.String(), "job_name=panicJob")
	assert.Contains(t, buf.String(), "Job execution started")
}

func TestSchedulerRunsJobsOnStart(t *testing.T) {
	pinger := &fakePinger{}
	status := health.NewStatus("http://gw")

	s := NewScheduler()
	require.NoError(t, s.Register("0 0 0 1 1 *", NewGatewayHealthCheckJob(pinger, "/", status, s.Logger())))
	assert.Error(t, s.Register("not a cron", NewGatewayHealthCheckJob(pinger, "/", status, s.Logger())))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return pinger.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.True(t, status.Snapshot().Healthy)
}
