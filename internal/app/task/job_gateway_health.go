package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/anzhiyu-c/nest-api-demo/pkg/service/health"
)

// Pinger 是健康检查所需的网关能力
type Pinger interface {
	Ping(ctx context.Context, path string) error
}

// GatewayHealthCheckJob 定期请求网关的健康检查路径并记录结果
type GatewayHealthCheckJob struct {
	pinger  Pinger
	path    string
	status  *health.Status
	timeout time.Duration
	logger  *slog.Logger
}

// NewGatewayHealthCheckJob 创建网关健康检查任务
func NewGatewayHealthCheckJob(pinger Pinger, path string, status *health.Status, logger *slog.Logger) *GatewayHealthCheckJob {
	return &GatewayHealthCheckJob{
		pinger:  pinger,
		path:    path,
		status:  status,
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

func (j *GatewayHealthCheckJob) Name() string {
	return "GatewayHealthCheckJob"
}

// Run 执行一次检查，只在健康状态变化时输出日志
func (j *GatewayHealthCheckJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	before := j.status.Snapshot()
	err := j.pinger.Ping(ctx, j.path)
	j.status.Record(err)

	switch {
	case err != nil && (before.Healthy || before.CheckedAt == nil):
		j.logger.Warn("Gateway is unhealthy", slog.String("path", j.path), slog.Any("error", err))
	case err == nil && !before.Healthy:
		j.logger.Info("Gateway is healthy", slog.String("path", j.path))
	}
}
