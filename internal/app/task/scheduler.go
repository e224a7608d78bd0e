package task

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"
)

// Scheduler 封装了 cron 实例，负责任务的注册、启动和停止
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	entries []cron.EntryID
}

// NewScheduler 创建调度器，所有任务都带有 panic 恢复与结构化日志装饰
func NewScheduler() *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	return &Scheduler{cron: c, logger: logger}
}

// Logger 返回调度器的 logger，任务可以复用它
func (s *Scheduler) Logger() *slog.Logger {
	return s.logger
}

// Register 按 cron 表达式（含秒）注册任务
func (s *Scheduler) Register(spec string, job Job) error {
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		s.logger.Error("Failed to add job", slog.String("job_name", job.Name()), slog.Any("error", err))
		return fmt.Errorf("注册定时任务 %s 失败: %w", job.Name(), err)
	}
	s.entries = append(s.entries, id)
	s.logger.Info("-> Successfully registered job", slog.String("job_name", job.Name()), slog.String("schedule", spec))
	return nil
}

// Start 启动调度器，并立即在后台执行一次所有已注册的任务
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.", slog.Int("jobs", len(s.entries)))
	s.cron.Start()
	for _, id := range s.entries {
		if entry := s.cron.Entry(id); entry.WrappedJob != nil {
			go entry.WrappedJob.Run()
		}
	}
}

// Stop 优雅地停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
