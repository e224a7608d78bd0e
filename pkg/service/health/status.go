/*
 * @Description: 记录网关最近一次健康检查的结果
 */
package health

import (
	"sync"
	"time"
)

// Report 健康检查结果快照
type Report struct {
	Gateway   string     `json:"gateway"`
	Healthy   bool       `json:"healthy"`
	CheckedAt *time.Time `json:"checked_at"`
	Error     string     `json:"error,omitempty"`
}

// Status 保存最近一次检查结果，可并发读写
type Status struct {
	mu     sync.RWMutex
	report Report
}

// NewStatus 创建状态，尚未检查时 Healthy 为 false 且 CheckedAt 为空
func NewStatus(gateway string) *Status {
	return &Status{report: Report{Gateway: gateway}}
}

// Record 记录一次检查结果，err 为 nil 表示健康
func (s *Status) Record(err error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.report.CheckedAt = &now
	s.report.Healthy = err == nil
	s.report.Error = ""
	if err != nil {
		s.report.Error = err.Error()
	}
}

// Snapshot 返回当前结果的副本
func (s *Status) Snapshot() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}
