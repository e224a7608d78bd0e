package constant

import "github.com/anzhiyu-c/nest-api-demo/internal/pkg/event"

// EventTopic 事件主题类型
type EventTopic = event.Topic

// 导出事件主题常量，供外部使用
const (
	// EventPostCreated 文章创建成功事件，payload 为 *model.Post 或 nil
	EventPostCreated EventTopic = event.PostCreated
	// EventPostDeleted 文章删除成功事件，payload 为文章 ID (int)
	EventPostDeleted EventTopic = event.PostDeleted
)
