/*
 * @Description: 监听文章写事件，清理网关文章列表的响应缓存
 */
package listener

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/nest-api-demo/internal/infra/gateway"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/event"
)

// Invalidator 删除指定网关路径的响应缓存
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}

// PostCacheListener 在文章创建或删除后让文章列表缓存失效
type PostCacheListener struct {
	invalidator Invalidator
}

// NewPostCacheListener 创建监听器并订阅文章事件
func NewPostCacheListener(eventBus *event.EventBus, invalidator Invalidator) *PostCacheListener {
	listener := &PostCacheListener{invalidator: invalidator}
	eventBus.Subscribe(event.PostCreated, listener.handlePostCreated)
	eventBus.Subscribe(event.PostDeleted, listener.handlePostDeleted)
	return listener
}

func (l *PostCacheListener) handlePostCreated(payload interface{}) {
	l.invalidate(event.PostCreated)
}

func (l *PostCacheListener) handlePostDeleted(payload interface{}) {
	if id, ok := payload.(int); ok {
		log.Printf("[PostCacheListener] 文章 %d 已删除", id)
	}
	l.invalidate(event.PostDeleted)
}

func (l *PostCacheListener) invalidate(topic event.Topic) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.invalidator.Invalidate(ctx, gateway.PathPosts); err != nil {
		log.Printf("[PostCacheListener] 错误: 处理 %s 事件时清理文章列表缓存失败: %v", topic, err)
	}
}
