/*
 * @Description: 页面状态存储，按浏览器 Cookie 把每个页面的本地状态保存在缓存中
 */
package viewstate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anzhiyu-c/nest-api-demo/pkg/service/utility"
)

const (
	// CookieName 保存页面 ID 的 Cookie 名称
	CookieName = "nestdemo_view"

	// DefaultTTL 页面状态的默认保留时间
	DefaultTTL = 30 * time.Minute

	// 页面状态名称
	NamePostList   = "posts"
	NamePostCreate = "create"
	NameFlash      = "flash"
)

// Store 定义了页面状态的读写接口
type Store interface {
	// Load 读取状态到 out，状态不存在或已过期时返回 false
	Load(ctx context.Context, viewID, name string, out interface{}) (bool, error)
	Save(ctx context.Context, viewID, name string, value interface{}) error
	Delete(ctx context.Context, viewID, name string) error
}

type cacheStore struct {
	cache utility.CacheService
	ttl   time.Duration
}

// NewStore 创建基于 CacheService 的页面状态存储，ttl <= 0 时使用默认值
func NewStore(cache utility.CacheService, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &cacheStore{cache: cache, ttl: ttl}
}

func stateKey(viewID, name string) string {
	return fmt.Sprintf("view:%s:%s", viewID, name)
}

func (s *cacheStore) Load(ctx context.Context, viewID, name string, out interface{}) (bool, error) {
	key := stateKey(viewID, name)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("读取页面状态失败: %w", err)
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// 状态损坏时当作不存在处理，由调用方重新加载
		_ = s.cache.Delete(ctx, key)
		return false, nil
	}
	// 滑动过期
	_ = s.cache.Expire(ctx, key, s.ttl)
	return true, nil
}

func (s *cacheStore) Save(ctx context.Context, viewID, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化页面状态失败: %w", err)
	}
	if err := s.cache.Set(ctx, stateKey(viewID, name), string(data), s.ttl); err != nil {
		return fmt.Errorf("保存页面状态失败: %w", err)
	}
	return nil
}

func (s *cacheStore) Delete(ctx context.Context, viewID, name string) error {
	return s.cache.Delete(ctx, stateKey(viewID, name))
}

// EnsureViewID 读取请求中的页面 ID，没有或格式不正确时生成新的并写入 Cookie
func EnsureViewID(c *gin.Context) string {
	if id, err := c.Cookie(CookieName); err == nil {
		if _, parseErr := uuid.Parse(id); parseErr == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, 0, "/", "", false, true)
	return id
}

// ContextKey 是在 gin.Context 中保存页面 ID 的键
const ContextKey = "view_id"

// ViewID 返回当前请求的页面 ID，优先使用中间件写入上下文的值
func ViewID(c *gin.Context) string {
	if v, ok := c.Get(ContextKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	id := EnsureViewID(c)
	c.Set(ContextKey, id)
	return id
}
