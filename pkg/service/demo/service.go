/*
 * @Description: 演示页使用的占位数据源
 */
package demo

import (
	"context"
	"log"

	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
)

// DefaultPlaceholderURL 默认的占位数据源
const DefaultPlaceholderURL = "https://jsonplaceholder.typicode.com/posts"

// DefaultLimit 演示页显示的条数
const DefaultLimit = 5

// Fetcher 请求任意地址并解码 JSON
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, out interface{}) error
}

// Service 占位数据服务
type Service struct {
	fetcher Fetcher
	url     string
}

// NewService 创建占位数据服务，url 为空时使用 DefaultPlaceholderURL
func NewService(fetcher Fetcher, url string) *Service {
	if url == "" {
		url = DefaultPlaceholderURL
	}
	return &Service{fetcher: fetcher, url: url}
}

// URL 返回数据源地址，客户端渲染的演示页直接在浏览器中请求它
func (s *Service) URL() string {
	return s.url
}

// Latest 返回前 limit 条占位文章，失败时记录日志并返回空列表
func (s *Service) Latest(ctx context.Context, limit int) []model.PlaceholderPost {
	var posts []model.PlaceholderPost
	if err := s.fetcher.FetchJSON(ctx, s.url, &posts); err != nil {
		log.Printf("⚠️  请求占位数据失败: %v", err)
		return []model.PlaceholderPost{}
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	if posts == nil {
		posts = []model.PlaceholderPost{}
	}
	return posts
}
