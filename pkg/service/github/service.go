package github

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
)

// MsgFetchFailed 仓库列表加载失败时的提示
const MsgFetchFailed = "获取仓库列表失败"

// Gateway 仓库服务依赖的网关能力
type Gateway interface {
	ListRepositories(ctx context.Context) ([]model.GitHubRepository, error)
}

// Service GitHub 仓库服务，每次访问页面都从网关重新获取
type Service struct {
	gateway Gateway
}

// NewService 创建仓库服务
func NewService(gw Gateway) *Service {
	return &Service{gateway: gw}
}

// List 获取仓库列表
func (s *Service) List(ctx context.Context) ([]model.GitHubRepository, error) {
	repos, err := s.gateway.ListRepositories(ctx)
	if err != nil {
		return []model.GitHubRepository{}, fmt.Errorf("%s: %w", MsgFetchFailed, err)
	}
	if repos == nil {
		repos = []model.GitHubRepository{}
	}
	return repos, nil
}

var languageColors = map[string]string{
	"JavaScript": "yellow",
	"TypeScript": "blue",
	"Python":     "green",
	"Java":       "red",
	"Go":         "cyan",
	"Rust":       "orange",
}

// LanguageColor 返回编程语言对应的颜色名，未知语言为 gray
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return "gray"
}
