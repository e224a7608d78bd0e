package post

import (
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
)

// Filter 是文章列表页的两个筛选条件
type Filter struct {
	// Author 为 "all" 或作者 ID 的字符串形式
	Author string
	// Status 为 all | published | draft
	Status string
}

// NewFilter 规范化查询参数，空值和未知的状态值都视为 "all"
func NewFilter(author, status string) Filter {
	if author == "" {
		author = constant.AuthorAll
	}
	switch status {
	case constant.StatusPublished, constant.StatusDraft:
	default:
		status = constant.StatusAll
	}
	return Filter{Author: author, Status: status}
}

// IsActive 是否设置了任意筛选条件
func (f Filter) IsActive() bool {
	return f.Author != constant.AuthorAll || f.Status != constant.StatusAll
}

// Match 判断单篇文章是否同时满足作者和状态条件
func (f Filter) Match(p model.Post) bool {
	authorMatch := f.Author == constant.AuthorAll || p.AuthorKey() == f.Author

	var statusMatch bool
	switch f.Status {
	case constant.StatusPublished:
		statusMatch = p.Published
	case constant.StatusDraft:
		statusMatch = !p.Published
	default:
		statusMatch = true
	}

	return authorMatch && statusMatch
}

// Apply 返回满足条件的文章，保持原有顺序，不修改输入
func (f Filter) Apply(posts []model.Post) []model.Post {
	result := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if f.Match(p) {
			result = append(result, p)
		}
	}
	return result
}
