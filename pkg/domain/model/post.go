package model

import (
	"strconv"
	"strings"
	"time"
)

// --- 核心领域对象 (Domain Object) ---

// Post 是网关返回的文章模型。ID 与时间戳由网关分配，本系统只读。
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  int       `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *Author   `json:"author,omitempty"`
}

// AuthorKey 返回用于作者筛选比较的字符串形式
func (p Post) AuthorKey() string {
	return strconv.Itoa(p.AuthorID)
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CreatePostRequest 是发送给网关的创建文章请求体
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  int    `json:"authorId"`
	Published bool   `json:"published"`
}

// PostForm 是创建文章页面提交的表单
type PostForm struct {
	Title     string `form:"title"`
	Content   string `form:"content"`
	AuthorID  string `form:"authorId"`
	Published bool   `form:"published"`
}

// IsDirty 表单是否已经填写了标题或内容
func (f PostForm) IsDirty() bool {
	return f.Title != "" || f.Content != ""
}

// ParsedAuthorID 解析去掉首尾空白后的作者 ID，无法解析时为 0
func (f PostForm) ParsedAuthorID() int {
	id, err := strconv.Atoi(strings.TrimSpace(f.AuthorID))
	if err != nil {
		return 0
	}
	return id
}

// ToCreateRequest 将表单转换为网关请求
func (f PostForm) ToCreateRequest() CreatePostRequest {
	return CreatePostRequest{
		Title:     f.Title,
		Content:   f.Content,
		AuthorID:  f.ParsedAuthorID(),
		Published: f.Published,
	}
}

// FieldErrors 字段名 -> 错误提示
type FieldErrors map[string]string

// HasErrors 是否存在校验错误
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}
