// Package web 内嵌页面模板与静态资源
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/strutil"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/utils"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/github"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/post"
)

//go:embed templates/*.html static/*
var FS embed.FS

// PostItem 是列表页上一篇文章的展示数据
type PostItem struct {
	PublicID   string
	Title      string
	AuthorName string
	CreatedAt  string
	Published  bool
	Excerpt    string
}

// PageData 是所有页面共用的模板数据，各页面只填写自己用到的字段
type PageData struct {
	Title     string
	Path      string
	FormToken string
	Flash     *model.Flash
	// Error 页面顶部的错误横幅；Retry 为重试按钮的地址，为空时不显示
	Error string
	Retry string

	// 文章列表页
	Posts   []PostItem
	Authors []model.Author
	Filter  post.Filter

	// 创建文章页
	Form             model.PostForm
	Errors           model.FieldErrors
	ContentMinLength int

	// GitHub 仓库页
	Repositories []model.GitHubRepository

	// 演示列表页
	Placeholders []model.PlaceholderPost
	FeedURL      string

	// 错误页
	Status  int
	Message string
}

var functions = template.FuncMap{
	"formatDate": utils.FormatDate,
	"langColor":  github.LanguageColor,
	"runeLen":    strutil.Len,
}

// ParseTemplates 解析 templates 目录下的所有页面
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(functions).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	return tmpl, nil
}

// Static 返回静态资源子目录
func Static(fsys fs.FS) (fs.FS, error) {
	return fs.Sub(fsys, "static")
}
