package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/post"
)

func TestParseEmbeddedTemplates(t *testing.T) {
	tmpl, err := ParseTemplates(FS)
	require.NoError(t, err)

	for _, name := range []string{"index.html", "posts.html", "post_create.html", "repositories.html", "list_server.html", "list_client.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	static, err := Static(FS)
	require.NoError(t, err)
	_, err = static.Open("style.css")
	assert.NoError(t, err)
}

func TestRenderPosts(t *testing.T) {
	tmpl, err := ParseTemplates(FS)
	require.NoError(t, err)

	data := PageData{
		Title:     "文章列表",
		Path:      "/posts",
		FormToken: "tok",
		Filter:    post.NewFilter("5", "draft"),
		Authors:   []model.Author{{ID: 5, Name: "张三"}, {ID: 6, Email: "li@example.com"}},
		Posts: []PostItem{
			{PublicID: "abcd", Title: "<b>标题</b>", AuthorName: "张三", CreatedAt: "2024年1月2日", Excerpt: "摘要"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "posts.html", data))
	html := buf.String()

	assert.Contains(t, html, "共 1 篇文章")
	assert.Contains(t, html, "&lt;b&gt;标题&lt;/b&gt;", "标题需要转义")
	assert.Contains(t, html, `action="/posts/abcd/delete"`)
	assert.Contains(t, html, `<option value="5" selected>张三</option>`)
	assert.Contains(t, html, `<option value="draft" selected>草稿</option>`)
	assert.Contains(t, html, "确定要删除这篇文章吗？")
	assert.Contains(t, html, `name="_token" value="tok"`)
}

func TestRenderEmptyStates(t *testing.T) {
	tmpl, err := ParseTemplates(FS)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "posts.html", PageData{Filter: post.NewFilter("", "")}))
	assert.Contains(t, buf.String(), "创建第一篇文章 →")

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "repositories.html", PageData{}))
	assert.Contains(t, buf.String(), "暂无仓库数据")
}

func TestRenderRepositories(t *testing.T) {
	tmpl, err := ParseTemplates(FS)
	require.NoError(t, err)

	data := PageData{Repositories: []model.GitHubRepository{
		{ID: 1, Name: "demo", Private: true, Language: "Go", StargazersCount: 3, UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "repositories.html", data))
	html := buf.String()

	assert.Contains(t, html, "私有")
	assert.Contains(t, html, "暂无描述")
	assert.Contains(t, html, "dot-cyan")
	assert.Contains(t, html, "更新于 2024年5月1日")
	assert.False(t, strings.Contains(html, "暂无仓库数据"))
}

func TestRenderCreateForm(t *testing.T) {
	tmpl, err := ParseTemplates(FS)
	require.NoError(t, err)

	data := PageData{
		Error:            "创建失败，请重试",
		Retry:            "/posts/create",
		Authors:          []model.Author{{ID: 8, Name: "唯一作者"}},
		Form:             model.PostForm{Title: "保留的标题", Content: "内容", AuthorID: "8", Published: true},
		Errors:           model.FieldErrors{"content": "内容至少需要10个字符"},
		ContentMinLength: 10,
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "post_create.html", data))
	html := buf.String()

	assert.Contains(t, html, "创建失败，请重试")
	assert.Contains(t, html, `value="保留的标题"`)
	assert.Contains(t, html, `<option value="8" selected>唯一作者</option>`)
	assert.Contains(t, html, "内容至少需要10个字符")
	assert.Contains(t, html, "发布文章")
	assert.Contains(t, html, `<span id="content-count">2</span>`)
}
