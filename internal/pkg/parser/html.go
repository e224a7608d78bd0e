package parser

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/strutil"
)

var stripTagsPolicy = bluemonday.StripTagsPolicy()

// EmptyExcerpt 文章内容为空时显示的摘要
const EmptyExcerpt = "暂无内容"

// StripHTML 去除所有 HTML 标签，返回纯文本
func StripHTML(htmlContent string) string {
	return stripTagsPolicy.Sanitize(htmlContent)
}

// Excerpt 将 Markdown 内容转换为纯文本摘要，超过 maxLength 个字符时截断。
// Markdown 解析失败时退回到直接去除标签。
func Excerpt(content string, maxLength int) string {
	if strings.TrimSpace(content) == "" {
		return EmptyExcerpt
	}

	rendered, err := MarkdownToHTML(content)
	if err != nil {
		rendered = content
	}
	// bluemonday 会转义实体，模板渲染时还会再转义一次
	text := html.UnescapeString(StripHTML(rendered))
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return EmptyExcerpt
	}
	return strutil.Truncate(text, maxLength)
}
