package post

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
)

func TestValidator(t *testing.T) {
	v := NewValidator(10)

	testCases := []struct {
		name string
		form model.PostForm
		want model.FieldErrors
	}{
		{
			name: "合法表单",
			form: model.PostForm{Title: "标题", Content: "这是一段足够长的文章内容", AuthorID: "1"},
			want: model.FieldErrors{},
		},
		{
			name: "标题为空",
			form: model.PostForm{Title: "", Content: "0123456789", AuthorID: "1"},
			want: model.FieldErrors{"title": "请输入文章标题"},
		},
		{
			name: "标题只有空白",
			form: model.PostForm{Title: "   ", Content: "0123456789", AuthorID: "1"},
			want: model.FieldErrors{"title": "请输入文章标题"},
		},
		{
			name: "标题超长",
			form: model.PostForm{Title: strings.Repeat("字", 201), Content: "0123456789", AuthorID: "1"},
			want: model.FieldErrors{"title": "标题不能超过200个字符"},
		},
		{
			name: "标题恰好200字",
			form: model.PostForm{Title: strings.Repeat("字", 200), Content: "0123456789", AuthorID: "1"},
			want: model.FieldErrors{},
		},
		{
			name: "内容为空",
			form: model.PostForm{Title: "标题", Content: "", AuthorID: "1"},
			want: model.FieldErrors{"content": "请输入文章内容"},
		},
		{
			name: "内容过短",
			form: model.PostForm{Title: "标题", Content: "太短了", AuthorID: "1"},
			want: model.FieldErrors{"content": "内容至少需要10个字符"},
		},
		{
			name: "未选择作者",
			form: model.PostForm{Title: "标题", Content: "0123456789", AuthorID: ""},
			want: model.FieldErrors{"authorId": "请选择作者"},
		},
		{
			name: "作者ID非法",
			form: model.PostForm{Title: "标题", Content: "0123456789", AuthorID: "abc"},
			want: model.FieldErrors{"authorId": "请选择作者"},
		},
		{
			name: "作者ID带空白",
			form: model.PostForm{Title: "标题", Content: "0123456789", AuthorID: " 5 "},
			want: model.FieldErrors{},
		},
		{
			name: "多个错误",
			form: model.PostForm{},
			want: model.FieldErrors{
				"title":    "请输入文章标题",
				"content":  "请输入文章内容",
				"authorId": "请选择作者",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Validate(tc.form))
		})
	}
}

func TestValidatorContentRulesDisabled(t *testing.T) {
	v := NewValidator(0)

	errs := v.Validate(model.PostForm{Title: "标题", Content: "", AuthorID: "3"})
	assert.False(t, errs.HasErrors())
	assert.Equal(t, 0, v.ContentMinLength())
}

func TestValidatorCountsRunes(t *testing.T) {
	v := NewValidator(5)

	// 5 个汉字是 15 个字节，但只算 5 个字符
	assert.False(t, v.Validate(model.PostForm{Title: "t", Content: "一二三四五", AuthorID: "1"}).HasErrors())
	assert.True(t, v.Validate(model.PostForm{Title: "t", Content: "一二三四", AuthorID: "1"}).HasErrors())
}
