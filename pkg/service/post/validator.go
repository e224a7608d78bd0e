package post

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/strutil"
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
)

// createInput 是参与校验的表单字段，标题的必填检查使用去掉首尾空白后的值
type createInput struct {
	TrimmedTitle string `field:"title" validate:"required"`
	Title        string `field:"title" validate:"max=200"`
	Content      string `field:"content" validate:"content_required,content_min"`
	AuthorID     int    `field:"authorId" validate:"gt=0"`
}

// Validator 校验创建文章表单，是表单内容的纯函数，不发起任何网络请求
type Validator struct {
	validate         *validator.Validate
	contentMinLength int
}

// NewValidator 创建校验器，contentMinLength 为 0 时不校验内容
func NewValidator(contentMinLength int) *Validator {
	if contentMinLength < 0 {
		contentMinLength = 0
	}
	v := &Validator{
		validate:         validator.New(),
		contentMinLength: contentMinLength,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})
	_ = v.validate.RegisterValidation("content_required", func(fl validator.FieldLevel) bool {
		return v.contentMinLength == 0 || strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.validate.RegisterValidation("content_min", func(fl validator.FieldLevel) bool {
		return v.contentMinLength == 0 || strutil.Len(fl.Field().String()) >= v.contentMinLength
	})
	return v
}

// ContentMinLength 返回内容的最少字符数
func (v *Validator) ContentMinLength() int {
	return v.contentMinLength
}

// Validate 返回字段级别的错误信息，没有错误时返回空的 FieldErrors
func (v *Validator) Validate(form model.PostForm) model.FieldErrors {
	input := createInput{
		TrimmedTitle: strings.TrimSpace(form.Title),
		Title:        form.Title,
		Content:      form.Content,
		AuthorID:     form.ParsedAuthorID(),
	}

	fieldErrors := model.FieldErrors{}
	err := v.validate.Struct(input)
	if err == nil {
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["form"] = err.Error()
		return fieldErrors
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		if _, exists := fieldErrors[field]; exists {
			continue
		}
		fieldErrors[field] = v.message(field, fe.Tag())
	}
	return fieldErrors
}

func (v *Validator) message(field, tag string) string {
	switch field {
	case "title":
		if tag == "max" {
			return fmt.Sprintf("标题不能超过%d个字符", constant.TitleMaxLength)
		}
		return "请输入文章标题"
	case "content":
		if tag == "content_min" {
			return fmt.Sprintf("内容至少需要%d个字符", v.contentMinLength)
		}
		return "请输入文章内容"
	case "authorId":
		return "请选择作者"
	}
	return "输入有误"
}
