package web

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/auth"
)

// Render 补全公共字段后渲染页面
func Render(c *gin.Context, status int, name string, data PageData) {
	data.Path = c.Request.URL.Path
	if data.FormToken == "" {
		data.FormToken = c.GetString(auth.FormTokenKey)
	}
	c.HTML(status, name, data)
}

// RenderError 渲染错误页
func RenderError(c *gin.Context, status int, message string) {
	Render(c, status, "error.html", PageData{Title: "出错了", Status: status, Message: message})
}
