// internal/app/middleware/form_token.go
package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/auth"
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/viewstate"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

// Middleware 页面中间件，持有表单令牌的签名密钥与有效期
type Middleware struct {
	formSecret []byte
	tokenTTL   time.Duration
}

// NewMiddleware 创建页面中间件
func NewMiddleware(formSecret []byte, tokenTTL time.Duration) *Middleware {
	return &Middleware{formSecret: formSecret, tokenTTL: tokenTTL}
}

// FormToken 为页面请求分配页面 ID 和表单令牌；
// 对 POST 请求校验表单中的令牌，令牌必须属于当前浏览器的页面 ID。
func (m *Middleware) FormToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewID := viewstate.ViewID(c)

		if c.Request.Method == http.MethodPost {
			tokenString := c.PostForm(auth.FormTokenField)
			if tokenString == "" {
				log.Printf("[FormToken] %s 请求未携带表单令牌", c.Request.URL.Path)
				web.RenderError(c, http.StatusForbidden, constant.ErrInvalidFormToken.Error())
				c.Abort()
				return
			}
			if err := auth.VerifyFormToken(tokenString, viewID, m.formSecret); err != nil {
				log.Printf("[FormToken] 表单令牌校验失败: %v", err)
				web.RenderError(c, http.StatusForbidden, constant.ErrInvalidFormToken.Error())
				c.Abort()
				return
			}
		}

		token, err := auth.GenerateFormToken(viewID, m.formSecret, m.tokenTTL)
		if err != nil {
			log.Printf("[FormToken] 生成表单令牌失败: %v", err)
		}
		c.Set(auth.FormTokenKey, token)
		c.Next()
	}
}
