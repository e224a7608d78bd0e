/*
 * @Description: 首页与演示列表页
 */
package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/pkg/service/demo"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

// Handler 页面处理器
type Handler struct {
	demoSvc *demo.Service
}

// NewHandler 创建页面处理器
func NewHandler(demoSvc *demo.Service) *Handler {
	return &Handler{demoSvc: demoSvc}
}

// Home 首页导航
func (h *Handler) Home(c *gin.Context) {
	web.Render(c, http.StatusOK, "index.html", web.PageData{})
}

// ListServer 服务端获取占位数据后渲染
func (h *Handler) ListServer(c *gin.Context) {
	web.Render(c, http.StatusOK, "list_server.html", web.PageData{
		Title:        "服务端渲染",
		Placeholders: h.demoSvc.Latest(c.Request.Context(), demo.DefaultLimit),
	})
}

// ListClient 由浏览器直接请求占位数据
func (h *Handler) ListClient(c *gin.Context) {
	web.Render(c, http.StatusOK, "list_client.html", web.PageData{
		Title:   "客户端渲染",
		FeedURL: h.demoSvc.URL(),
	})
}
