package github

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	github_service "github.com/anzhiyu-c/nest-api-demo/pkg/service/github"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

const pagePath = "/github/repositories"

// Handler GitHub 仓库页面处理器
type Handler struct {
	svc *github_service.Service
}

// NewHandler 创建仓库页面处理器
func NewHandler(svc *github_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List 仓库列表页，每次访问都重新获取
func (h *Handler) List(c *gin.Context) {
	repos, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("[GitHub] %v", err)
		web.Render(c, http.StatusBadGateway, "repositories.html", web.PageData{
			Title: "GitHub 仓库",
			Error: github_service.MsgFetchFailed,
			Retry: pagePath,
		})
		return
	}

	web.Render(c, http.StatusOK, "repositories.html", web.PageData{
		Title:        "GitHub 仓库",
		Repositories: repos,
	})
}
