package version

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/version"
	"github.com/anzhiyu-c/nest-api-demo/pkg/response"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/health"
)

// Handler 版本与健康状态处理器
type Handler struct {
	status *health.Status
}

// NewHandler 创建处理器，status 为 nil 时健康接口返回未检查状态
func NewHandler(status *health.Status) *Handler {
	return &Handler{status: status}
}

// GetVersion 获取版本信息
// @Summary      获取版本信息
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response{data=version.BuildInfo}  "版本信息"
// @Router       /public/version [get]
func (h *Handler) GetVersion(c *gin.Context) {
	response.Success(c, version.GetBuildInfo(), "获取版本信息成功")
}

// GetHealth 获取网关最近一次健康检查结果
// @Summary      获取网关健康状态
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response{data=health.Report}  "健康状态"
// @Router       /public/health [get]
func (h *Handler) GetHealth(c *gin.Context) {
	if h.status == nil {
		response.Success(c, health.Report{}, "尚未进行健康检查")
		return
	}
	response.Success(c, h.status.Snapshot(), "获取健康状态成功")
}
