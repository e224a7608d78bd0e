/*
 * @Description: 网关代理处理器，将 /api/database 与 /api/github 请求原样转发到远程数据网关
 */
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/internal/infra/gateway"
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
)

// Gateway 是代理所需的网关能力
type Gateway interface {
	Do(ctx context.Context, method, path string, body []byte) (*gateway.Response, error)
}

// Publisher 用于在写操作成功后发布事件
type Publisher interface {
	Publish(topic constant.EventTopic, payload interface{})
}

// internalErrorBody 是所有本地失败统一返回的响应体
var internalErrorBody = gin.H{"error": "Internal Server Error"}

// ProxyHandler 代理处理器
type ProxyHandler struct {
	gateway Gateway
	bus     Publisher
}

// NewHandler 创建代理处理器
func NewHandler(gw Gateway, bus Publisher) *ProxyHandler {
	return &ProxyHandler{gateway: gw, bus: bus}
}

// ListUsers 代理获取用户列表
// @Summary      获取用户列表
// @Tags         网关代理
// @Produce      json
// @Success      200  {array}   model.Author
// @Failure      500  {object}  object{error=string}  "网关不可达"
// @Router       /database/users [get]
func (h *ProxyHandler) ListUsers(c *gin.Context) {
	h.forward(c, http.MethodGet, gateway.PathUsers, nil)
}

// ListPosts 代理获取文章列表
// @Summary      获取文章列表
// @Tags         网关代理
// @Produce      json
// @Success      200  {array}   model.Post
// @Failure      500  {object}  object{error=string}  "网关不可达"
// @Router       /database/posts [get]
func (h *ProxyHandler) ListPosts(c *gin.Context) {
	h.forward(c, http.MethodGet, gateway.PathPosts, nil)
}

// CreatePost 代理创建文章
// @Summary      创建文章
// @Tags         网关代理
// @Accept       json
// @Produce      json
// @Param        body  body  model.CreatePostRequest  true  "文章内容"
// @Success      201  {object}  model.Post
// @Failure      500  {object}  object{error=string}  "请求体无效或网关不可达"
// @Router       /database/posts [post]
func (h *ProxyHandler) CreatePost(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		log.Printf("[Proxy] 创建文章的请求体不是合法的 JSON: %v", err)
		c.JSON(http.StatusInternalServerError, internalErrorBody)
		return
	}

	resp, ok := h.forward(c, http.MethodPost, gateway.PathPosts, body)
	if ok && resp.OK() {
		h.bus.Publish(constant.EventPostCreated, nil)
	}
}

// DeletePost 代理删除文章
// @Summary      删除文章
// @Tags         网关代理
// @Produce      json
// @Param        id  path  int  true  "文章ID"
// @Success      200  {object}  model.Post
// @Failure      500  {object}  object{error=string}  "网关不可达"
// @Router       /database/posts/{id} [delete]
func (h *ProxyHandler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Printf("[Proxy] 删除文章的ID不是数字: %q", c.Param("id"))
		c.JSON(http.StatusInternalServerError, internalErrorBody)
		return
	}
	resp, ok := h.forward(c, http.MethodDelete, gateway.PathPosts+"/"+strconv.Itoa(id), nil)
	if ok && resp.OK() {
		h.bus.Publish(constant.EventPostDeleted, id)
	}
}

// ListRepositories 代理获取 GitHub 仓库列表
// @Summary      获取 GitHub 仓库列表
// @Tags         网关代理
// @Produce      json
// @Success      200  {array}   model.GitHubRepository
// @Failure      500  {object}  object{error=string}  "网关不可达"
// @Router       /github/repositories [get]
func (h *ProxyHandler) ListRepositories(c *gin.Context) {
	h.forward(c, http.MethodGet, gateway.PathRepositories, nil)
}

// forward 转发请求并把网关的状态码与响应体原样写回。
// 第二个返回值表示是否拿到了网关响应。
func (h *ProxyHandler) forward(c *gin.Context, method, path string, body []byte) (*gateway.Response, bool) {
	resp, err := h.gateway.Do(c.Request.Context(), method, path, body)
	if err != nil {
		if errors.Is(err, gateway.ErrTransport) {
			log.Printf("[Proxy] %s %s 失败: %v", method, path, err)
		} else {
			log.Printf("[Proxy] %s %s 发生未知错误: %v", method, path, err)
		}
		c.JSON(http.StatusInternalServerError, internalErrorBody)
		return nil, false
	}

	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return resp, true
	}
	c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
	return resp, true
}
