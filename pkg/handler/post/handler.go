/*
 * @Description: 文章列表、删除与创建页面
 */
package post

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/parser"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/utils"
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
	"github.com/anzhiyu-c/nest-api-demo/pkg/idgen"
	post_service "github.com/anzhiyu-c/nest-api-demo/pkg/service/post"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/viewstate"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

// keepParam 为 1 时列表页沿用已保存的状态，否则从网关重新加载
const keepParam = "keep"

// Handler 文章页面处理器
type Handler struct {
	svc *post_service.Service
}

// NewHandler 创建文章页面处理器
func NewHandler(svc *post_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List 文章列表页，按 author 与 status 查询参数筛选
func (h *Handler) List(c *gin.Context) {
	viewID := viewstate.ViewID(c)
	filter := post_service.NewFilter(c.Query("author"), c.Query("status"))

	state, err := h.svc.ListState(c.Request.Context(), viewID, c.Query(keepParam) == "1")
	data := web.PageData{
		Title:   "文章列表",
		Filter:  filter,
		Flash:   state.Flash,
		Authors: state.Authors,
		Posts:   buildItems(filter.Apply(state.Posts), state),
	}

	status := http.StatusOK
	if err != nil {
		log.Printf("[Posts] 加载文章列表失败: %v", err)
		status = http.StatusBadGateway
		data.Error = post_service.MsgLoadFailed
		data.Posts = []web.PostItem{}
	}
	web.Render(c, status, "posts.html", data)
}

// Refresh 重新加载列表后跳回列表页
func (h *Handler) Refresh(c *gin.Context) {
	if _, err := h.svc.Refresh(c.Request.Context(), viewstate.ViewID(c)); err != nil {
		log.Printf("[Posts] 刷新文章列表失败: %v", err)
	}
	c.Redirect(http.StatusSeeOther, listURL(c))
}

// Delete 删除文章后跳回列表页，失败时列表页会显示提示
func (h *Handler) Delete(c *gin.Context) {
	id, err := idgen.DecodePublicID(c.Param("id"), idgen.EntityTypePost)
	if err != nil {
		web.RenderError(c, http.StatusBadRequest, constant.ErrInvalidPublicID.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), viewstate.ViewID(c), id); err != nil {
		log.Printf("[Posts] %v", err)
	}
	c.Redirect(http.StatusSeeOther, listURL(c))
}

// CreateForm 创建文章页
func (h *Handler) CreateForm(c *gin.Context) {
	authors, form, err := h.svc.PrepareCreate(c.Request.Context(), viewstate.ViewID(c))
	data := h.createPage(authors, form)

	status := http.StatusOK
	if err != nil {
		log.Printf("[Posts] %v", err)
		status = http.StatusBadGateway
		data.Error = post_service.MsgAuthorsFailed
		data.Retry = "/posts/create"
	}
	web.Render(c, status, "post_create.html", data)
}

// Create 提交创建表单。校验失败返回 422 且不请求网关，成功后跳转到列表页。
func (h *Handler) Create(c *gin.Context) {
	var form model.PostForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("[Posts] 解析创建表单失败: %v", err)
	}

	result, err := h.svc.Create(c.Request.Context(), viewstate.ViewID(c), form)
	data := h.createPage(result.Authors, form)
	data.Errors = result.Errors

	switch {
	case errors.Is(err, constant.ErrViewExpired):
		data.Error = constant.ErrViewExpired.Error()
		data.Retry = "/posts/create"
		web.Render(c, http.StatusConflict, "post_create.html", data)
	case err != nil:
		log.Printf("[Posts] %v", err)
		data.Error = post_service.MsgCreateFailed
		web.Render(c, http.StatusBadGateway, "post_create.html", data)
	case result.Errors.HasErrors():
		web.Render(c, http.StatusUnprocessableEntity, "post_create.html", data)
	default:
		c.Redirect(http.StatusSeeOther, "/posts")
	}
}

func (h *Handler) createPage(authors []model.Author, form model.PostForm) web.PageData {
	return web.PageData{
		Title:            "创建文章",
		Authors:          authors,
		Form:             form,
		Errors:           model.FieldErrors{},
		ContentMinLength: h.svc.Validator().ContentMinLength(),
	}
}

// buildItems 把文章转换为页面展示数据，作者优先使用网关内嵌的信息
func buildItems(posts []model.Post, state *model.PostListState) []web.PostItem {
	items := make([]web.PostItem, 0, len(posts))
	for _, p := range posts {
		publicID, err := idgen.GeneratePublicID(p.ID, idgen.EntityTypePost)
		if err != nil {
			log.Printf("[Posts] 生成文章 %d 的公共ID失败: %v", p.ID, err)
		}
		items = append(items, web.PostItem{
			PublicID:   publicID,
			Title:      p.Title,
			AuthorName: authorName(p, state),
			CreatedAt:  utils.FormatDate(p.CreatedAt),
			Published:  p.Published,
			Excerpt:    parser.Excerpt(p.Content, constant.ExcerptLength),
		})
	}
	return items
}

func authorName(p model.Post, state *model.PostListState) string {
	if p.Author != nil && p.Author.DisplayName() != "" {
		return p.Author.DisplayName()
	}
	if a, ok := state.AuthorByID(p.AuthorID); ok && a.DisplayName() != "" {
		return a.DisplayName()
	}
	return strconv.Itoa(p.AuthorID)
}

// listURL 构造保留筛选条件的列表页地址，跳转后沿用刚保存的状态
func listURL(c *gin.Context) string {
	filter := post_service.NewFilter(c.PostForm("author"), c.PostForm("status"))
	q := url.Values{keepParam: {"1"}}
	if filter.Author != constant.AuthorAll {
		q.Set("author", filter.Author)
	}
	if filter.Status != constant.StatusAll {
		q.Set("status", filter.Status)
	}
	return "/posts?" + q.Encode()
}
