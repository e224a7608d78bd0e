package post

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/nest-api-demo/internal/infra/gateway"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/event"
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
	"github.com/anzhiyu-c/nest-api-demo/pkg/idgen"
	post_service "github.com/anzhiyu-c/nest-api-demo/pkg/service/post"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/utility"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/viewstate"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

const testViewID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

// fakeGateway 是一个内存中的远程网关
type fakeGateway struct {
	mu          sync.Mutex
	posts       []model.Post
	authors     []model.Author
	failPosts   bool
	failDelete  bool
	createCalls int32
}

func (f *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == gateway.PathUsers:
		_ = json.NewEncoder(w).Encode(f.authors)
	case r.Method == http.MethodGet && r.URL.Path == gateway.PathPosts:
		if f.failPosts {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"db down"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(f.posts)
	case r.Method == http.MethodPost && r.URL.Path == gateway.PathPosts:
		atomic.AddInt32(&f.createCalls, 1)
		var req model.CreatePostRequest
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		created := model.Post{ID: len(f.posts) + 100, Title: req.Title, Content: req.Content, AuthorID: req.AuthorID, Published: req.Published}
		f.posts = append(f.posts, created)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, gateway.PathPosts+"/"):
		if f.failDelete {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
			return
		}
		id := strings.TrimPrefix(r.URL.Path, gateway.PathPosts+"/")
		kept := f.posts[:0:0]
		for _, p := range f.posts {
			if strconv.Itoa(p.ID) != id {
				kept = append(kept, p)
			}
		}
		f.posts = kept
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setup(t *testing.T, fake *fakeGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, idgen.InitSqidsEncoderWithSeed(""))

	upstream := httptest.NewServer(fake)
	t.Cleanup(upstream.Close)

	cache := utility.NewMemoryCacheService()
	bus := event.NewEventBus()
	t.Cleanup(func() {
		bus.Shutdown()
		utility.StopCacheService(cache)
	})

	client := gateway.NewClient(gateway.Options{BaseURL: upstream.URL, Timeout: 2 * time.Second})
	svc := post_service.NewService(client, viewstate.NewStore(cache, time.Minute), bus,
		post_service.NewValidator(10), constant.DeleteOptimistic)
	h := NewHandler(svc)

	tmpl, err := web.ParseTemplates(web.FS)
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/posts", h.List)
	r.POST("/posts/refresh", h.Refresh)
	r.POST("/posts/:id/delete", h.Delete)
	r.GET("/posts/create", h.CreateForm)
	r.POST("/posts/create", h.Create)
	return r
}

func do(r *gin.Engine, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: viewstate.CookieName, Value: testViewID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newFake() *fakeGateway {
	return &fakeGateway{
		posts: []model.Post{
			{ID: 1, Title: "已发布的文章", Content: "**第一篇**内容", AuthorID: 5, Published: true},
			{ID: 2, Title: "草稿文章", Content: "", AuthorID: 6, Published: false},
		},
		authors: []model.Author{{ID: 5, Name: "张三"}, {ID: 6, Email: "li@example.com"}},
	}
}

func TestListFilters(t *testing.T) {
	r := setup(t, newFake())

	w := do(r, http.MethodGet, "/posts?author=5&status=all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "共 1 篇文章")
	assert.Contains(t, body, "已发布的文章")
	assert.NotContains(t, body, "草稿文章</h3>")
	assert.Contains(t, body, "第一篇内容")

	w = do(r, http.MethodGet, "/posts?status=draft", nil)
	body = w.Body.String()
	assert.Contains(t, body, "草稿文章")
	assert.Contains(t, body, "li@example.com")
	assert.Contains(t, body, "暂无内容")
}

func TestListLoadFailure(t *testing.T) {
	fake := newFake()
	fake.failPosts = true
	r := setup(t, fake)

	w := do(r, http.MethodGet, "/posts", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), post_service.MsgLoadFailed)
	assert.Contains(t, w.Body.String(), "共 0 篇文章")
}

func TestDeleteFlow(t *testing.T) {
	r := setup(t, newFake())
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/posts", nil).Code)

	publicID, err := idgen.GeneratePublicID(2, idgen.EntityTypePost)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/posts/"+publicID+"/delete", url.Values{"status": {"draft"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts?keep=1&status=draft", w.Header().Get("Location"))

	body := do(r, http.MethodGet, "/posts", nil).Body.String()
	assert.Contains(t, body, "共 1 篇文章")
	assert.NotContains(t, body, "草稿文章")
}

func TestListSeesGatewayChanges(t *testing.T) {
	fake := newFake()
	r := setup(t, fake)
	require.Contains(t, do(r, http.MethodGet, "/posts", nil).Body.String(), "共 2 篇文章")

	fake.mu.Lock()
	fake.posts = fake.posts[:1]
	fake.mu.Unlock()

	// 切换筛选沿用已保存的状态
	assert.Contains(t, do(r, http.MethodGet, "/posts?keep=1", nil).Body.String(), "共 2 篇文章")
	// 直接访问从网关重新加载
	assert.Contains(t, do(r, http.MethodGet, "/posts", nil).Body.String(), "共 1 篇文章")
}

func TestDeleteFailureShowsAlert(t *testing.T) {
	fake := newFake()
	fake.failDelete = true
	r := setup(t, fake)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/posts", nil).Code)

	publicID, err := idgen.GeneratePublicID(1, idgen.EntityTypePost)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/posts/"+publicID+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	body := do(r, http.MethodGet, "/posts", nil).Body.String()
	assert.Contains(t, body, post_service.MsgDeleteFailed)
	assert.Contains(t, body, "共 2 篇文章")
}

func TestDeleteInvalidPublicID(t *testing.T) {
	r := setup(t, newFake())

	w := do(r, http.MethodPost, "/posts/!!!/delete", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFlow(t *testing.T) {
	fake := newFake()
	r := setup(t, fake)

	w := do(r, http.MethodGet, "/posts/create", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "请选择作者")

	t.Run("校验失败返回422且不请求网关", func(t *testing.T) {
		w := do(r, http.MethodPost, "/posts/create", url.Values{
			"title": {""}, "content": {"短"}, "authorId": {"5"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "请输入文章标题")
		assert.Contains(t, body, "内容至少需要10个字符")
		assert.Equal(t, int32(0), atomic.LoadInt32(&fake.createCalls))
	})

	t.Run("成功后跳转并提示", func(t *testing.T) {
		w := do(r, http.MethodPost, "/posts/create", url.Values{
			"title": {"新的文章"}, "content": {"这是一段足够长的文章内容"}, "authorId": {"5"}, "published": {"true"},
		})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/posts", w.Header().Get("Location"))
		assert.Equal(t, int32(1), atomic.LoadInt32(&fake.createCalls))

		body := do(r, http.MethodGet, "/posts", nil).Body.String()
		assert.Contains(t, body, post_service.MsgCreateSuccess)
		assert.Contains(t, body, "新的文章")
	})
}

func TestCreateExpiredState(t *testing.T) {
	fake := newFake()
	r := setup(t, fake)

	w := do(r, http.MethodPost, "/posts/create", url.Values{
		"title": {"标题"}, "content": {"0123456789"}, "authorId": {"5"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), constant.ErrViewExpired.Error())
	assert.Contains(t, w.Body.String(), `value="标题"`)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.createCalls))
}
