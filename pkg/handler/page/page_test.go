package page

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/nest-api-demo/internal/infra/gateway"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/demo"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

func setup(t *testing.T, feedURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.ParseTemplates(web.FS)
	require.NoError(t, err)

	h := NewHandler(demo.NewService(gateway.NewClient(gateway.Options{}), feedURL))
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", h.Home)
	r.GET("/list-server", h.ListServer)
	r.GET("/list-client", h.ListClient)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPages(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"userId":1,"id":1,"title":"第一条","body":""},{"userId":1,"id":2,"title":"第二条","body":""}]`))
	}))
	defer feed.Close()

	r := setup(t, feed.URL)

	t.Run("首页", func(t *testing.T) {
		w := get(r, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "GitHub 仓库")
	})

	t.Run("服务端渲染", func(t *testing.T) {
		w := get(r, "/list-server")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "第一条")
		assert.Contains(t, w.Body.String(), "第二条")
	})

	t.Run("客户端渲染输出数据源地址", func(t *testing.T) {
		w := get(r, "/list-client")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), feed.URL)
	})
}

func TestListServerFeedDown(t *testing.T) {
	feed := httptest.NewServer(http.NotFoundHandler())
	url := feed.URL
	feed.Close()

	w := get(setup(t, url), "/list-server")
	assert.Equal(t, http.StatusOK, w.Code, "数据源不可用时渲染空列表")
}
