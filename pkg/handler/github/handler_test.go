package github

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/nest-api-demo/internal/infra/gateway"
	github_service "github.com/anzhiyu-c/nest-api-demo/pkg/service/github"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

func setup(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	tmpl, err := web.ParseTemplates(web.FS)
	require.NoError(t, err)

	client := gateway.NewClient(gateway.Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	h := NewHandler(github_service.NewService(client))

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/github/repositories", h.List)
	return r
}

func TestList(t *testing.T) {
	testCases := []struct {
		name       string
		upstream   http.HandlerFunc
		wantStatus int
		contains   []string
	}{
		{
			name: "正常显示仓库",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":1,"name":"nest-api","full_name":"a/nest-api","description":null,"html_url":"https://github.com/a/nest-api","language":"Go","stargazers_count":3,"forks_count":1,"updated_at":"2024-05-01T00:00:00Z","private":true}]`))
			},
			wantStatus: http.StatusOK,
			contains:   []string{"nest-api", "私有", "暂无描述", "cyan", "https://github.com/a/nest-api"},
		},
		{
			name: "空列表",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			wantStatus: http.StatusOK,
			contains:   []string{"暂无仓库数据"},
		},
		{
			name: "网关失败显示重试",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			},
			wantStatus: http.StatusBadGateway,
			contains:   []string{github_service.MsgFetchFailed, `href="/github/repositories"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := setup(t, tc.upstream)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/github/repositories", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			for _, s := range tc.contains {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}
