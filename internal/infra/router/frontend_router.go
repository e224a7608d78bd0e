package router

import (
	"crypto/md5"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/anzhiyu-c/nest-api-demo/pkg/response"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

type CustomHTMLRender struct{ Templates *template.Template }

func (r CustomHTMLRender) Instance(name string, data interface{}) render.Render {
	return render.HTML{Template: r.Templates, Name: name, Data: data}
}

// staticAsset 是预先读入内存的静态文件
type staticAsset struct {
	content     []byte
	contentType string
	etag        string
}

// generateContentETag 基于文件内容生成 ETag
func generateContentETag(content []byte) string {
	return fmt.Sprintf(`"static-%x"`, md5.Sum(content))
}

// handleConditionalRequest 处理 If-None-Match，命中时返回 304
func handleConditionalRequest(c *gin.Context, etag string) bool {
	if ifNoneMatch := c.GetHeader("If-None-Match"); ifNoneMatch != "" && ifNoneMatch == etag {
		c.Header("ETag", etag)
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// getContentType 根据扩展名获取 MIME 类型
func getContentType(filePath string) string {
	if ct := mime.TypeByExtension(path.Ext(filePath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// loadStaticAssets 读取 static 目录下的全部文件
func loadStaticAssets(static fs.FS) (map[string]staticAsset, error) {
	assets := make(map[string]staticAsset)
	err := fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(static, p)
		if err != nil {
			return err
		}
		assets[p] = staticAsset{
			content:     content,
			contentType: getContentType(p),
			etag:        generateContentETag(content),
		}
		return nil
	})
	return assets, err
}

// SetupFrontend 解析内嵌模板、注册静态资源与 404 处理
func SetupFrontend(engine *gin.Engine, fsys fs.FS) error {
	templates, err := web.ParseTemplates(fsys)
	if err != nil {
		return err
	}
	engine.HTMLRender = CustomHTMLRender{Templates: templates}

	static, err := web.Static(fsys)
	if err != nil {
		return fmt.Errorf("加载静态资源目录失败: %w", err)
	}
	assets, err := loadStaticAssets(static)
	if err != nil {
		return fmt.Errorf("读取静态资源失败: %w", err)
	}
	log.Printf("✅ 已加载 %d 个静态资源", len(assets))

	engine.GET("/static/*filepath", func(c *gin.Context) {
		asset, ok := assets[strings.TrimPrefix(c.Param("filepath"), "/")]
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		if handleConditionalRequest(c, asset.etag) {
			return
		}
		// 协商缓存：每次都向服务器验证
		c.Header("Cache-Control", "public, max-age=0, must-revalidate")
		c.Header("ETag", asset.etag)
		c.Data(http.StatusOK, asset.contentType, asset.content)
	})

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Fail(c, http.StatusNotFound, "接口不存在")
			return
		}
		web.RenderError(c, http.StatusNotFound, "页面不存在")
	})

	return nil
}
