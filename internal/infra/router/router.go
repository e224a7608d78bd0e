// internal/infra/router/router.go
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/nest-api-demo/internal/app/middleware"
	github_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/github"
	page_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/page"
	post_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/post"
	proxy_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/proxy"
	version_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/version"
)

// NoCacheMiddleware 全局反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	proxyHandler   *proxy_handler.ProxyHandler
	postHandler    *post_handler.Handler
	githubHandler  *github_handler.Handler
	pageHandler    *page_handler.Handler
	versionHandler *version_handler.Handler
	mw             *middleware.Middleware
	// rateLimit 用于所有写操作路由
	rateLimit gin.HandlerFunc
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	proxyHandler *proxy_handler.ProxyHandler,
	postHandler *post_handler.Handler,
	githubHandler *github_handler.Handler,
	pageHandler *page_handler.Handler,
	versionHandler *version_handler.Handler,
	mw *middleware.Middleware,
	rateLimit gin.HandlerFunc,
) *Router {
	if rateLimit == nil {
		rateLimit = func(c *gin.Context) { c.Next() }
	}
	return &Router{
		proxyHandler:   proxyHandler,
		postHandler:    postHandler,
		githubHandler:  githubHandler,
		pageHandler:    pageHandler,
		versionHandler: versionHandler,
		mw:             mw,
		rateLimit:      rateLimit,
	}
}

// Setup 注册 /api 下的代理与辅助接口，以及所有页面路由
func (r *Router) Setup(engine *gin.Engine) {
	apiGroup := engine.Group("/api")
	apiGroup.Use(NoCacheMiddleware())

	r.registerProxyRoutes(apiGroup)
	r.registerPublicRoutes(apiGroup)
	r.registerPageRoutes(engine)
}

// registerProxyRoutes 注册网关代理路由，路径与网关一一对应
func (r *Router) registerProxyRoutes(api *gin.RouterGroup) {
	database := api.Group("/database")
	{
		database.GET("/users", r.proxyHandler.ListUsers)
		database.GET("/posts", r.proxyHandler.ListPosts)
		database.POST("/posts", r.rateLimit, r.proxyHandler.CreatePost)
		database.DELETE("/posts/:id", r.rateLimit, r.proxyHandler.DeletePost)
	}

	api.GET("/github/repositories", r.proxyHandler.ListRepositories)
}

// registerPublicRoutes 注册公开的辅助接口
func (r *Router) registerPublicRoutes(api *gin.RouterGroup) {
	public := api.Group("/public")
	{
		public.GET("/version", r.versionHandler.GetVersion)
		public.GET("/health", r.versionHandler.GetHealth)
	}
}

// registerPageRoutes 注册服务端渲染的页面，页面上的 POST 表单都需要表单令牌
func (r *Router) registerPageRoutes(engine *gin.Engine) {
	pages := engine.Group("/")
	pages.Use(r.mw.FormToken())
	{
		pages.GET("/", r.pageHandler.Home)
		pages.GET("/list-server", r.pageHandler.ListServer)
		pages.GET("/list-client", r.pageHandler.ListClient)
		pages.GET("/github/repositories", r.githubHandler.List)
	}

	posts := pages.Group("/posts")
	{
		posts.GET("", r.postHandler.List)
		posts.POST("/refresh", r.rateLimit, r.postHandler.Refresh)
		posts.POST("/:id/delete", r.rateLimit, r.postHandler.Delete)
		posts.GET("/create", r.postHandler.CreateForm)
		posts.POST("/create", r.rateLimit, r.postHandler.Create)
	}
}
