// nest-api-demo/cmd/server/app.go
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/nest-api-demo/internal/app/listener"
	"github.com/anzhiyu-c/nest-api-demo/internal/app/middleware"
	"github.com/anzhiyu-c/nest-api-demo/internal/app/task"
	"github.com/anzhiyu-c/nest-api-demo/internal/infra/gateway"
	"github.com/anzhiyu-c/nest-api-demo/internal/infra/persistence/database"
	"github.com/anzhiyu-c/nest-api-demo/internal/infra/router"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/event"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/utils"
	"github.com/anzhiyu-c/nest-api-demo/internal/pkg/version"
	"github.com/anzhiyu-c/nest-api-demo/pkg/config"
	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	github_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/github"
	page_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/page"
	post_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/post"
	proxy_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/proxy"
	version_handler "github.com/anzhiyu-c/nest-api-demo/pkg/handler/version"
	"github.com/anzhiyu-c/nest-api-demo/pkg/idgen"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/demo"
	github_service "github.com/anzhiyu-c/nest-api-demo/pkg/service/github"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/health"
	post_service "github.com/anzhiyu-c/nest-api-demo/pkg/service/post"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/utility"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/viewstate"
)

// 持久化在缓存中的系统密钥
const (
	cacheKeyIDSeed     = "system:id_seed"
	cacheKeyFormSecret = "system:form_secret"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg          *config.Config
	engine       *gin.Engine
	server       *http.Server
	scheduler    *task.Scheduler
	eventBus     *event.EventBus
	cacheSvc     utility.CacheService
	redisClient  *redis.Client
	healthStatus *health.Status
}

func (a *App) PrintBanner() {
	banner := `
    _   __          __       ___    ____  ____   ____
   / | / /__  _____/ /_     /   |  / __ \/  _/  / __ \___  ____ ___  ____
  /  |/ / _ \/ ___/ __/    / /| | / /_/ // /   / / / / _ \/ __ '__ \/ __ \
 / /|  /  __(__  ) /_     / ___ |/ ____// /   / /_/ /  __/ / / / / / /_/ /
/_/ |_/\___/____/\__/    /_/  |_/_/   /___/  /_____/\___/_/ /_/ /_/\____/
`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Nest API Demo: %s", version.GetVersionString())
	log.Printf(" Gateway: %s", a.cfg.GatewayBaseURL())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp(configPath string, webFS fs.FS) (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Phase 2: 初始化基础设施 ---
	ctx := context.Background()
	redisClient, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("连接 Redis 失败: %w", err)
	}
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)
	log.Printf("缓存类型: %s", utility.GetCacheServiceType(cacheSvc))

	idSeed, err := getOrCreateSecret(ctx, cacheSvc, cfg.GetString(config.KeyIDSeed), cacheKeyIDSeed, idgen.GenerateRandomSeed)
	if err != nil {
		return nil, nil, err
	}
	if err := idgen.InitSqidsEncoderWithSeed(idSeed); err != nil {
		return nil, nil, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}

	formSecret, err := getOrCreateSecret(ctx, cacheSvc, cfg.GetString(config.KeyFormSecret), cacheKeyFormSecret, func() (string, error) {
		return utils.GenerateRandomString(32)
	})
	if err != nil {
		return nil, nil, err
	}

	eventBus := event.NewEventBus()

	// --- Phase 3: 网关客户端 ---
	gatewayClient := gateway.NewClient(gateway.Options{
		BaseURL:  cfg.GatewayBaseURL(),
		Timeout:  time.Duration(cfg.GetIntOr(config.KeyGatewayTimeout, 30)) * time.Second,
		Cache:    cacheSvc,
		CacheTTL: time.Duration(cfg.GetIntOr(config.KeyCacheGatewayTTL, 0)) * time.Second,
	})
	if n, err := gatewayClient.Purge(ctx); err != nil {
		log.Printf("⚠️  清理网关响应缓存失败: %v", err)
	} else if n > 0 {
		log.Printf("已清理 %d 条上次运行遗留的网关响应缓存", n)
	}
	listener.NewPostCacheListener(eventBus, gatewayClient)

	// --- Phase 4: 业务服务 ---
	viewTTL := time.Duration(cfg.GetIntOr(config.KeyViewStateTTL, int(viewstate.DefaultTTL/time.Second))) * time.Second
	viewStore := viewstate.NewStore(cacheSvc, viewTTL)
	postSvc := post_service.NewService(
		gatewayClient,
		viewStore,
		eventBus,
		post_service.NewValidator(cfg.GetIntOr(config.KeyPostsContentMinLength, constant.DefaultContentMinLength)),
		constant.ParseDeleteStrategy(cfg.GetString(config.KeyPostsDeleteStrategy)),
	)
	githubSvc := github_service.NewService(gatewayClient)
	demoSvc := demo.NewService(gatewayClient, cfg.GetStringOr(config.KeyDemoPlaceholderURL, demo.DefaultPlaceholderURL))
	healthStatus := health.NewStatus(gatewayClient.BaseURL())

	// --- Phase 5: 定时任务 ---
	scheduler := task.NewScheduler()
	healthJob := task.NewGatewayHealthCheckJob(
		gatewayClient,
		cfg.GetStringOr(config.KeyGatewayHealthPath, gateway.PathUsers),
		healthStatus,
		scheduler.Logger(),
	)
	if err := scheduler.Register(cfg.GetStringOr(config.KeyGatewayHealthCron, "0 * * * * *"), healthJob); err != nil {
		return nil, nil, err
	}

	// --- Phase 6: 路由 ---
	engine := gin.Default()
	if err := engine.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		return nil, nil, fmt.Errorf("设置信任代理失败: %w", err)
	}
	engine.Use(middleware.Cors())

	if err := router.SetupFrontend(engine, webFS); err != nil {
		return nil, nil, err
	}

	appRouter := router.NewRouter(
		proxy_handler.NewHandler(gatewayClient, eventBus),
		post_handler.NewHandler(postSvc),
		github_handler.NewHandler(githubSvc),
		page_handler.NewHandler(demoSvc),
		version_handler.NewHandler(healthStatus),
		middleware.NewMiddleware([]byte(formSecret), viewTTL),
		middleware.CustomRateLimit(
			cfg.GetIntOr(config.KeyRateLimitPerMinute, 60),
			cfg.GetIntOr(config.KeyRateLimitBurst, 20),
		),
	)
	appRouter.Setup(engine)

	app := &App{
		cfg:          cfg,
		engine:       engine,
		scheduler:    scheduler,
		eventBus:     eventBus,
		cacheSvc:     cacheSvc,
		redisClient:  redisClient,
		healthStatus: healthStatus,
		server: &http.Server{
			Addr:              ":" + cfg.GetStringOr(config.KeyServerPort, "8091"),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	cleanup := func() {
		log.Println("执行清理操作...")
		utility.StopCacheService(cacheSvc)
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Printf("关闭 Redis 连接失败: %v", err)
			}
		}
	}

	return app, cleanup, nil
}

// getOrCreateSecret 优先使用配置值；未配置时从缓存读取，仍没有则生成并写回缓存
func getOrCreateSecret(ctx context.Context, cache utility.CacheService, configured, key string, generate func() (string, error)) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if v, err := cache.Get(ctx, key); err == nil && v != "" {
		log.Printf("📦 已从缓存加载 %s", key)
		return v, nil
	}

	v, err := generate()
	if err != nil {
		return "", fmt.Errorf("生成 %s 失败: %w", key, err)
	}
	if err := cache.Set(ctx, key, v, 0); err != nil {
		log.Printf("⚠️  保存 %s 失败: %v，重启后将重新生成", key, err)
	} else {
		log.Printf("✅ 已生成新的 %s", key)
	}
	return v, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) CacheService() utility.CacheService {
	return a.cacheSvc
}

func (a *App) EventBus() *event.EventBus {
	return a.eventBus
}

func (a *App) HealthStatus() *health.Status {
	return a.healthStatus
}

// Run 启动定时任务并阻塞监听端口
func (a *App) Run() error {
	a.scheduler.Start()

	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", a.cfg.GetStringOr(config.KeyServerPort, "8091"))

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 依次关闭 HTTP 服务、定时任务和事件总线
func (a *App) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		log.Printf("关闭 HTTP 服务失败: %v", err)
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
	if a.eventBus != nil {
		a.eventBus.Shutdown()
	}
}
