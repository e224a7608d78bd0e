package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anzhiyu-c/nest-api-demo/cmd/server"
	"github.com/anzhiyu-c/nest-api-demo/pkg/config"
	"github.com/anzhiyu-c/nest-api-demo/web"
)

// @title           Nest API Demo
// @version         1.0
// @description     文章管理演示站：远程数据网关的代理接口与服务端渲染页面
// @BasePath        /api
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", config.DefaultFilePath, "配置文件路径")
	flag.Parse()

	app, cleanup, err := server.NewApp(configPath, web.FS)
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}
	defer cleanup()

	app.PrintBanner()

	// 收到退出信号时优雅关闭，Run 随后返回
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		<-quit
		log.Println("收到退出信号，正在关闭...")
		app.Stop()
		close(stopped)
	}()

	if err := app.Run(); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
	<-stopped
}
