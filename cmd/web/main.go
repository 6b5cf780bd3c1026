package main

import (
	stdlog "log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/KaciL4/Shop-Website/internal/config"
	"github.com/KaciL4/Shop-Website/internal/server"
	"github.com/KaciL4/Shop-Website/pkg/log"
)

func main() {
	// 加载配置：./config/config.yaml 可选，缺省用默认值
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	log.InitLogger()
	zap.L().Info("log init success")

	app := iris.New()
	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithCharset("UTF-8"),
		iris.WithOptimizations,
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("failed to run web server", zap.Error(err))
	}
}
