package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"automarket/internal/app"
	"automarket/internal/core/config"
	"automarket/internal/core/logger"
	"automarket/internal/core/server"
	"automarket/internal/transport/http/handler"
	"automarket/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("")
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.WarnLevel)()
	if !cfg.App.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("infra init failed", zap.Error(err))
	}
	defer infra.Close()

	svcs := infra.Services(cfg, log)
	guards := infra.Guards(svcs, log)

	r := router.NewAdminEngine(router.Deps{
		Log:     log,
		App:     cfg.App,
		Guards:  guards,
		Modules: router.NewRegistry(handler.NewAdminHandler(svcs.Admin)),
	})

	a := cfg.App.Admin
	srv := server.BuildServer(server.Addr(a.Host, a.Port), r, 5*time.Second, 10*time.Second, 60*time.Second)
	base := server.BaseURL(a.Host, a.Port)
	log.Info("admin api starting",
		zap.String("open", base),
		zap.String("health", base+"/health"),
		zap.String("admin", base+"/api/admin"),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("admin api stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
