package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
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
	"automarket/internal/core/obs"
	"automarket/internal/core/server"
	"automarket/internal/core/storage"
	"automarket/internal/domain"
	"automarket/internal/service"
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

	shutdownTracer, err := obs.InitTracer(ctx, cfg.OTel, cfg.App.Env)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	infra, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("infra init failed", zap.Error(err))
	}
	defer infra.Close()

	store, err := storage.New(ctx, cfg.Storage, cfg.App.StaticDir)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	svcs := infra.Services(cfg, log)
	guards := infra.Guards(svcs, log)

	mods := router.NewRegistry(
		handler.NewAuthHandler(svcs.Auth, guards),
		handler.NewAccountHandler(svcs.Account, guards),
		handler.NewUploadHandler(service.NewUploadService(store, log.Named("upload")), guards),
		handler.NewAdminHandler(svcs.Admin),
	)
	for _, c := range domain.Categories {
		mods.Register(handler.NewListingHandler(c, svcs.Listings, guards))
	}

	deps := router.Deps{
		Log:     log,
		App:     cfg.App,
		Guards:  guards,
		Modules: mods,
	}
	if cfg.OTel.Endpoint != "" {
		deps.Tracing = cfg.OTel.ServiceName
	}
	if d := strings.ToLower(cfg.Storage.Driver); d == "" || d == "local" {
		deps.ImageDir = cfg.App.StaticDir
	}

	h := cfg.App.HTTP
	srv := server.BuildServer(
		server.Addr(h.Host, h.Port), router.NewAPIEngine(deps),
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)
	base := server.BaseURL(h.Host, h.Port)
	log.Info("user api starting",
		zap.String("open", base),
		zap.String("health", base+"/health"),
		zap.String("api", base+"/api"),
		zap.Strings("cors", cfg.App.CORS.Origins),
		zap.String("storage", cfg.Storage.Driver),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("user api stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
