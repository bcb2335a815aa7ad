// Package app 两个 HTTP 进程共用的基础设施装配
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"automarket/internal/core/auth"
	"automarket/internal/core/cache"
	"automarket/internal/core/config"
	"automarket/internal/core/database"
	"automarket/internal/repo"
	"automarket/internal/service"
	"automarket/internal/transport/http/handler"
	mdw "automarket/internal/transport/http/middleware"
)

// Infra 数据库 / 只读 sqlx 句柄 / 缓存
type Infra struct {
	DB    *gorm.DB
	SQLX  *sqlx.DB
	Cache *cache.Cache
	JWT   *auth.JWTer
}

// sqlx 只用来区分占位符与引号风格
func sqlxDriver(driver string) string {
	if driver == "mysql" {
		return "mysql"
	}
	return "pgx"
}

func Open(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Infra, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Provision(ctx, db, l); err != nil {
			return nil, err
		}
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Ping(ctx); err != nil {
		// redis 不可用时退化为只做 singleflight
		l.Warn("redis unavailable, detail cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = c.Close()
		c = cache.New("", "", 0)
	}

	return &Infra{
		DB:    db,
		SQLX:  sqlx.NewDb(sqlDB, sqlxDriver(cfg.DB.Driver)),
		Cache: c,
		JWT: auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer,
			time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute),
	}, nil
}

func (in *Infra) Close() {
	_ = in.Cache.Close()
	if sqlDB, err := in.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Services 两个进程按需取用
type Services struct {
	Auth     *service.AuthService
	Listings *service.ListingService
	Account  *service.AccountService
	Admin    *service.AdminService
}

func (in *Infra) Services(cfg *config.Config, l *zap.Logger) *Services {
	users := repo.NewUserRepo(in.DB)
	listingRepo := repo.NewListingRepo(in.DB)
	listings := service.NewListingService(listingRepo, in.Cache,
		time.Duration(cfg.Redis.DetailTTLSec)*time.Second, l.Named("listing"))

	return &Services{
		Auth:     service.NewAuthService(users, in.JWT, l.Named("auth")),
		Listings: listings,
		Account: service.NewAccountService(users, listingRepo,
			repo.NewFavoriteRepo(in.DB), repo.NewInquiryRepo(in.DB), listings, l.Named("account")),
		Admin: service.NewAdminService(users, repo.NewAdminListingReader(in.SQLX), listings, l.Named("admin")),
	}
}

// Guards 管理员校验每次回库查角色
func (in *Infra) Guards(s *Services, l *zap.Logger) handler.Guards {
	return handler.Guards{
		Auth:  mdw.AuthJWT(in.JWT),
		Admin: mdw.RequireAdmin(s.Admin, l),
	}
}
