package main

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"log"
	"net/http"
	"start-page/app/server/apidocs"
	"start-page/app/server/assets"
	"start-page/app/server/constants"
	"start-page/app/server/handlers"
	"start-page/app/server/inits"
	"start-page/app/server/jwt"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	l.Debug("logger initialized")

	if cfg.Security.KeyGenerated {
		l.Warn("SIGNATURE_SECRET_KEY not set, using a random key; sessions will not survive a restart")
	}

	ctx := context.Background()

	// 初始化文档存储
	st, err := inits.Store(cfg, l)
	if err != nil {
		l.Fatal("error initializing document store", zap.Error(err))
	}

	// 初始化 redis 连接（可选）
	var rdb *redis.Client
	if cfg.System.RedisConnectionString != "" {
		if rdb, err = inits.Redis(cfg.System.RedisConnectionString); err != nil {
			l.Fatal("error initializing Redis connection", zap.Error(err))
		}
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey, constants.AuthTokenDuration)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化图片资源
	repo, err := inits.AssetRepository(ctx, cfg, l)
	if err != nil {
		l.Fatal("error initializing asset storage", zap.Error(err))
	}
	pipeline := assets.NewPipeline(l, repo, &http.Client{})

	// 准备 handler app
	handlerApp := handlers.NewApp(l, st, rdb, j, pipeline)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.String("id", v.RequestID),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// 绑定 echo 服务
	handlerApp.RegisterHandlers(e)

	// 添加 API 文档
	if !cfg.System.IsProd {
		if spec, err := apidocs.Spec(ctx); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api", spec))
		}
	}

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
