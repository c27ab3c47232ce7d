package handlers

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"start-page/app/server/assets"
	"start-page/app/server/auth"
	"start-page/app/server/jwt"
	"start-page/app/server/store"
)

type App struct {
	l       *zap.Logger      // 日志
	st      store.Store      // 文档存储
	rdb     *redis.Client    // Redis ，可以为空（不缓存）
	jwt     *jwt.JWT         // JWT ，用于无状态验证
	machine *auth.Machine    // 登录与用户状态
	assets  *assets.Pipeline // 图片资源
}

func NewApp(l *zap.Logger, st store.Store, rdb *redis.Client, j *jwt.JWT, pipeline *assets.Pipeline) *App {
	return &App{
		l:       l,
		st:      st,
		rdb:     rdb,
		jwt:     j,
		machine: auth.NewMachine(l, st, j),
		assets:  pipeline,
	}
}
