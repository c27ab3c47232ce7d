package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/types"
)

// HealthCheck 检查进程存活，配置了 Redis 时同时检查缓存连接
func (a *App) HealthCheck(c echo.Context) error {
	if a.rdb != nil {
		if err := a.rdb.Ping(c.Request().Context()).Err(); err != nil {
			a.l.Error("health check: redis unreachable", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, &types.HealthStatus{Status: "degraded", Cache: "unreachable"})
		}
		return c.JSON(http.StatusOK, &types.HealthStatus{Status: "ok", Cache: "ok"})
	}

	return c.JSON(http.StatusOK, &types.HealthStatus{Status: "ok", Cache: "disabled"})
}
