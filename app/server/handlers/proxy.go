package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/assets"
)

// ProxyImage 转发远程图片，让浏览器绕过跨域限制显示预览
func (a *App) ProxyImage(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return a.er(c, http.StatusBadRequest)
	}

	remote, err := a.assets.Fetch(c.Request().Context(), rawURL)
	if err != nil {
		a.l.Info("proxy fetch failed", zap.String("url", rawURL), zap.Error(err))
		switch {
		case errors.Is(err, assets.ErrInvalidURL):
			return a.er(c, http.StatusBadRequest)
		case errors.Is(err, assets.ErrTimeout):
			return a.er(c, http.StatusGatewayTimeout)
		default:
			return a.er(c, http.StatusBadGateway)
		}
	}
	defer remote.Body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Stream(http.StatusOK, remote.ContentType, remote.Body)
}
