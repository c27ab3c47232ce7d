package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/access"
	"start-page/app/server/types"
	"strings"
)

func (a *App) UserCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	doc, id, ok := a.requireMember(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}
	if !access.IsAdmin(doc, id) {
		return a.er(c, http.StatusForbidden)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UserCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	username := strings.TrimSpace(req.Username)

	if err := a.machine.Provision(rctx, username); err != nil {
		status := credentialStatus(err)
		if status == http.StatusInternalServerError {
			a.l.Error("failed to provision user", zap.String("username", username), zap.Error(err))
		}
		return a.er(c, status)
	}

	return c.JSON(http.StatusCreated, &types.UserInfo{
		Username:     username,
		PendingSetup: true,
	})
}

func (a *App) UserDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	doc, id, ok := a.requireMember(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}
	if !access.IsAdmin(doc, id) {
		return a.er(c, http.StatusForbidden)
	}

	rctx := c.Request().Context()
	username := c.Param("username")

	if err := a.machine.Remove(rctx, id.Username, username); err != nil {
		status := credentialStatus(err)
		if status == http.StatusInternalServerError {
			a.l.Error("failed to delete user", zap.String("username", username), zap.Error(err))
		}
		return a.er(c, status)
	}

	return c.JSON(http.StatusOK, &types.SuccessResponse{Success: true})
}

func (a *App) UserPasswordUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, id, ok := a.requireMember(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.PasswordUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err := a.machine.ChangePassword(rctx, id.Username, req.CurrentPassword, req.NewPassword); err != nil {
		status := credentialStatus(err)
		if status == http.StatusInternalServerError {
			a.l.Error("failed to update password", zap.String("username", id.Username), zap.Error(err))
		}
		return a.er(c, status)
	}

	return c.JSON(http.StatusOK, &types.SuccessResponse{Success: true})
}
