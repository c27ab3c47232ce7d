package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/access"
	"start-page/app/server/auth"
	"start-page/app/server/models"
	"start-page/app/server/types"
)

// DataGet 总是返回 200 ，内容取决于调用者身份
func (a *App) DataGet(c echo.Context) error {
	doc, id := a.identify(c)
	return c.JSON(http.StatusOK, access.Project(doc, id))
}

func (a *App) DataUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	// 没有用户时允许匿名写入（首次引导），否则需要登录
	doc, id := a.identify(c)
	if doc.Config.HasUsers() && !id.IsMember() {
		return a.er(c, http.StatusUnauthorized)
	}

	// 绑定请求体
	var req models.Partial
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.IsEmpty() {
		return a.er(c, http.StatusBadRequest)
	}

	if req.Config != nil {
		if err := auth.CheckUsersReplace(doc.Config.Users, req.Config.Users, id.Username, access.IsAdmin(doc, id)); err != nil {
			a.l.Info("rejected user list replacement", zap.String("actor", id.Username), zap.Error(err))
			if errors.Is(err, auth.ErrNotAdmin) {
				return a.er(c, http.StatusForbidden)
			}
			return a.er(c, http.StatusConflict)
		}
	}

	next, err := a.st.Write(rctx, &req)
	if err != nil {
		a.l.Error("failed to write document", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.DataUpdateResponse{
		Success: true,
		Data:    access.Project(next, access.Resolve(next, id.Username)),
	})
}

func (a *App) CategoryList(c echo.Context) error {
	doc, id := a.identify(c)
	return c.JSON(http.StatusOK, models.Categories(&doc.Config, access.Services(doc, id)))
}

func credentialStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUserExists), errors.Is(err, auth.ErrSoleUser), errors.Is(err, auth.ErrSelfDelete):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidUsername), errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrWrongPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
