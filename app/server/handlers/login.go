package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/types"
	"strings"
)

func (a *App) Login(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 没有写用户名或密码
	if req.Username == nil || req.Password == nil || strings.TrimSpace(*req.Username) == "" {
		return a.er(c, http.StatusBadRequest)
	}

	res, err := a.machine.Authenticate(rctx, *req.Username, *req.Password)
	if err != nil {
		a.l.Error("failed to authenticate", zap.String("username", *req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if !res.OK {
		return c.JSON(http.StatusUnauthorized, &types.LoginFailure{
			Message:            res.Reason,
			IsNewUser:          res.IsNewUser,
			NeedsPasswordSetup: res.NeedsPasswordSetup,
		})
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		Token:              res.Token,
		Username:           res.Username,
		NeedsPasswordSetup: res.NeedsPasswordSetup,
	})
}
