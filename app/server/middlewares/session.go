package middlewares

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"start-page/app/server/constants"
	"start-page/app/server/jwt"
)

// Session 解析 Authorization: Bearer 令牌。
// 缺失、过期、格式错误或签名错误都只会让请求变成匿名，而不是返回错误。
func Session(j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: constants.ContextKeySession,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) != "" {
				l.Debug("ignoring invalid session", zap.Error(err))
			}
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// SessionUser 返回会话中的用户名，没有会话时为空
func SessionUser(c echo.Context) string {
	if u, ok := c.Get(constants.ContextKeySession).(*jwt.User); ok && u != nil {
		return u.Username
	}
	return ""
}
