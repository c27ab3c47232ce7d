package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
	"start-page/app/server/access"
	"start-page/app/server/middlewares"
	"start-page/app/server/models"
	"start-page/app/server/types"
)

// identify 读取当前文档并确定调用者身份
func (a *App) identify(c echo.Context) (*models.Document, access.Identity) {
	doc := a.st.Read(c.Request().Context())
	return doc, access.Resolve(doc, middlewares.SessionUser(c))
}

// requireMember 要求有效会话，访客和匿名都视为未认证
func (a *App) requireMember(c echo.Context) (*models.Document, access.Identity, bool) {
	doc, id := a.identify(c)
	return doc, id, id.IsMember()
}

func (a *App) SessionGet(c echo.Context) error {
	doc, id := a.identify(c)

	return c.JSON(http.StatusOK, &types.SessionInfo{
		Authenticated: id.IsMember(),
		Username:      id.Username,
		IsAdmin:       access.IsAdmin(doc, id),
		IsGuest:       id.Kind == access.Guest,
		HasUsers:      doc.Config.HasUsers(),
	})
}
