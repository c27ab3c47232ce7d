package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"start-page/app/server/middlewares"
)

// 上传请求体的上限比文件上限略大，留给 multipart 的其他部分
const uploadBodyLimit = "12M"

func (a *App) RegisterHandlers(e *echo.Echo) {
	g := e.Group("", middlewares.Session(a.jwt, a.l))

	g.GET("/health", a.HealthCheck)

	g.POST("/login", a.Login)
	g.GET("/session", a.SessionGet)

	g.GET("/data", a.DataGet)
	g.POST("/data", a.DataUpdate)
	g.GET("/categories", a.CategoryList)

	g.POST("/users", a.UserCreate)
	g.DELETE("/users/:username", a.UserDelete)
	g.POST("/users/password", a.UserPasswordUpdate)

	g.GET("/assets", a.AssetList)
	g.POST("/assets/upload", a.AssetUpload, middleware.BodyLimit(uploadBodyLimit))
	g.POST("/assets/upload-from-url", a.AssetUploadFromURL)
	g.DELETE("/assets/:filename", a.AssetDelete)
	g.GET("/uploads/:filename", a.AssetServe)

	g.GET("/fetch-icon-candidates", a.FetchIconCandidates)
	g.GET("/proxy-image", a.ProxyImage)
}
