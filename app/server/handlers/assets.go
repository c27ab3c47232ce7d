package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/assets"
	"start-page/app/server/models"
	"start-page/app/server/types"
)

func assetStatus(err error) int {
	switch {
	case errors.Is(err, assets.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, assets.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, assets.ErrInvalidType),
		errors.Is(err, assets.ErrInvalidName),
		errors.Is(err, assets.ErrUnsupportedFile),
		errors.Is(err, assets.ErrEmptyFile),
		errors.Is(err, assets.ErrInvalidURL),
		errors.Is(err, assets.ErrFetch),
		errors.Is(err, assets.ErrTimeout):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func assetType(raw string) models.AssetType {
	if raw == "" {
		return models.AssetTypeIcon
	}
	return models.AssetType(raw)
}

func (a *App) AssetList(c echo.Context) error {
	list, err := a.assets.List(c.Request().Context())
	if err != nil {
		a.l.Error("failed to list assets", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, list)
}

func (a *App) AssetUpload(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, _, ok := a.requireMember(c); !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		a.l.Info("upload without file", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	f, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer f.Close()

	asset, err := a.assets.Upload(rctx, assetType(c.FormValue("type")), fileHeader.Filename, f)
	if err != nil {
		status := assetStatus(err)
		if status == http.StatusInternalServerError {
			a.l.Error("failed to upload asset", zap.String("filename", fileHeader.Filename), zap.Error(err))
		}
		return a.er(c, status)
	}

	return c.JSON(http.StatusOK, asset)
}

func (a *App) AssetUploadFromURL(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, _, ok := a.requireMember(c); !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UploadFromURLRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.URL == "" {
		return a.er(c, http.StatusBadRequest)
	}

	asset, err := a.assets.IngestURL(rctx, assetType(string(req.Type)), req.URL)
	if err != nil {
		status := assetStatus(err)
		if status == http.StatusInternalServerError {
			a.l.Error("failed to ingest asset", zap.String("url", req.URL), zap.Error(err))
		} else {
			a.l.Info("asset ingest rejected", zap.String("url", req.URL), zap.Error(err))
		}
		return a.er(c, status)
	}

	return c.JSON(http.StatusOK, asset)
}

func (a *App) AssetDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, _, ok := a.requireMember(c); !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	filename := c.Param("filename")
	if err := a.assets.Delete(c.Request().Context(), filename); err != nil {
		status := assetStatus(err)
		if status == http.StatusInternalServerError {
			a.l.Error("failed to delete asset", zap.String("filename", filename), zap.Error(err))
		}
		return a.er(c, status)
	}

	return c.JSON(http.StatusOK, &types.SuccessResponse{Success: true, Message: "Asset deleted"})
}

// AssetServe 公开读取资源，内容类型由扩展名决定
func (a *App) AssetServe(c echo.Context) error {
	filename := c.Param("filename")

	body, contentType, err := a.assets.Open(c.Request().Context(), filename)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) || errors.Is(err, assets.ErrInvalidName) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to open asset", zap.String("filename", filename), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	return c.Stream(http.StatusOK, contentType, body)
}
