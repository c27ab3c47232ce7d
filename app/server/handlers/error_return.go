package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
	"start-page/app/server/types"
	"start-page/app/server/utils"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: utils.P(http.StatusText(statusCode)),
	})
}
