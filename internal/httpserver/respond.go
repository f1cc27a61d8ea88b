package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every response carries the success flag; failures add a message and, for
// 500s only, the underlying diagnostic text under "error".

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}

func respondInternal(c echo.Context, message string, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}
