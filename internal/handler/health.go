package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe for load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Welcome answers the API root.
func Welcome(c echo.Context) error {
	return message(c, http.StatusOK, "Bienvenue sur l'API EcoWash")
}
