package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/handler"
)

// RegisterPublic registers unauthenticated endpoints.  The contact form is
// rate limited and the review list is served from the response cache.
func RegisterPublic(e *echo.Echo, c *handler.ContactHandler, v *handler.ReviewHandler, limit, cache echo.MiddlewareFunc) {
	e.POST("/api/contact", c.Create, limit)
	e.GET("/api/reviews", v.List, cache)
}
