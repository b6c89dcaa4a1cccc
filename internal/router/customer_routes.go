package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/handler"
)

// RegisterCustomer registers user-scoped endpoints.  All routes require a
// user token; admin tokens are refused.
func RegisterCustomer(e *echo.Echo, r *handler.ReservationHandler, v *handler.ReviewHandler, userAuth echo.MiddlewareFunc) {
	res := e.Group("/api/reservations", userAuth)
	res.POST("", r.Create)
	// /my is registered before /:id; echo prefers static segments anyway.
	res.GET("/my", r.ListMine)
	res.GET("/:id", r.Get)

	// GET /api/reviews is public, so auth is attached per route here
	// instead of on the group.
	rev := e.Group("/api/reviews")
	rev.GET("/my", v.GetMine, userAuth)
	rev.POST("", v.Create, userAuth)
	rev.PUT("", v.Update, userAuth)
	rev.DELETE("", v.Delete, userAuth)
}
