package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/handler"
)

// RegisterAdmin registers operator endpoints under /api/admin.  All routes
// require an admin token.
func RegisterAdmin(e *echo.Echo, r *handler.ReservationHandler, c *handler.ContactHandler, adminAuth echo.MiddlewareFunc) {
	g := e.Group("/api/admin", adminAuth)

	// ---- Reservations ----
	g.GET("/reservations", r.AdminList)
	g.PUT("/reservations/:id", r.AdminUpdateStatus)
	g.DELETE("/reservations/:id", r.AdminDelete)
	g.GET("/stats", r.AdminStats)

	// ---- Contact messages ----
	g.GET("/contacts", c.AdminList)
	g.PUT("/contacts/:id/read", c.AdminMarkRead)
	g.DELETE("/contacts/:id", c.AdminDelete)
}
