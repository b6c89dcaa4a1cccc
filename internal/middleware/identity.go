package middleware

// identity.go holds the context keys the auth middleware fills in and the
// typed getters handlers use to read them back.

import (
	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/model"
)

const (
	ctxUser    = "auth.user"
	ctxAdmin   = "auth.admin"
	ctxSubject = "auth.subject"
)

// CurrentUser returns the user resolved by UserAuth.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(ctxUser).(model.User)
	return u, ok
}

// CurrentAdmin returns the admin resolved by AdminAuth.
func CurrentAdmin(c echo.Context) (model.Admin, bool) {
	a, ok := c.Get(ctxAdmin).(model.Admin)
	return a, ok
}

// subjectID is the authenticated principal id, or "anon" on public routes.
func subjectID(c echo.Context) string {
	if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
		return s
	}
	return "anon"
}
