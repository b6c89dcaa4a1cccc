package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/utils"
)

// UserAuth admits requests carrying a valid user token whose subject still
// exists.  The user is available through CurrentUser.
func UserAuth(secret string, users repository.UserStore) echo.MiddlewareFunc {
	return requireKind(secret, utils.KindUser, "Non autorisé, utilisateur non trouvé",
		func(c echo.Context, id string) error {
			u, err := users.GetByID(c.Request().Context(), id)
			if err != nil {
				return err
			}
			c.Set(ctxUser, u)
			return nil
		})
}

// AdminAuth admits requests carrying a valid admin token whose subject
// still exists.  A user token never passes, even for an identical id.
func AdminAuth(secret string, admins repository.AdminStore) echo.MiddlewareFunc {
	return requireKind(secret, utils.KindAdmin, "Non autorisé, admin non trouvé",
		func(c echo.Context, id string) error {
			a, err := admins.GetByID(c.Request().Context(), id)
			if err != nil {
				return err
			}
			c.Set(ctxAdmin, a)
			return nil
		})
}
