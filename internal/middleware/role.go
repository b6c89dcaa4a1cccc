package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/utils"
)

// resolver loads the principal named by a verified token and stores it in
// the context.  repository.ErrNotFound means the account is gone.
type resolver func(c echo.Context, id string) error

// requireKind verifies the bearer token, insists its kind claim equals kind
// and hands the subject to resolve.  Every failure ends the request with
// 401 before the handler runs.
func requireKind(secret, kind, notFoundMsg string, resolve resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "Non autorisé, pas de token")
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil || claims.Kind != kind {
				return unauthorized(c, "Non autorisé, token invalide")
			}

			if err := resolve(c, claims.Subject); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return unauthorized(c, notFoundMsg)
				}
				log.WithError(err).WithField("kind", kind).Error("auth: principal lookup failed")
				return unauthorized(c, "Non autorisé, token invalide")
			}
			c.Set(ctxSubject, claims.Subject)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": msg})
}
