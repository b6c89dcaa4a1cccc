package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/service"
)

const dbTimeout = 5 * time.Second

// dbCtx bounds store calls made on behalf of a request.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// HTTPErrorHandler renders errors returned by handlers and middleware as
// {"message": ...}.  Errors that are not *echo.HTTPError become a generic
// 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		log.WithError(err).WithFields(log.Fields{"method": c.Request().Method, "path": c.Path()}).Error("request failed")
		he = echo.NewHTTPError(http.StatusInternalServerError, "Erreur serveur")
	}
	msg, ok := he.Message.(string)
	if !ok {
		msg = http.StatusText(he.Code)
	}
	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(he.Code)
	} else {
		werr = message(c, he.Code, msg)
	}
	if werr != nil {
		log.WithError(werr).Warn("write error response")
	}
}

// respondError maps service and store errors onto status codes.  notFound
// is the resource-specific 404 text.  Unexpected errors are logged and
// answered with a generic 500.
func respondError(c echo.Context, err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return message(c, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrForbidden):
		return message(c, http.StatusUnauthorized, "Non autorisé")
	case errors.Is(err, service.ErrInvalidCredentials):
		return message(c, http.StatusUnauthorized, "Email ou mot de passe incorrect")
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, repository.ErrEmailExists):
		return message(c, http.StatusBadRequest, "Cet email est déjà utilisé")
	case errors.Is(err, service.ErrReviewExists), errors.Is(err, repository.ErrDuplicate):
		return message(c, http.StatusBadRequest, "Vous avez déjà laissé un avis")
	case errors.Is(err, service.ErrInvalidReview):
		return message(c, http.StatusBadRequest, "Note (1 à 5) et commentaire (500 caractères max) requis")
	case errors.Is(err, service.ErrInvalidStatus):
		return message(c, http.StatusBadRequest, "Statut invalide")
	case errors.Is(err, service.ErrReasonRequired):
		return message(c, http.StatusBadRequest, "Une raison est requise pour refuser une réservation")
	case errors.Is(err, service.ErrIllegalTransition):
		return message(c, http.StatusConflict, "Changement de statut non permis")
	}
	log.WithError(err).WithFields(log.Fields{"method": c.Request().Method, "path": c.Path()}).Error("request failed")
	return message(c, http.StatusInternalServerError, "Erreur serveur")
}
