package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

const contactNotFound = "Message non trouvé"

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	Contacts repository.ContactStore
}

func NewContactHandler(s repository.ContactStore) *ContactHandler {
	return &ContactHandler{Contacts: s}
}

type contactReq struct {
	Name    string `json:"name" validate:"required,max=150"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Create stores a visitor's message.
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactReq
	if err := bind(c, &req); err != nil {
		return err
	}
	m := model.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Contacts.Create(ctx, &m); err != nil {
		return respondError(c, err, contactNotFound)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Message envoyé avec succès", "contact": m})
}

// AdminList returns every message, newest first.
func (h *ContactHandler) AdminList(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	list, err := h.Contacts.List(ctx)
	if err != nil {
		return respondError(c, err, contactNotFound)
	}
	return c.JSON(http.StatusOK, list)
}

// AdminMarkRead flags a message as read and returns it.
func (h *ContactHandler) AdminMarkRead(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	m, err := h.Contacts.MarkRead(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, contactNotFound)
	}
	return c.JSON(http.StatusOK, m)
}

// AdminDelete removes a message.
func (h *ContactHandler) AdminDelete(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Contacts.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, contactNotFound)
	}
	return message(c, http.StatusOK, "Message supprimé")
}
