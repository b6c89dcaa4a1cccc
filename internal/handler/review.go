package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/middleware"
	"github.com/ecowash/ecowash-backend/internal/service"
)

const reviewNotFound = "Avis non trouvé"

// cachePurger drops cached public listings after a write.
type cachePurger interface {
	Purge(ctx context.Context)
}

// ReviewHandler serves the public review list and the caller's own review.
type ReviewHandler struct {
	Reviews *service.ReviewService
	Cache   cachePurger
}

func NewReviewHandler(s *service.ReviewService, cache cachePurger) *ReviewHandler {
	return &ReviewHandler{Reviews: s, Cache: cache}
}

type createReviewReq struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=500"`
}

type updateReviewReq struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`
}

// List returns every review with author names.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	list, err := h.Reviews.List(ctx)
	if err != nil {
		return respondError(c, err, reviewNotFound)
	}
	return c.JSON(http.StatusOK, list)
}

// GetMine returns the caller's review or null.
func (h *ReviewHandler) GetMine(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	r, err := h.Reviews.GetMine(ctx, u)
	if err != nil {
		return respondError(c, err, reviewNotFound)
	}
	return c.JSON(http.StatusOK, r)
}

// Create stores the caller's single review.
func (h *ReviewHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	var req createReviewReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	r, err := h.Reviews.Create(ctx, u, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err, reviewNotFound)
	}
	h.purge(ctx)
	return c.JSON(http.StatusCreated, r)
}

// Update changes rating and/or comment of the caller's review.
func (h *ReviewHandler) Update(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	var req updateReviewReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	r, err := h.Reviews.Update(ctx, u, service.ReviewPatch{Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		return respondError(c, err, reviewNotFound)
	}
	h.purge(ctx)
	return c.JSON(http.StatusOK, r)
}

// Delete removes the caller's review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Reviews.Delete(ctx, u); err != nil {
		return respondError(c, err, reviewNotFound)
	}
	h.purge(ctx)
	return message(c, http.StatusOK, "Avis supprimé")
}

func (h *ReviewHandler) purge(ctx context.Context) {
	if h.Cache != nil {
		h.Cache.Purge(ctx)
	}
}
