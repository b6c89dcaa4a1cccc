package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/middleware"
	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/service"
)

const reservationNotFound = "Réservation non trouvée"

// ReservationHandler serves both the customer and the admin reservation
// endpoints.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(s *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: s}
}

// createReservationReq has no status field: unknown fields are refused, so
// a client-supplied status never reaches the store.
type createReservationReq struct {
	VehicleType model.VehicleType `json:"vehicleType" validate:"required,oneof=berline suv camionnette moto autre"`
	Service     model.ServiceType `json:"service" validate:"required,oneof=exterieur complet forfait"`
	Date        string            `json:"date" validate:"required"`
	Time        string            `json:"time" validate:"required,max=20"`
	Address     string            `json:"address" validate:"required,max=255"`
	Notes       string            `json:"notes" validate:"max=1000"`
}

type updateStatusReq struct {
	Status       model.Status `json:"status" validate:"required"`
	RejectReason string       `json:"rejectReason" validate:"max=500"`
}

// Create books a reservation for the signed-in user.
func (h *ReservationHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	var req createReservationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return message(c, http.StatusBadRequest, "Champ invalide : date")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()
	r, err := h.Reservations.Create(ctx, u, service.NewReservation{
		VehicleType: req.VehicleType,
		Service:     req.Service,
		Date:        date,
		Time:        req.Time,
		Address:     req.Address,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondError(c, err, reservationNotFound)
	}
	return c.JSON(http.StatusCreated, r)
}

// ListMine returns the caller's reservations, newest first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	list, err := h.Reservations.ListMine(ctx, u.ID)
	if err != nil {
		return respondError(c, err, reservationNotFound)
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one of the caller's reservations.
func (h *ReservationHandler) Get(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	r, err := h.Reservations.GetForUser(ctx, u.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err, reservationNotFound)
	}
	return c.JSON(http.StatusOK, r)
}

// AdminList returns reservations filtered by ?status=, newest first.
func (h *ReservationHandler) AdminList(c echo.Context) error {
	status, err := service.ParseStatusFilter(c.QueryParam("status"))
	if err != nil {
		return respondError(c, err, reservationNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	list, err := h.Reservations.List(ctx, status)
	if err != nil {
		return respondError(c, err, reservationNotFound)
	}
	return c.JSON(http.StatusOK, list)
}

// AdminUpdateStatus moves a reservation through the workflow.
func (h *ReservationHandler) AdminUpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	r, err := h.Reservations.UpdateStatus(ctx, c.Param("id"), req.Status, req.RejectReason)
	if err != nil {
		return respondError(c, err, reservationNotFound)
	}
	return c.JSON(http.StatusOK, r)
}

// AdminDelete removes a reservation.
func (h *ReservationHandler) AdminDelete(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Reservations.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, reservationNotFound)
	}
	return message(c, http.StatusOK, "Réservation supprimée")
}

// AdminStats returns the dashboard counters.
func (h *ReservationHandler) AdminStats(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	st, err := h.Reservations.Stats(ctx)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, st)
}
