package transport

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"
	"booking-service/internal/infrastructure/auth"
	"booking-service/internal/usecase"
	"booking-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReservationHandler serves reservation reads and operator status changes.
type ReservationHandler struct {
	reservations repository.ReservationRepository
	status       *usecase.ReservationStatusService
	errors       *ErrorMapper
	logger       logger.Logger
}

func NewReservationHandler(reservations repository.ReservationRepository, status *usecase.ReservationStatusService, logger logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		status:       status,
		errors:       NewReservationErrorMapper(),
		logger:       logger,
	}
}

// Get returns a reservation to a guest who presents its confirmation number or PIN in the
// code query parameter. A wrong code answers like an unknown id.
func (h *ReservationHandler) Get(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "confirmation code required"})
	}
	reservation, err := h.reservations.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if !matchesCode(reservation, code) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "reservation not found"})
	}
	return c.JSON(http.StatusOK, reservation)
}

func matchesCode(r *entity.Reservation, code string) bool {
	number := subtle.ConstantTimeCompare([]byte(r.Details.ConfirmationNumber), []byte(code))
	pin := subtle.ConstantTimeCompare([]byte(r.Details.PIN), []byte(code))
	return number|pin == 1
}

// ListByProperty returns a hotel's reservations, newest first. limit defaults to 100.
func (h *ReservationHandler) ListByProperty(c echo.Context) error {
	if claims := auth.ClaimsFrom(c); claims != nil && !claims.CanAccessProperty(c.Param("propertyId")) {
		return c.JSON(http.StatusForbidden, errorResponse{Error: auth.ErrPropertyScope.Error()})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	reservations, err := h.reservations.ListByProperty(c.Request().Context(), c.Param("propertyId"), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	id := c.Param("id")
	claims := auth.ClaimsFrom(c)
	if claims != nil && claims.PropertyID != "" {
		reservation, err := h.reservations.FindByID(c.Request().Context(), id)
		if err != nil {
			return h.fail(c, err)
		}
		if !claims.CanAccessProperty(reservation.PropertyID) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: auth.ErrPropertyScope.Error()})
		}
	}

	result := h.status.UpdateReservationStatus(c.Request().Context(), id, req.Status)
	if !result.Success {
		return c.JSON(h.errors.Map(result.Err).Status, result)
	}

	if claims != nil {
		h.logger.Info("Operator changed reservation status",
			"reservationID", id,
			"operator", claims.Subject,
			"status", result.Status,
			"changed", result.Changed)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ReservationHandler) fail(c echo.Context, err error) error {
	info := h.errors.Map(err)
	if info.Status >= http.StatusInternalServerError {
		h.logger.Error("Reservation request failed", "path", c.Path(), "error", err)
	}
	return c.JSON(info.Status, errorResponse{Error: info.Message})
}
