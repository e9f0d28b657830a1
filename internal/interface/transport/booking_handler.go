package transport

import (
	"net/http"
	"strings"

	"booking-service/internal/domain/entity"
	"booking-service/internal/usecase"
	"booking-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingHandler serves the guest booking flow.
type BookingHandler struct {
	orchestrator *usecase.BookingOrchestrator
	sessions     *usecase.SessionRegistry
	logger       logger.Logger
}

func NewBookingHandler(orchestrator *usecase.BookingOrchestrator, sessions *usecase.SessionRegistry, logger logger.Logger) *BookingHandler {
	return &BookingHandler{
		orchestrator: orchestrator,
		sessions:     sessions,
		logger:       logger,
	}
}

// Validate reports the missing fields of a booking without creating it.
func (h *BookingHandler) Validate(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: msg})
	}

	missing := usecase.Validate(req.dates(), req.Guests, req.PaymentConfirmed)
	resp := validationResponse{Valid: len(missing) == 0, Missing: missing}
	if !resp.Valid {
		resp.Message = (&entity.ValidationError{Missing: missing}).Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// Confirm runs a confirmation for the session named by the X-Session-ID header. Without the
// header the confirmation runs in a one-shot session that is dropped afterwards.
func (h *BookingHandler) Confirm(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: msg})
	}

	sessionID := strings.TrimSpace(c.Request().Header.Get(SessionHeader))
	if sessionID == "" {
		sessionID = uuid.NewString()
		defer h.sessions.Delete(sessionID)
	}
	c.Response().Header().Set(SessionHeader, sessionID)

	result := h.orchestrator.ConfirmBooking(c.Request().Context(), h.sessions.Get(sessionID), usecase.ConfirmBookingInput{
		PropertyID:       req.PropertyID,
		Property:         req.Property,
		Dates:            req.dates(),
		Guests:           req.Guests,
		PaymentConfirmed: req.PaymentConfirmed,
		GuestEmail:       req.GuestEmail,
	})
	return c.JSON(confirmationStatus(result.Outcome), result)
}

func confirmationStatus(outcome usecase.ConfirmationOutcome) int {
	switch outcome {
	case usecase.OutcomeConfirmed:
		return http.StatusCreated
	case usecase.OutcomeConfirmedUnsaved:
		return http.StatusAccepted
	case usecase.OutcomeValidationFailed:
		return http.StatusUnprocessableEntity
	case usecase.OutcomeInProgress:
		return http.StatusConflict
	case usecase.OutcomeCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
