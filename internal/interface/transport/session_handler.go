package transport

import (
	"net/http"

	"booking-service/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionHandler exposes booking sessions. Guests may read a session; the price override
// and alternative date range are set by operators.
type SessionHandler struct {
	sessions *usecase.SessionRegistry
}

func NewSessionHandler(sessions *usecase.SessionRegistry) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Get(c echo.Context) error {
	session, ok := h.sessions.Lookup(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
	}
	return c.JSON(http.StatusOK, session.View())
}

// Update sets the price override and/or the alternative date range. Omitted fields are left as is.
func (h *SessionHandler) Update(c echo.Context) error {
	var req sessionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.PriceOverride != nil && *req.PriceOverride < 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "price override must not be negative"})
	}

	session := h.sessions.Get(c.Param("id"))
	switch {
	case req.ClearPriceOverride:
		session.SetPriceOverride(nil)
	case req.PriceOverride != nil:
		session.SetPriceOverride(req.PriceOverride)
	}
	if req.AltDateRange != nil {
		session.SetAltDateRange(*req.AltDateRange)
	}
	return c.JSON(http.StatusOK, session.View())
}

func (h *SessionHandler) Delete(c echo.Context) error {
	h.sessions.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
