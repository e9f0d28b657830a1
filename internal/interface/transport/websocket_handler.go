package transport

import (
	"net/http"

	"booking-service/internal/infrastructure/auth"
	"booking-service/internal/infrastructure/realtime"
	"booking-service/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewReservationsWebsocketHandler streams reservation changes to operators. The token comes
// from the Authorization header or the token query parameter. propertyId scopes the stream for
// operators whose token is not bound to a hotel; bound operators always get their own hotel.
func NewReservationsWebsocketHandler(hub *realtime.Hub, validator auth.TokenValidator, logger logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := validator.Validate(auth.BearerToken(c.Request()))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		if !claims.HasAnyRole(auth.AdminRoles...) {
			return echo.NewHTTPError(http.StatusForbidden, auth.ErrForbidden.Error())
		}

		propertyID := streamProperty(claims, c.QueryParam("propertyId"))

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "subject", claims.Subject, "error", err)
			return nil
		}

		client := realtime.NewClient(hub, conn, claims.Subject, 32)
		hub.Attach(client, propertyID)
		go client.WritePump()
		client.ReadPump()
		return nil
	}
}

func streamProperty(claims *auth.Claims, requested string) string {
	if claims.PropertyID != "" {
		return claims.PropertyID
	}
	return requested
}
