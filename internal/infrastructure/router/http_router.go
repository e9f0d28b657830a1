package router

import (
	"net/http"

	"booking-service/internal/infrastructure/auth"
	"booking-service/internal/interface/transport"
	"booking-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the HTTP router serves.
type Handlers struct {
	Bookings     *transport.BookingHandler
	Sessions     *transport.SessionHandler
	Pricing      *transport.PricingHandler
	Reservations *transport.ReservationHandler
	Websocket    echo.HandlerFunc
	Validator    auth.TokenValidator
	Gatherer     prometheus.Gatherer
}

// NewRouter registers the guest, operator, websocket and ops routes.
func NewRouter(h Handlers, logger logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	api := e.Group("/api")
	api.POST("/bookings/validate", h.Bookings.Validate)
	api.POST("/bookings/confirm", h.Bookings.Confirm)
	api.GET("/sessions/:id", h.Sessions.Get)
	api.POST("/dates/parse", h.Pricing.ParseDates)
	api.POST("/pricing/quote", h.Pricing.Quote)
	api.GET("/reservations/:id", h.Reservations.Get)

	admin := api.Group("/admin", auth.RequireRoles(h.Validator, auth.AdminRoles...))
	admin.GET("/properties/:propertyId/reservations", h.Reservations.ListByProperty)
	admin.PATCH("/reservations/:id/status", h.Reservations.UpdateStatus)
	admin.PUT("/sessions/:id/override", h.Sessions.Update)
	admin.DELETE("/sessions/:id", h.Sessions.Delete)

	if h.Websocket != nil {
		e.GET("/ws/admin/reservations", h.Websocket)
	}

	gatherer := h.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	return e
}

func requestLogger(logger logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				logger.Error("HTTP request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "requestID", v.RequestID, "error", v.Error)
				return nil
			}
			logger.Debug("HTTP request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "requestID", v.RequestID)
			return nil
		},
	})
}
