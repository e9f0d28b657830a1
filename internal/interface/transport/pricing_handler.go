package transport

import (
	"net/http"
	"strings"

	"booking-service/internal/domain/entity"
	"booking-service/internal/usecase"
	"booking-service/pkg/utils"

	"github.com/labstack/echo/v4"
)

// PricingHandler serves date parsing and price quotes for the booking form.
type PricingHandler struct {
	parser   usecase.DateRangeParser
	dates    usecase.DateFormatter
	money    usecase.CurrencyFormatter
	pricing  usecase.PricingCalculator
	currency string
}

func NewPricingHandler(parser usecase.DateRangeParser, dates usecase.DateFormatter, money usecase.CurrencyFormatter, currency string) *PricingHandler {
	return &PricingHandler{
		parser:   parser,
		dates:    dates,
		money:    money,
		pricing:  usecase.NewPricingCalculator(),
		currency: currency,
	}
}

// ParseDates resolves free text such as "12 - 15 Jun".
func (h *PricingHandler) ParseDates(c echo.Context) error {
	var req parseDatesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	dates, ok := h.parser.Parse(req.Text)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "could not determine dates from " + strings.TrimSpace(req.Text)})
	}
	return c.JSON(http.StatusOK, parseDatesResponse{
		CheckIn:  utils.FormatISO(*dates.CheckIn),
		CheckOut: utils.FormatISO(*dates.CheckOut),
		Display:  h.dates.FormatShortDate(*dates.CheckIn) + " - " + h.dates.FormatShortDate(*dates.CheckOut),
		Nights:   dates.Nights(),
	})
}

// Quote prices a stay. Dates win over an explicit night count.
func (h *PricingHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	nights := req.Nights
	if dates := (entity.BookingDates{CheckIn: req.CheckIn, CheckOut: req.CheckOut}); dates.Complete() {
		nights = dates.Nights()
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = h.currency
	}

	breakdown := h.pricing.Price(req.PricePerNight, req.PriceOverride, nights, req.Rooms)
	return c.JSON(http.StatusOK, quoteResponse{
		PricingBreakdown: breakdown,
		Formatted:        h.money.FormatCurrency(breakdown.Total, currency),
		Currency:         currency,
	})
}
