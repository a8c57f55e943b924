package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DailyKpis returns the dashboard summary --> GET /restaurants/:id/kpis?date=YYYY-MM-DD
func (h *Handler) DailyKpis(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	kpis, err := h.reportService.DailyKpis(c.Request().Context(), restaurantID, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, kpis)
}

// SalesByWaiter groups closed orders by waiter --> GET /restaurants/:id/sales-by-waiter?start=&end=
func (h *Handler) SalesByWaiter(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "start and end are required"})
	}

	sales, err := h.reportService.SalesByWaiter(c.Request().Context(), restaurantID, start, end)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, sales)
}

// Alerts lists unavailable products and today's failed payments --> GET /restaurants/:id/alerts
func (h *Handler) Alerts(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	alerts, err := h.reportService.Alerts(c.Request().Context(), restaurantID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, alerts)
}
