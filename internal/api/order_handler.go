package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/service"
)

func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

// CreateOrder opens a new order with its initial items --> POST /orders
func (h *Handler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	input := service.CreateOrderInput{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	idempotentKey := c.Request().Header.Get("Idempotent-Key")

	order, err := h.orderService.CreateOrder(ctx, &input, idempotentKey)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// OrderDetails returns the order with its items and payments --> GET /orders/:id
func (h *Handler) OrderDetails(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	details, err := h.orderService.OrderDetails(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, details)
}

// CancelOrder cancels an open order --> DELETE /orders/:id
func (h *Handler) CancelOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// CloseOrder settles an order once payments cover it --> POST /orders/:id/close
func (h *Handler) CloseOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.CloseOrder(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order closed successfully.",
		"order":   order,
	})
}

// AddItem appends a product to an open order --> POST /orders/:id/items
func (h *Handler) AddItem(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	input := struct {
		ProductID int    `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Notes     string `json:"notes"`
	}{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if input.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Quantity must be positive"})
	}

	itemID, total, err := h.orderService.AddItem(c.Request().Context(), orderID, input.ProductID, input.Quantity, input.Notes)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"item_id": itemID,
		"total":   total,
	})
}

// UpdateItem patches quantity and/or notes --> PUT /order-items/:id
func (h *Handler) UpdateItem(c echo.Context) error {
	itemID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	input := struct {
		Quantity *int    `json:"quantity"`
		Notes    *string `json:"notes"`
	}{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	total, err := h.orderService.UpdateItem(c.Request().Context(), itemID, input.Quantity, input.Notes)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"total": total})
}

// RemoveItem deletes a line item --> DELETE /order-items/:id
func (h *Handler) RemoveItem(c echo.Context) error {
	itemID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	total, err := h.orderService.RemoveItem(c.Request().Context(), itemID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"total": total})
}

// AddPayment records a payment attempt --> POST /orders/:id/payments
func (h *Handler) AddPayment(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	payment := entity.Payment{}
	if err := c.Bind(&payment); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	payment.OrderID = orderID

	created, err := h.paymentService.AddPayment(c.Request().Context(), &payment)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, created)
}

// ListPayments returns the order's ledger --> GET /orders/:id/payments
func (h *Handler) ListPayments(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	payments, err := h.paymentService.ListPayments(c.Request().Context(), orderID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, payments)
}

// ListOpenByWaiter returns a waiter's open tabs --> GET /waiters/:id/orders/open
func (h *Handler) ListOpenByWaiter(c echo.Context) error {
	waiterID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	orders, err := h.orderService.ListOpenByWaiter(c.Request().Context(), waiterID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}
