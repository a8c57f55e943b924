package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-pos/internal/entity"
)

// CreateProduct adds a menu product --> POST /restaurants/:id/products
func (h *Handler) CreateProduct(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if product.Name == "" || product.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product needs a name and a non-negative price"})
	}
	product.RestaurantID = restaurantID

	created, err := h.catalogService.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, created)
}

// GetProduct retrieves one product --> GET /products/:id
func (h *Handler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct edits a product --> PUT /products/:id
func (h *Handler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if product.Name == "" || product.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product needs a name and a non-negative price"})
	}
	product.ID = id

	updated, err := h.catalogService.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// ListProducts lists a restaurant's menu --> GET /restaurants/:id/products
func (h *Handler) ListProducts(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	products, err := h.catalogService.ListProducts(c.Request().Context(), restaurantID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// MarkUnavailable flags a product off the menu for a day --> POST /restaurants/:id/unavailable
func (h *Handler) MarkUnavailable(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	input := struct {
		ProductID int    `json:"product_id"`
		DateISO   string `json:"date_iso"`
	}{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.catalogService.MarkUnavailableToday(c.Request().Context(), restaurantID, input.ProductID, input.DateISO); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product marked unavailable"})
}

// ListUnavailable lists the day's unavailable products --> GET /restaurants/:id/unavailable
func (h *Handler) ListUnavailable(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	entries, err := h.catalogService.ListUnavailableByDate(c.Request().Context(), restaurantID, c.QueryParam("date"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, entries)
}
