package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-pos/internal/entity"
)

// CreateRestaurant registers a restaurant --> POST /restaurants
func (h *Handler) CreateRestaurant(c echo.Context) error {
	restaurant := entity.Restaurant{}
	if err := c.Bind(&restaurant); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.restaurantService.CreateRestaurant(c.Request().Context(), &restaurant)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, created)
}

// GetRestaurant retrieves a restaurant --> GET /restaurants/:id
func (h *Handler) GetRestaurant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	restaurant, err := h.restaurantService.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, restaurant)
}

// ListRestaurants lists every restaurant --> GET /restaurants
func (h *Handler) ListRestaurants(c echo.Context) error {
	restaurants, err := h.restaurantService.ListRestaurants(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, restaurants)
}

// CreateWaiter registers a waiter --> POST /restaurants/:id/waiters
func (h *Handler) CreateWaiter(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	waiter := entity.Waiter{}
	if err := c.Bind(&waiter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	waiter.RestaurantID = restaurantID

	created, err := h.restaurantService.CreateWaiter(c.Request().Context(), &waiter)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, created)
}

// ListWaiters lists a restaurant's waiters --> GET /restaurants/:id/waiters
func (h *Handler) ListWaiters(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	waiters, err := h.restaurantService.ListWaiters(c.Request().Context(), restaurantID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, waiters)
}

// CreateNote posts to the announcement board --> POST /restaurants/:id/notes
func (h *Handler) CreateNote(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	note := entity.WaiterNote{}
	if err := c.Bind(&note); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	note.RestaurantID = restaurantID

	created, err := h.restaurantService.CreateNote(c.Request().Context(), &note)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, created)
}

// TodaysAnnouncements lists today's board --> GET /restaurants/:id/announcements
func (h *Handler) TodaysAnnouncements(c echo.Context) error {
	restaurantID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	notes, err := h.restaurantService.TodaysAnnouncements(c.Request().Context(), restaurantID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, notes)
}
