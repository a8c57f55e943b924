package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/service"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	orderService      *service.OrderService
	paymentService    *service.PaymentService
	catalogService    *service.CatalogService
	reportService     *service.ReportService
	restaurantService *service.RestaurantService
}

// NewHandler creates a new instance of Handler.
func NewHandler(orders *service.OrderService, payments *service.PaymentService, catalog *service.CatalogService, reports *service.ReportService, restaurants *service.RestaurantService) *Handler {
	return &Handler{
		orderService:      orders,
		paymentService:    payments,
		catalogService:    catalog,
		reportService:     reports,
		restaurantService: restaurants,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/restaurants", h.CreateRestaurant)
	e.GET("/restaurants", h.ListRestaurants)
	e.GET("/restaurants/:id", h.GetRestaurant)
	e.POST("/restaurants/:id/waiters", h.CreateWaiter)
	e.GET("/restaurants/:id/waiters", h.ListWaiters)
	e.POST("/restaurants/:id/notes", h.CreateNote)
	e.GET("/restaurants/:id/announcements", h.TodaysAnnouncements)

	e.POST("/restaurants/:id/products", h.CreateProduct)
	e.GET("/restaurants/:id/products", h.ListProducts)
	e.GET("/products/:id", h.GetProduct)
	e.PUT("/products/:id", h.UpdateProduct)
	e.POST("/restaurants/:id/unavailable", h.MarkUnavailable)
	e.GET("/restaurants/:id/unavailable", h.ListUnavailable)

	e.POST("/orders", h.CreateOrder)
	e.GET("/orders/:id", h.OrderDetails)
	e.DELETE("/orders/:id", h.CancelOrder)
	e.POST("/orders/:id/close", h.CloseOrder)
	e.POST("/orders/:id/items", h.AddItem)
	e.PUT("/order-items/:id", h.UpdateItem)
	e.DELETE("/order-items/:id", h.RemoveItem)
	e.POST("/orders/:id/payments", h.AddPayment)
	e.GET("/orders/:id/payments", h.ListPayments)
	e.GET("/waiters/:id/orders/open", h.ListOpenByWaiter)

	e.GET("/restaurants/:id/kpis", h.DailyKpis)
	e.GET("/restaurants/:id/sales-by-waiter", h.SalesByWaiter)
	e.GET("/restaurants/:id/alerts", h.Alerts)

	e.GET("/orders/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "restaurant-pos",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}

// errorResponse maps a service error onto its HTTP status: missing
// records are 404, precondition failures 409, validation failures 400
// and an insufficient-payment rejection 402.
func errorResponse(c echo.Context, err error) error {
	var (
		notClosable  *entity.OrderNotClosableError
		notAccepting *entity.OrderNotAcceptingPaymentsError
		unavailable  *entity.ProductUnavailableError
		insufficient *entity.InsufficientPaymentError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrOrderNotFound),
		errors.Is(err, entity.ErrItemNotFound),
		errors.Is(err, entity.ErrProductNotFound),
		errors.Is(err, entity.ErrRestaurantNotFound),
		errors.Is(err, entity.ErrWaiterNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrOrderNotOpen),
		errors.Is(err, entity.ErrDuplicateRequest),
		errors.As(err, &notClosable),
		errors.As(err, &notAccepting):
		status = http.StatusConflict
	case errors.As(err, &insufficient):
		status = http.StatusPaymentRequired
	case errors.Is(err, entity.ErrPaymentAmount),
		errors.Is(err, entity.ErrPaymentStatus),
		errors.As(err, &unavailable):
		status = http.StatusBadRequest
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}
