package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// OrderEvent is the message fanned out to subscribers (kitchen screens,
// waiter tablets) after a committed order mutation. Delivery is
// best-effort; no invariant depends on it.
type OrderEvent struct {
	EventID string        `json:"event_id"`
	Action  string        `json:"action"`
	Order   *entity.Order `json:"order"`
}

// CreateOrderItemInput is one line of the bulk creation path. Price is
// caller-supplied and trusted as the at-order-time snapshot; the catalog
// is not consulted here, unlike the incremental AddItem path.
type CreateOrderItemInput struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Notes       string  `json:"notes"`
}

type CreateOrderInput struct {
	RestaurantID int                    `json:"restaurant_id"`
	WaiterID     int                    `json:"waiter_id"`
	TableNumber  string                 `json:"table_number"`
	Customer     *entity.Customer       `json:"customer"`
	Items        []CreateOrderItemInput `json:"items"`
}

// OrderService is a service that provides order lifecycle operations:
// creation, line item mutation, closing and cancelling.
type OrderService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	catalog     *CatalogService
	kafkaWriter *kafka.Writer
	rdb         *redis.Client
}

// NewOrderService creates a new instance of OrderService. kafkaWriter
// and rdb may be nil, which disables event publishing and idempotency
// key tracking respectively.
func NewOrderService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, catalog *CatalogService, kafkaWriter *kafka.Writer, rdb *redis.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		catalog:     catalog,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
	}
}

// CreateOrder opens a new tab for a table with its initial items. The
// total is the sum of quantity times the caller-supplied price per item.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput, idempotentKey string) (*entity.Order, error) {
	ok, err := s.validateIdempotentKey(ctx, idempotentKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entity.ErrDuplicateRequest
	}

	var total float64
	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		total += float64(in.Quantity) * in.Price
		items = append(items, entity.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Notes:       in.Notes,
		})
	}

	order := &entity.Order{
		RestaurantID: input.RestaurantID,
		WaiterID:     input.WaiterID,
		TableNumber:  input.TableNumber,
		Customer:     input.Customer,
		Total:        total,
	}

	createdOrder, err := s.orderRepo.CreateOrder(ctx, order, items)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, createdOrder, "created"); err != nil {
		logger.Warn().Err(err).Msgf("Failed to publish created event for order %d", createdOrder.ID)
	}

	return createdOrder, nil
}

// AddItem appends one product to an open order, snapshotting the
// product's current name and price. Unlike CreateOrder it re-validates
// existence and availability against the catalog.
func (s *OrderService) AddItem(ctx context.Context, orderID, productID, quantity int, notes string) (int, float64, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	if !product.IsAvailable {
		return 0, 0, &entity.ProductUnavailableError{Name: product.Name}
	}

	item := &entity.OrderItem{
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
		Notes:       notes,
	}

	itemID, total, err := s.orderRepo.AddItem(ctx, item)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding item to order %d", orderID)
		return 0, 0, err
	}

	s.publishOrderChange(ctx, orderID, "item-added")
	return itemID, total, nil
}

// UpdateItem patches quantity and/or notes. A quantity of zero or less
// removes the item. The recomputed total is returned either way.
func (s *OrderService) UpdateItem(ctx context.Context, itemID int, quantity *int, notes *string) (float64, error) {
	orderID, total, err := s.orderRepo.UpdateItem(ctx, itemID, quantity, notes)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating order item %d", itemID)
		return 0, err
	}

	s.publishOrderChange(ctx, orderID, "item-updated")
	return total, nil
}

// RemoveItem deletes a line item from an open order.
func (s *OrderService) RemoveItem(ctx context.Context, itemID int) (float64, error) {
	orderID, total, err := s.orderRepo.RemoveItem(ctx, itemID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error removing order item %d", itemID)
		return 0, err
	}

	s.publishOrderChange(ctx, orderID, "item-removed")
	return total, nil
}

// CloseOrder settles an order: it succeeds only when completed payments
// cover the total, which the repository verifies in the same transaction
// as the status change.
func (s *OrderService) CloseOrder(ctx context.Context, orderID int) (*entity.Order, error) {
	order, err := s.orderRepo.CloseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, order, "closed"); err != nil {
		logger.Warn().Err(err).Msgf("Failed to publish closed event for order %d", orderID)
	}

	return order, nil
}

// CancelOrder cancels an open order. Cancelled orders accept no further
// items or payments.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int) (*entity.Order, error) {
	order, err := s.orderRepo.CancelOrder(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error cancelling order %d", orderID)
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, order, "cancelled"); err != nil {
		logger.Warn().Err(err).Msgf("Failed to publish cancelled event for order %d", orderID)
	}

	return order, nil
}

// OrderDetails returns the order header with its items and payments.
func (s *OrderService) OrderDetails(ctx context.Context, orderID int) (*entity.OrderDetails, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &entity.OrderDetails{Order: *order, Items: items, Payments: payments}, nil
}

// ListOpenByWaiter returns the open tabs assigned to one waiter.
func (s *OrderService) ListOpenByWaiter(ctx context.Context, waiterID int) ([]entity.Order, error) {
	return s.orderRepo.ListOpenByWaiter(ctx, waiterID)
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, action string) error {
	if s.kafkaWriter == nil {
		return nil
	}

	event := OrderEvent{
		EventID: uuid.NewString(),
		Action:  action,
		Order:   order,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// order-created-1, order-closed-1, ...
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", action, order.ID)),
		Value: eventJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

// publishOrderChange re-reads the order and publishes it; used after
// item mutations where only the order id is at hand.
func (s *OrderService) publishOrderChange(ctx context.Context, orderID int, action string) {
	if s.kafkaWriter == nil {
		return
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		logger.Warn().Err(err).Msgf("Skipping %s event for order %d", action, orderID)
		return
	}
	if err := s.publishOrderEvent(ctx, order, action); err != nil {
		logger.Warn().Err(err).Msgf("Failed to publish %s event for order %d", action, orderID)
	}
}

func (s *OrderService) validateIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil || key == "" {
		return true, nil
	}

	// check if the key exists in the redis cache; if it does the request
	// was already processed
	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	val, err := s.rdb.Get(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	if val != "" {
		return false, nil
	}

	// remember the key with a TTL of 24 hours
	if err := s.rdb.Set(ctx, redisKey, "exists", 24*time.Hour).Err(); err != nil {
		return false, err
	}

	return true, nil
}
