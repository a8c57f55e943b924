package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the order, catalog and payment operations.
// Handlers map these onto HTTP status codes.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotOpen       = errors.New("order is not open for modifications")
	ErrItemNotFound       = errors.New("order item not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrWaiterNotFound     = errors.New("waiter not found")
	ErrPaymentAmount      = errors.New("payment amount must be positive")
	ErrPaymentStatus      = errors.New("payment status must be pending, completed or failed")
	ErrDuplicateRequest   = errors.New("idempotent key already used")
)

// ProductUnavailableError rejects adding a product whose availability
// flag is off. The name is included so waiters see which product it was.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product '%s' is currently unavailable", e.Name)
}

// OrderNotClosableError rejects closing an order that is not open.
type OrderNotClosableError struct {
	Status string
}

func (e *OrderNotClosableError) Error() string {
	return fmt.Sprintf("order status is '%s', cannot close", e.Status)
}

// OrderNotAcceptingPaymentsError rejects payments against a terminal order.
type OrderNotAcceptingPaymentsError struct {
	Status string
}

func (e *OrderNotAcceptingPaymentsError) Error() string {
	return fmt.Sprintf("order is %s and cannot accept new payments", e.Status)
}

// InsufficientPaymentError rejects a close attempt whose completed
// payments do not cover the order total. Figures are reported with two
// decimal places.
type InsufficientPaymentError struct {
	Paid  float64
	Total float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("cannot close order: total paid (%.2f) is less than order total (%.2f)", e.Paid, e.Total)
}
