package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
)

// PaymentService records payment attempts against orders. The ledger is
// append-only: recording a payment never closes the order, that is
// always a separate explicit call.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	kafkaWriter *kafka.Writer
}

// NewPaymentService creates a new instance of PaymentService.
// kafkaWriter may be nil, which disables event publishing.
func NewPaymentService(paymentRepo repository.PaymentRepository, kafkaWriter *kafka.Writer) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		kafkaWriter: kafkaWriter,
	}
}

func validPaymentStatus(status string) bool {
	switch status {
	case entity.PaymentStatusPending, entity.PaymentStatusCompleted, entity.PaymentStatusFailed:
		return true
	}
	return false
}

// AddPayment appends a payment record to an order that is still open.
// Over-payment is not rejected here; excess completed payments simply
// satisfy the closing check later.
func (s *PaymentService) AddPayment(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	if payment.Amount <= 0 {
		return nil, entity.ErrPaymentAmount
	}
	if !validPaymentStatus(payment.Status) {
		return nil, fmt.Errorf("%w: got %q", entity.ErrPaymentStatus, payment.Status)
	}

	created, err := s.paymentRepo.AddPayment(ctx, payment)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding payment to order %d", payment.OrderID)
		return nil, err
	}

	s.publishPaymentEvent(ctx, created)
	return created, nil
}

// ListPayments returns the order's payment records in insertion order.
func (s *PaymentService) ListPayments(ctx context.Context, orderID int) ([]entity.Payment, error) {
	return s.paymentRepo.ListByOrder(ctx, orderID)
}

// AmountPaid sums the order's completed payments.
func (s *PaymentService) AmountPaid(ctx context.Context, orderID int) (float64, error) {
	return s.paymentRepo.AmountPaid(ctx, orderID)
}

func (s *PaymentService) publishPaymentEvent(ctx context.Context, payment *entity.Payment) {
	if s.kafkaWriter == nil {
		return
	}

	paymentJSON, err := json.Marshal(payment)
	if err != nil {
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("payment-recorded-%d", payment.OrderID)),
		Value: paymentJSON,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Warn().Err(err).Msgf("Failed to publish payment event for order %d", payment.OrderID)
	}
}
