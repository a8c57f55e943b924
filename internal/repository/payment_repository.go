package repository

import (
	"context"
	"database/sql"
	"time"

	"restaurant-pos/internal/entity"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// AddPayment appends a payment record. The owning order's status is
// checked inside the same transaction as the insert, so a concurrent
// close cannot slip a payment onto a terminal order.
func (r *PaymentRepository) AddPayment(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	status, err := orderStatusTx(ctx, tx, payment.OrderID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if status == entity.OrderStatusClosed || status == entity.OrderStatusCancelled {
		tx.Rollback()
		return nil, &entity.OrderNotAcceptingPaymentsError{Status: status}
	}

	payment.CreatedAt = time.Now().UTC().UnixMilli()

	query := `INSERT INTO payments (order_id, method, amount, status, transaction_id, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, payment.OrderID, payment.Method, payment.Amount, payment.Status, payment.TransactionID, payment.Notes, payment.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	payment.ID = int(id)
	return payment, nil
}

// ListByOrder returns all payments for an order in insertion order.
func (r *PaymentRepository) ListByOrder(ctx context.Context, orderID int) ([]entity.Payment, error) {
	query := `SELECT id, order_id, method, amount, status, COALESCE(transaction_id, ''), COALESCE(notes, ''), created_at FROM payments WHERE order_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []entity.Payment
	for rows.Next() {
		p := entity.Payment{}
		err := rows.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// AmountPaid sums the order's completed payments.
func (r *PaymentRepository) AmountPaid(ctx context.Context, orderID int) (float64, error) {
	var paid float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE order_id = ? AND status = ?`
	err := r.db.QueryRowContext(ctx, query, orderID, entity.PaymentStatusCompleted).Scan(&paid)
	if err != nil {
		return 0, err
	}
	return paid, nil
}
