package repository

import (
	"context"
	"database/sql"

	"restaurant-pos/internal/entity"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ClosedSalesBetween sums and counts closed orders created inside the
// [startMs, endMs] window.
func (r *ReportRepository) ClosedSalesBetween(ctx context.Context, restaurantID int, startMs, endMs int64) (float64, int, error) {
	var total float64
	var count int
	query := `SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders WHERE restaurant_id = ? AND status = ? AND created_at >= ? AND created_at <= ?`
	err := r.db.QueryRowContext(ctx, query, restaurantID, entity.OrderStatusClosed, startMs, endMs).Scan(&total, &count)
	if err != nil {
		return 0, 0, err
	}
	return total, count, nil
}

// CountOpenOrders is the "open tables" gauge.
func (r *ReportRepository) CountOpenOrders(ctx context.Context, restaurantID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE restaurant_id = ? AND status = ?`
	err := r.db.QueryRowContext(ctx, query, restaurantID, entity.OrderStatusOpen).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SalesByWaiter groups closed orders in the window by waiter.
func (r *ReportRepository) SalesByWaiter(ctx context.Context, restaurantID int, startMs, endMs int64) ([]entity.WaiterSales, error) {
	query := `SELECT waiter_id, COALESCE(SUM(total), 0), COUNT(*) FROM orders WHERE restaurant_id = ? AND status = ? AND created_at >= ? AND created_at <= ? GROUP BY waiter_id ORDER BY waiter_id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, entity.OrderStatusClosed, startMs, endMs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []entity.WaiterSales
	for rows.Next() {
		var row entity.WaiterSales
		err := rows.Scan(&row.WaiterID, &row.Total, &row.Orders)
		if err != nil {
			return nil, err
		}
		sales = append(sales, row)
	}
	return sales, rows.Err()
}

// FailedPaymentsSince lists failed payments created at or after sinceMs,
// scoped to the restaurant through the owning order.
func (r *ReportRepository) FailedPaymentsSince(ctx context.Context, restaurantID int, sinceMs int64) ([]entity.Payment, error) {
	query := `SELECT p.id, p.order_id, p.method, p.amount, p.status, COALESCE(p.transaction_id, ''), COALESCE(p.notes, ''), p.created_at
		FROM payments p JOIN orders o ON o.id = p.order_id
		WHERE o.restaurant_id = ? AND p.status = ? AND p.created_at >= ? ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, entity.PaymentStatusFailed, sinceMs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []entity.Payment
	for rows.Next() {
		var p entity.Payment
		err := rows.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
