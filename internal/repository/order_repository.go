package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurant-pos/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// recomputeTotal re-derives the order total from its current line items
// and persists it, all inside the caller's transaction. Always a full
// re-scan, never an incremental adjustment.
func recomputeTotal(ctx context.Context, tx *sql.Tx, orderID int) (float64, error) {
	var total float64
	sumQuery := `SELECT COALESCE(SUM(price * quantity), 0) FROM order_items WHERE order_id = ?`
	if err := tx.QueryRowContext(ctx, sumQuery, orderID).Scan(&total); err != nil {
		return 0, err
	}

	_, err := tx.ExecContext(ctx, `UPDATE orders SET total = ? WHERE id = ?`, total, orderID)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// orderStatusTx reads an order's status inside a transaction, mapping a
// missing row to ErrOrderNotFound.
func orderStatusTx(ctx context.Context, tx *sql.Tx, orderID int) (string, error) {
	var status string
	err := tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, orderID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", entity.ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

// CreateOrder inserts the order together with its initial line items in
// one transaction. The caller supplies the computed total and item price
// snapshots; this bulk path does not consult the catalog.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order, items []entity.OrderItem) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusOpen
	order.CreatedAt = time.Now().UTC().UnixMilli()

	var name, document, email sql.NullString
	if c := order.Customer; c != nil {
		name = sql.NullString{String: c.Name, Valid: c.Name != ""}
		document = sql.NullString{String: c.Document, Valid: c.Document != ""}
		email = sql.NullString{String: c.Email, Valid: c.Email != ""}
	}

	orderQuery := `INSERT INTO orders (restaurant_id, table_number, waiter_id, status, total, customer_name, customer_document, customer_email, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, order.RestaurantID, order.TableNumber, order.WaiterID, order.Status, order.Total, name, document, email, order.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(items) > 0 {
		// Insert line items with batch
		itemQuery := `INSERT INTO order_items (order_id, product_id, product_name, quantity, price, notes) VALUES `

		var values []interface{}
		for _, item := range items {
			itemQuery += "(?, ?, ?, ?, ?, ?),"
			values = append(values, orderID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Notes)
		}

		// Remove the trailing comma
		itemQuery = itemQuery[:len(itemQuery)-1]

		_, err = tx.ExecContext(ctx, itemQuery, values...)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT id, restaurant_id, table_number, waiter_id, status, total, customer_name, customer_document, customer_email, created_at FROM orders WHERE id = ?`

	order := &entity.Order{}
	var name, document, email sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.RestaurantID, &order.TableNumber, &order.WaiterID, &order.Status, &order.Total, &name, &document, &email, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if name.Valid || document.Valid || email.Valid {
		order.Customer = &entity.Customer{Name: name.String, Document: document.String, Email: email.String}
	}
	return order, nil
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_name, quantity, price, COALESCE(notes, '') FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		item := entity.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListOpenByWaiter(ctx context.Context, waiterID int) ([]entity.Order, error) {
	query := `SELECT id, restaurant_id, table_number, waiter_id, status, total, created_at FROM orders WHERE waiter_id = ? AND status = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, waiterID, entity.OrderStatusOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		order := entity.Order{}
		err := rows.Scan(&order.ID, &order.RestaurantID, &order.TableNumber, &order.WaiterID, &order.Status, &order.Total, &order.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// AddItem inserts a line item and recomputes the order total in one
// transaction. The item must carry its name/price snapshot already; the
// order must be open.
func (r *OrderRepository) AddItem(ctx context.Context, item *entity.OrderItem) (int, float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}

	status, err := orderStatusTx(ctx, tx, item.OrderID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}
	if status != entity.OrderStatusOpen {
		tx.Rollback()
		return 0, 0, entity.ErrOrderNotOpen
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, product_name, quantity, price, notes) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, itemQuery, item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Notes)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	itemID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	total, err := recomputeTotal(ctx, tx, item.OrderID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}

	item.ID = int(itemID)
	return item.ID, total, nil
}

// UpdateItem patches quantity and/or notes on a line item. A quantity of
// zero or less deletes the item instead; a zero-quantity row is never
// stored. Returns the owning order id and its recomputed total.
func (r *OrderRepository) UpdateItem(ctx context.Context, itemID int, quantity *int, notes *string) (int, float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}

	var orderID int
	err = tx.QueryRowContext(ctx, `SELECT order_id FROM order_items WHERE id = ?`, itemID).Scan(&orderID)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return 0, 0, entity.ErrItemNotFound
	}
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	status, err := orderStatusTx(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}
	if status != entity.OrderStatusOpen {
		tx.Rollback()
		return 0, 0, entity.ErrOrderNotOpen
	}

	if quantity != nil && *quantity <= 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = ?`, itemID)
		if err != nil {
			tx.Rollback()
			return 0, 0, err
		}
	} else {
		if quantity != nil {
			_, err = tx.ExecContext(ctx, `UPDATE order_items SET quantity = ? WHERE id = ?`, *quantity, itemID)
			if err != nil {
				tx.Rollback()
				return 0, 0, err
			}
		}
		if notes != nil {
			_, err = tx.ExecContext(ctx, `UPDATE order_items SET notes = ? WHERE id = ?`, *notes, itemID)
			if err != nil {
				tx.Rollback()
				return 0, 0, err
			}
		}
	}

	total, err := recomputeTotal(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return orderID, total, nil
}

// RemoveItem deletes a line item and recomputes the order total.
// Returns the owning order id and the new total.
func (r *OrderRepository) RemoveItem(ctx context.Context, itemID int) (int, float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}

	var orderID int
	err = tx.QueryRowContext(ctx, `SELECT order_id FROM order_items WHERE id = ?`, itemID).Scan(&orderID)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return 0, 0, entity.ErrItemNotFound
	}
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	status, err := orderStatusTx(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}
	if status != entity.OrderStatusOpen {
		tx.Rollback()
		return 0, 0, entity.ErrOrderNotOpen
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = ?`, itemID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	total, err := recomputeTotal(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return orderID, total, nil
}

// CloseOrder runs the whole closing protocol inside one transaction:
// re-read the order, sum its completed payments, and transition to
// closed only when the payments cover the total. Re-reading inside the
// transaction means a payment landing mid-close is either fully counted
// or rejected by the store's isolation, never half-seen.
func (r *OrderRepository) CloseOrder(ctx context.Context, orderID int) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{}
	query := `SELECT id, restaurant_id, table_number, waiter_id, status, total, created_at FROM orders WHERE id = ?`
	err = tx.QueryRowContext(ctx, query, orderID).Scan(&order.ID, &order.RestaurantID, &order.TableNumber, &order.WaiterID, &order.Status, &order.Total, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil, entity.ErrOrderNotFound
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if order.Status != entity.OrderStatusOpen {
		tx.Rollback()
		return nil, &entity.OrderNotClosableError{Status: order.Status}
	}

	var totalPaid float64
	paidQuery := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE order_id = ? AND status = ?`
	err = tx.QueryRowContext(ctx, paidQuery, orderID, entity.PaymentStatusCompleted).Scan(&totalPaid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if totalPaid < order.Total {
		tx.Rollback()
		return nil, &entity.InsufficientPaymentError{Paid: totalPaid, Total: order.Total}
	}

	// Overpayment is accepted silently; only the status changes.
	_, err = tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, entity.OrderStatusClosed, orderID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusClosed
	return order, nil
}

// CancelOrder transitions an open order to cancelled. Terminal orders
// stay untouched.
func (r *OrderRepository) CancelOrder(ctx context.Context, orderID int) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	status, err := orderStatusTx(ctx, tx, orderID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if status != entity.OrderStatusOpen {
		tx.Rollback()
		return nil, &entity.OrderNotClosableError{Status: status}
	}

	_, err = tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, entity.OrderStatusCancelled, orderID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetOrderByID(ctx, orderID)
}
