package entity

// Payment statuses. Only completed payments count toward closing an order.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is one attempt to settle part of an order. Records are
// append-only: the core never mutates or deletes them.
type Payment struct {
	ID            int     `json:"id"`
	OrderID       int     `json:"order_id"`
	Method        string  `json:"method"` // e.g. "cash", "card", "qr"
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"` // "pending", "completed", "failed"
	TransactionID string  `json:"transaction_id,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     int64   `json:"created_at"` // unix milliseconds UTC
}

/*
Mysql table

CREATE TABLE payments (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL REFERENCES orders(id),
	method VARCHAR(50) NOT NULL,
	amount DOUBLE NOT NULL,
	status VARCHAR(20) NOT NULL,
	transaction_id VARCHAR(255),
	notes TEXT,
	created_at BIGINT NOT NULL
);
*/
