package entity

// Order statuses. An order is created open, accrues items and payments,
// and ends in exactly one of the terminal states.
const (
	OrderStatusOpen      = "open"
	OrderStatusClosed    = "closed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID           int         `json:"id"`
	RestaurantID int         `json:"restaurant_id"`
	TableNumber  string      `json:"table_number"`
	WaiterID     int         `json:"waiter_id"`
	Status       string      `json:"status"` // "open", "closed", "cancelled"
	Total        float64     `json:"total"`  // derived: sum of item price*quantity
	Customer     *Customer   `json:"customer,omitempty"`
	CreatedAt    int64       `json:"created_at"` // unix milliseconds UTC
	Items        []OrderItem `json:"items,omitempty"`
}

// Customer is optional billing metadata attached to an order.
type Customer struct {
	Name     string `json:"name,omitempty"`
	Document string `json:"document,omitempty"` // tax id / national id
	Email    string `json:"email,omitempty"`
}

// OrderItem snapshots the product's name and price at insertion time;
// later catalog edits never touch it.
type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"` // always > 0 while the item exists
	Price       float64 `json:"price"`    // unit price snapshot
	Notes       string  `json:"notes,omitempty"`
}

// OrderDetails is the full read model for one order.
type OrderDetails struct {
	Order    Order       `json:"order"`
	Items    []OrderItem `json:"items"`
	Payments []Payment   `json:"payments"`
}

/*
Mysql tables

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	restaurant_id INT NOT NULL,
	table_number VARCHAR(20) NOT NULL,
	waiter_id INT NOT NULL,
	status VARCHAR(20) NOT NULL,
	total DOUBLE NOT NULL,
	customer_name VARCHAR(255),
	customer_document VARCHAR(64),
	customer_email VARCHAR(255),
	created_at BIGINT NOT NULL
);

CREATE TABLE order_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL REFERENCES orders(id),
	product_id INT NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	price DOUBLE NOT NULL,
	notes TEXT
);
*/
