package migrations

import (
	"database/sql"
	"time"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255),
		phone VARCHAR(50),
		payment_methods VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS waiters (
		id INT AUTO_INCREMENT PRIMARY KEY,
		restaurant_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255)
	);`,
	`CREATE TABLE IF NOT EXISTS waiter_notes (
		id INT AUTO_INCREMENT PRIMARY KEY,
		restaurant_id INT NOT NULL,
		waiter_id INT NOT NULL,
		date_iso VARCHAR(10) NOT NULL,
		type VARCHAR(20) NOT NULL,
		content TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		restaurant_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DOUBLE NOT NULL,
		is_available BOOLEAN NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS unavailable_daily (
		id INT AUTO_INCREMENT PRIMARY KEY,
		restaurant_id INT NOT NULL,
		product_id INT NOT NULL,
		date_iso VARCHAR(10) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INT AUTO_INCREMENT PRIMARY KEY,
		restaurant_id INT NOT NULL,
		table_number VARCHAR(20) NOT NULL,
		waiter_id INT NOT NULL,
		status VARCHAR(20) NOT NULL,
		total DOUBLE NOT NULL,
		customer_name VARCHAR(255),
		customer_document VARCHAR(64),
		customer_email VARCHAR(255),
		created_at BIGINT NOT NULL,
		INDEX idx_orders_restaurant_status (restaurant_id, status),
		INDEX idx_orders_waiter (waiter_id)
	);`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INT AUTO_INCREMENT PRIMARY KEY,
		order_id INT NOT NULL,
		product_id INT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		price DOUBLE NOT NULL,
		notes TEXT,
		INDEX idx_order_items_order (order_id),
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INT AUTO_INCREMENT PRIMARY KEY,
		order_id INT NOT NULL,
		method VARCHAR(50) NOT NULL,
		amount DOUBLE NOT NULL,
		status VARCHAR(20) NOT NULL,
		transaction_id VARCHAR(255),
		notes TEXT,
		created_at BIGINT NOT NULL,
		INDEX idx_payments_order (order_id),
		FOREIGN KEY (order_id) REFERENCES orders(id)
	);`,
}

// AutoMigrate creates every table if it does not exist, retrying each
// statement while the database is still coming up.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range tables {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
