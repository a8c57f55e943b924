// Package testutil provides an in-memory sqlite database mirroring the
// production schema, for repository and service tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE restaurants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT,
		phone TEXT,
		payment_methods TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE waiters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT
	);`,
	`CREATE TABLE waiter_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		waiter_id INTEGER NOT NULL,
		date_iso TEXT NOT NULL,
		type TEXT NOT NULL,
		content TEXT NOT NULL
	);`,
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		price REAL NOT NULL,
		is_available INTEGER NOT NULL
	);`,
	`CREATE TABLE unavailable_daily (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		date_iso TEXT NOT NULL
	);`,
	`CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		table_number TEXT NOT NULL,
		waiter_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		total REAL NOT NULL,
		customer_name TEXT,
		customer_document TEXT,
		customer_email TEXT,
		created_at INTEGER NOT NULL
	);`,
	`CREATE TABLE order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		notes TEXT
	);`,
	`CREATE TABLE payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		method TEXT NOT NULL,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		transaction_id TEXT,
		notes TEXT,
		created_at INTEGER NOT NULL
	);`,
}

// NewSQLiteDB opens an in-memory database with the POS schema applied.
// The pool is capped at one connection so every statement sees the same
// memory database.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to apply schema: %v", err)
		}
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close db: %v", err)
		}
	})

	return db
}
