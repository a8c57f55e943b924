package entity

type Product struct {
	ID           int     `json:"id"`
	RestaurantID int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	IsAvailable  bool    `json:"is_available"`
}

// UnavailableDaily marks a product as off the menu for one calendar day.
type UnavailableDaily struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	ProductID    int    `json:"product_id"`
	DateISO      string `json:"date_iso"` // "2025-05-15"
}

/*
Mysql tables

CREATE TABLE products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	restaurant_id INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	description TEXT,
	price DOUBLE NOT NULL,
	is_available BOOLEAN NOT NULL
);

CREATE TABLE unavailable_daily (
	id INT AUTO_INCREMENT PRIMARY KEY,
	restaurant_id INT NOT NULL,
	product_id INT NOT NULL REFERENCES products(id),
	date_iso VARCHAR(10) NOT NULL
);
*/
