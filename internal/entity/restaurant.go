package entity

type Restaurant struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	PaymentMethods []string `json:"payment_methods"` // e.g. ["cash", "card", "qr"]
}

type Waiter struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
}

// Waiter note types shown on the daily announcement board.
const (
	NoteTypeNote      = "note"
	NoteTypeEvent     = "event"
	NoteTypePromotion = "promotion"
)

type WaiterNote struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	WaiterID     int    `json:"waiter_id"`
	DateISO      string `json:"date_iso"`
	Type         string `json:"type"` // "note", "event", "promotion"
	Content      string `json:"content"`
}

/*
Mysql tables

CREATE TABLE restaurants (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	address VARCHAR(255),
	phone VARCHAR(50),
	payment_methods VARCHAR(255) NOT NULL
);

CREATE TABLE waiters (
	id INT AUTO_INCREMENT PRIMARY KEY,
	restaurant_id INT NOT NULL REFERENCES restaurants(id),
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255)
);

CREATE TABLE waiter_notes (
	id INT AUTO_INCREMENT PRIMARY KEY,
	restaurant_id INT NOT NULL,
	waiter_id INT NOT NULL REFERENCES waiters(id),
	date_iso VARCHAR(10) NOT NULL,
	type VARCHAR(20) NOT NULL,
	content TEXT NOT NULL
);
*/
