package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"restaurant-pos/internal/entity"
)

type RestaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// Payment methods are stored as a comma-separated list.
func joinMethods(methods []string) string {
	return strings.Join(methods, ",")
}

func splitMethods(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (r *RestaurantRepository) CreateRestaurant(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, error) {
	query := `INSERT INTO restaurants (name, address, phone, payment_methods) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, restaurant.Name, restaurant.Address, restaurant.Phone, joinMethods(restaurant.PaymentMethods))
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	restaurant.ID = int(id)
	return restaurant, nil
}

func (r *RestaurantRepository) GetRestaurantByID(ctx context.Context, id int) (*entity.Restaurant, error) {
	restaurant := &entity.Restaurant{}
	var methods string

	query := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), payment_methods FROM restaurants WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&restaurant.ID, &restaurant.Name, &restaurant.Address, &restaurant.Phone, &methods)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}

	restaurant.PaymentMethods = splitMethods(methods)
	return restaurant, nil
}

func (r *RestaurantRepository) ListRestaurants(ctx context.Context) ([]entity.Restaurant, error) {
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), payment_methods FROM restaurants ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []entity.Restaurant
	for rows.Next() {
		var restaurant entity.Restaurant
		var methods string
		err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.Address, &restaurant.Phone, &methods)
		if err != nil {
			return nil, err
		}
		restaurant.PaymentMethods = splitMethods(methods)
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}
