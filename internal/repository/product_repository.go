package repository

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-pos/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	product := &entity.Product{}

	query := `SELECT id, restaurant_id, name, COALESCE(description, ''), price, is_available FROM products WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.RestaurantID, &product.Name, &product.Description, &product.Price, &product.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (restaurant_id, name, description, price, is_available) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.RestaurantID, product.Name, product.Description, product.Price, product.IsAvailable)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

// UpdateProduct edits catalog fields only. Historic order items keep
// their price/name snapshots.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `UPDATE products SET name = ?, description = ?, price = ?, is_available = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Description, product.Price, product.IsAvailable, product.ID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, entity.ErrProductNotFound
	}
	return product, nil
}

func (r *ProductRepository) ListByRestaurant(ctx context.Context, restaurantID int) ([]entity.Product, error) {
	query := `SELECT id, restaurant_id, name, COALESCE(description, ''), price, is_available FROM products WHERE restaurant_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(&product.ID, &product.RestaurantID, &product.Name, &product.Description, &product.Price, &product.IsAvailable)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) ListUnavailable(ctx context.Context, restaurantID int) ([]entity.Product, error) {
	query := `SELECT id, restaurant_id, name, COALESCE(description, ''), price, is_available FROM products WHERE restaurant_id = ? AND is_available = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, false)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(&product.ID, &product.RestaurantID, &product.Name, &product.Description, &product.Price, &product.IsAvailable)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// MarkUnavailable records a product as off the menu for one day,
// suppressing duplicates for the same product and date.
func (r *ProductRepository) MarkUnavailable(ctx context.Context, restaurantID, productID int, dateISO string) error {
	var existing int
	checkQuery := `SELECT COUNT(*) FROM unavailable_daily WHERE restaurant_id = ? AND product_id = ? AND date_iso = ?`
	err := r.db.QueryRowContext(ctx, checkQuery, restaurantID, productID, dateISO).Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	query := `INSERT INTO unavailable_daily (restaurant_id, product_id, date_iso) VALUES (?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, restaurantID, productID, dateISO)
	return err
}

func (r *ProductRepository) ListUnavailableByDate(ctx context.Context, restaurantID int, dateISO string) ([]entity.UnavailableDaily, error) {
	query := `SELECT id, restaurant_id, product_id, date_iso FROM unavailable_daily WHERE restaurant_id = ? AND date_iso = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, dateISO)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entity.UnavailableDaily
	for rows.Next() {
		var entry entity.UnavailableDaily
		err := rows.Scan(&entry.ID, &entry.RestaurantID, &entry.ProductID, &entry.DateISO)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
