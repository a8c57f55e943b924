package repository

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-pos/internal/entity"
)

type WaiterRepository struct {
	db *sql.DB
}

func NewWaiterRepository(db *sql.DB) *WaiterRepository {
	return &WaiterRepository{db: db}
}

func (r *WaiterRepository) CreateWaiter(ctx context.Context, waiter *entity.Waiter) (*entity.Waiter, error) {
	query := `INSERT INTO waiters (restaurant_id, name, email) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, waiter.RestaurantID, waiter.Name, waiter.Email)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	waiter.ID = int(id)
	return waiter, nil
}

func (r *WaiterRepository) GetWaiterByID(ctx context.Context, id int) (*entity.Waiter, error) {
	waiter := &entity.Waiter{}
	query := `SELECT id, restaurant_id, name, COALESCE(email, '') FROM waiters WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&waiter.ID, &waiter.RestaurantID, &waiter.Name, &waiter.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrWaiterNotFound
	}
	if err != nil {
		return nil, err
	}
	return waiter, nil
}

func (r *WaiterRepository) ListByRestaurant(ctx context.Context, restaurantID int) ([]entity.Waiter, error) {
	query := `SELECT id, restaurant_id, name, COALESCE(email, '') FROM waiters WHERE restaurant_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waiters []entity.Waiter
	for rows.Next() {
		var waiter entity.Waiter
		err := rows.Scan(&waiter.ID, &waiter.RestaurantID, &waiter.Name, &waiter.Email)
		if err != nil {
			return nil, err
		}
		waiters = append(waiters, waiter)
	}
	return waiters, rows.Err()
}

func (r *WaiterRepository) CreateNote(ctx context.Context, note *entity.WaiterNote) (*entity.WaiterNote, error) {
	query := `INSERT INTO waiter_notes (restaurant_id, waiter_id, date_iso, type, content) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, note.RestaurantID, note.WaiterID, note.DateISO, note.Type, note.Content)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	note.ID = int(id)
	return note, nil
}

// ListNotesByDate returns every note, event and promotion posted for a
// restaurant on one calendar day.
func (r *WaiterRepository) ListNotesByDate(ctx context.Context, restaurantID int, dateISO string) ([]entity.WaiterNote, error) {
	query := `SELECT id, restaurant_id, waiter_id, date_iso, type, content FROM waiter_notes WHERE restaurant_id = ? AND date_iso = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, dateISO)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []entity.WaiterNote
	for rows.Next() {
		var note entity.WaiterNote
		err := rows.Scan(&note.ID, &note.RestaurantID, &note.WaiterID, &note.DateISO, &note.Type, &note.Content)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
