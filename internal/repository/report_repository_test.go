package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/testutil"
)

func seedOrderAt(t *testing.T, db *sql.DB, restaurantID, waiterID int, status string, total float64, createdAt int64) int64 {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO orders (restaurant_id, table_number, waiter_id, status, total, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		restaurantID, "T1", waiterID, status, total, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestClosedSalesBetween(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	day := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	start := day.UnixMilli()
	end := day.Add(24*time.Hour).UnixMilli() - 1

	seedOrderAt(t, db, 1, 1, entity.OrderStatusClosed, 25.00, start+1000)
	seedOrderAt(t, db, 1, 2, entity.OrderStatusClosed, 40.00, end-1000)
	// outside the window
	seedOrderAt(t, db, 1, 1, entity.OrderStatusClosed, 99.00, end+1)
	// wrong status
	seedOrderAt(t, db, 1, 1, entity.OrderStatusOpen, 15.00, start+2000)
	seedOrderAt(t, db, 1, 1, entity.OrderStatusCancelled, 15.00, start+2000)
	// other restaurant
	seedOrderAt(t, db, 2, 1, entity.OrderStatusClosed, 77.00, start+1000)

	total, count, err := repo.ClosedSalesBetween(ctx, 1, start, end)
	if err != nil {
		t.Fatalf("ClosedSalesBetween failed: %v", err)
	}
	if total != 65.00 {
		t.Errorf("expected total 65.00, got %.2f", total)
	}
	if count != 2 {
		t.Errorf("expected 2 orders, got %d", count)
	}

	// empty window
	total, count, err = repo.ClosedSalesBetween(ctx, 1, 0, 1)
	if err != nil {
		t.Fatalf("ClosedSalesBetween failed: %v", err)
	}
	if total != 0 || count != 0 {
		t.Errorf("expected empty window, got total %.2f count %d", total, count)
	}
}

func TestCountOpenOrders(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewReportRepository(db)

	now := time.Now().UTC().UnixMilli()
	seedOrderAt(t, db, 1, 1, entity.OrderStatusOpen, 10.00, now)
	seedOrderAt(t, db, 1, 2, entity.OrderStatusOpen, 10.00, now)
	seedOrderAt(t, db, 1, 1, entity.OrderStatusClosed, 10.00, now)
	seedOrderAt(t, db, 2, 1, entity.OrderStatusOpen, 10.00, now)

	count, err := repo.CountOpenOrders(context.Background(), 1)
	if err != nil {
		t.Fatalf("CountOpenOrders failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 open orders, got %d", count)
	}
}

func TestSalesByWaiter(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewReportRepository(db)

	day := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	start := day.UnixMilli()
	end := day.Add(24*time.Hour).UnixMilli() - 1

	seedOrderAt(t, db, 1, 1, entity.OrderStatusClosed, 25.00, start+1)
	seedOrderAt(t, db, 1, 1, entity.OrderStatusClosed, 15.00, start+2)
	seedOrderAt(t, db, 1, 2, entity.OrderStatusClosed, 50.00, start+3)
	seedOrderAt(t, db, 1, 2, entity.OrderStatusOpen, 100.00, start+4)

	sales, err := repo.SalesByWaiter(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("SalesByWaiter failed: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 waiters, got %d", len(sales))
	}
	if sales[0].WaiterID != 1 || sales[0].Total != 40.00 || sales[0].Orders != 2 {
		t.Errorf("unexpected row for waiter 1: %+v", sales[0])
	}
	if sales[1].WaiterID != 2 || sales[1].Total != 50.00 || sales[1].Orders != 1 {
		t.Errorf("unexpected row for waiter 2: %+v", sales[1])
	}
}

func TestFailedPaymentsSince(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().UnixMilli()
	orderID := seedOrderAt(t, db, 1, 1, entity.OrderStatusOpen, 10.00, now)
	otherRestaurant := seedOrderAt(t, db, 2, 1, entity.OrderStatusOpen, 10.00, now)

	seedPayment := func(order int64, status string, createdAt int64) {
		t.Helper()
		_, err := db.Exec(
			`INSERT INTO payments (order_id, method, amount, status, created_at) VALUES (?, ?, ?, ?, ?)`,
			order, "card", 10.00, status, createdAt,
		)
		if err != nil {
			t.Fatalf("failed to seed payment: %v", err)
		}
	}
	seedPayment(orderID, entity.PaymentStatusFailed, now)
	seedPayment(orderID, entity.PaymentStatusFailed, now-100000)
	seedPayment(orderID, entity.PaymentStatusCompleted, now)
	seedPayment(otherRestaurant, entity.PaymentStatusFailed, now)

	failed, err := repo.FailedPaymentsSince(ctx, 1, now-1000)
	if err != nil {
		t.Fatalf("FailedPaymentsSince failed: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed payment, got %d", len(failed))
	}
	if failed[0].Status != entity.PaymentStatusFailed || failed[0].OrderID != int(orderID) {
		t.Errorf("unexpected payment: %+v", failed[0])
	}
}
