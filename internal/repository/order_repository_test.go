package repository_test

import (
	"context"
	"errors"
	"testing"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/testutil"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func openOrder(t *testing.T, repo *repository.OrderRepository, items []entity.OrderItem) *entity.Order {
	t.Helper()

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	order, err := repo.CreateOrder(context.Background(), &entity.Order{
		RestaurantID: 1,
		TableNumber:  "T1",
		WaiterID:     1,
		Total:        total,
	}, items)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return order
}

// sumItems recomputes the expected total straight from the stored items.
func sumItems(t *testing.T, repo *repository.OrderRepository, orderID int) float64 {
	t.Helper()

	items, err := repo.ListItems(context.Background(), orderID)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

func TestCreateOrderWithItems(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := openOrder(t, repo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 2, Price: 10.00},
		{ProductID: 2, ProductName: "Fries", Quantity: 1, Price: 5.00},
	})

	if order.ID == 0 {
		t.Fatal("expected non-zero order id")
	}
	if order.Status != entity.OrderStatusOpen {
		t.Errorf("expected status open, got %q", order.Status)
	}
	if order.CreatedAt == 0 {
		t.Error("expected created_at to be set")
	}

	stored, err := repo.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if stored.Total != 25.00 {
		t.Errorf("expected total 25.00, got %.2f", stored.Total)
	}

	items, err := repo.ListItems(ctx, order.ID)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ProductName != "Burger" || items[0].Price != 10.00 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestGetOrderByIDNotFound(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)

	_, err := repo.GetOrderByID(context.Background(), 999)
	if !errors.Is(err, entity.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestAddItemRecomputesTotal(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := openOrder(t, repo, nil)

	itemID, total, err := repo.AddItem(ctx, &entity.OrderItem{
		OrderID: order.ID, ProductID: 1, ProductName: "Burger", Quantity: 2, Price: 10.00,
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if itemID == 0 {
		t.Error("expected non-zero item id")
	}
	if total != 20.00 {
		t.Errorf("expected total 20.00, got %.2f", total)
	}

	_, total, err = repo.AddItem(ctx, &entity.OrderItem{
		OrderID: order.ID, ProductID: 2, ProductName: "Fries", Quantity: 3, Price: 5.00,
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if total != 35.00 {
		t.Errorf("expected total 35.00, got %.2f", total)
	}

	// the persisted total always equals the item sum
	stored, err := repo.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if stored.Total != sumItems(t, repo, order.ID) {
		t.Errorf("stored total %.2f diverges from item sum", stored.Total)
	}
}

func TestAddItemErrors(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	_, _, err := repo.AddItem(ctx, &entity.OrderItem{OrderID: 999, ProductID: 1, ProductName: "x", Quantity: 1, Price: 1})
	if !errors.Is(err, entity.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}

	order := openOrder(t, repo, nil)
	if _, err := repo.CancelOrder(ctx, order.ID); err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}

	_, _, err = repo.AddItem(ctx, &entity.OrderItem{OrderID: order.ID, ProductID: 1, ProductName: "x", Quantity: 1, Price: 1})
	if !errors.Is(err, entity.ErrOrderNotOpen) {
		t.Errorf("expected ErrOrderNotOpen, got %v", err)
	}
}

func TestUpdateItemQuantityZeroDeletes(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := openOrder(t, repo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 2, Price: 10.00},
		{ProductID: 2, ProductName: "Fries", Quantity: 1, Price: 5.00},
	})

	items, err := repo.ListItems(ctx, order.ID)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}

	orderID, total, err := repo.UpdateItem(ctx, items[0].ID, intPtr(0), nil)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if orderID != order.ID {
		t.Errorf("expected owning order %d, got %d", order.ID, orderID)
	}
	if total != 5.00 {
		t.Errorf("expected total 5.00 after deletion, got %.2f", total)
	}

	remaining, err := repo.ListItems(ctx, order.ID)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining item, got %d", len(remaining))
	}
	if remaining[0].ProductName != "Fries" {
		t.Errorf("wrong item removed: %+v", remaining[0])
	}

	// negative quantity also deletes
	if _, _, err := repo.UpdateItem(ctx, remaining[0].ID, intPtr(-3), nil); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	remaining, _ = repo.ListItems(ctx, order.ID)
	if len(remaining) != 0 {
		t.Errorf("expected no items, got %d", len(remaining))
	}
}

func TestUpdateItemPatchesFields(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := openOrder(t, repo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 2, Price: 10.00},
	})
	items, _ := repo.ListItems(ctx, order.ID)
	itemID := items[0].ID

	_, total, err := repo.UpdateItem(ctx, itemID, intPtr(3), nil)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if total != 30.00 {
		t.Errorf("expected total 30.00, got %.2f", total)
	}

	// notes patch alone leaves quantity and total as they are
	_, total, err = repo.UpdateItem(ctx, itemID, nil, strPtr("no onions"))
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if total != 30.00 {
		t.Errorf("expected total 30.00, got %.2f", total)
	}

	items, _ = repo.ListItems(ctx, order.ID)
	if items[0].Quantity != 3 || items[0].Notes != "no onions" {
		t.Errorf("unexpected item state: %+v", items[0])
	}

	// no-op update still reports the current total
	_, total, err = repo.UpdateItem(ctx, itemID, nil, nil)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if total != 30.00 {
		t.Errorf("expected total 30.00, got %.2f", total)
	}
}

func TestUpdateItemErrors(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	_, _, err := repo.UpdateItem(ctx, 999, intPtr(1), nil)
	if !errors.Is(err, entity.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	order := openOrder(t, repo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 1, Price: 10.00},
	})
	items, _ := repo.ListItems(ctx, order.ID)
	if _, err := repo.CancelOrder(ctx, order.ID); err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}

	_, _, err = repo.UpdateItem(ctx, items[0].ID, intPtr(5), nil)
	if !errors.Is(err, entity.ErrOrderNotOpen) {
		t.Errorf("expected ErrOrderNotOpen, got %v", err)
	}

	// the item is untouched by the rejected update
	items, _ = repo.ListItems(ctx, order.ID)
	if items[0].Quantity != 1 {
		t.Errorf("item mutated on a cancelled order: %+v", items[0])
	}
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	order := openOrder(t, repo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 2, Price: 10.00},
		{ProductID: 2, ProductName: "Fries", Quantity: 1, Price: 5.00},
	})
	items, _ := repo.ListItems(ctx, order.ID)

	_, total, err := repo.RemoveItem(ctx, items[1].ID)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if total != 20.00 {
		t.Errorf("expected total 20.00, got %.2f", total)
	}

	_, _, err = repo.RemoveItem(ctx, items[1].ID)
	if !errors.Is(err, entity.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound on double delete, got %v", err)
	}
}

func TestCloseOrderGate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	order := openOrder(t, orderRepo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 2, Price: 10.00},
		{ProductID: 2, ProductName: "Fries", Quantity: 1, Price: 5.00},
	})

	// no payments at all
	_, err := orderRepo.CloseOrder(ctx, order.ID)
	var insufficient *entity.InsufficientPaymentError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientPaymentError, got %v", err)
	}

	// 20.00 completed of 25.00 due
	if _, err := paymentRepo.AddPayment(ctx, &entity.Payment{OrderID: order.ID, Method: "cash", Amount: 20.00, Status: entity.PaymentStatusCompleted}); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	// pending and failed payments never count
	if _, err := paymentRepo.AddPayment(ctx, &entity.Payment{OrderID: order.ID, Method: "card", Amount: 100.00, Status: entity.PaymentStatusPending}); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if _, err := paymentRepo.AddPayment(ctx, &entity.Payment{OrderID: order.ID, Method: "card", Amount: 100.00, Status: entity.PaymentStatusFailed}); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	_, err = orderRepo.CloseOrder(ctx, order.ID)
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientPaymentError, got %v", err)
	}
	if insufficient.Paid != 20.00 || insufficient.Total != 25.00 {
		t.Errorf("unexpected figures: paid %.2f total %.2f", insufficient.Paid, insufficient.Total)
	}

	// the failed close left the order open
	stored, _ := orderRepo.GetOrderByID(ctx, order.ID)
	if stored.Status != entity.OrderStatusOpen {
		t.Fatalf("expected order still open, got %q", stored.Status)
	}

	// cover the remainder, with change to spare
	if _, err := paymentRepo.AddPayment(ctx, &entity.Payment{OrderID: order.ID, Method: "cash", Amount: 6.00, Status: entity.PaymentStatusCompleted}); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	closed, err := orderRepo.CloseOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("CloseOrder failed: %v", err)
	}
	if closed.Status != entity.OrderStatusClosed {
		t.Errorf("expected status closed, got %q", closed.Status)
	}
	if closed.Total != 25.00 {
		t.Errorf("close must not change the total, got %.2f", closed.Total)
	}

	// closing twice is a precondition failure carrying the status
	_, err = orderRepo.CloseOrder(ctx, order.ID)
	var notClosable *entity.OrderNotClosableError
	if !errors.As(err, &notClosable) {
		t.Fatalf("expected OrderNotClosableError, got %v", err)
	}
	if notClosable.Status != entity.OrderStatusClosed {
		t.Errorf("expected status closed in error, got %q", notClosable.Status)
	}
}

func TestCloseOrderNotFound(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)

	_, err := repo.CloseOrder(context.Background(), 42)
	if !errors.Is(err, entity.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCancelOrderIsTerminal(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	order := openOrder(t, orderRepo, []entity.OrderItem{
		{ProductID: 1, ProductName: "Burger", Quantity: 1, Price: 10.00},
	})

	cancelled, err := orderRepo.CancelOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.Status != entity.OrderStatusCancelled {
		t.Errorf("expected status cancelled, got %q", cancelled.Status)
	}

	// no payments on a cancelled order
	_, err = paymentRepo.AddPayment(ctx, &entity.Payment{OrderID: order.ID, Method: "cash", Amount: 10.00, Status: entity.PaymentStatusCompleted})
	var notAccepting *entity.OrderNotAcceptingPaymentsError
	if !errors.As(err, &notAccepting) {
		t.Fatalf("expected OrderNotAcceptingPaymentsError, got %v", err)
	}
	if notAccepting.Status != entity.OrderStatusCancelled {
		t.Errorf("expected cancelled in error, got %q", notAccepting.Status)
	}

	// no cancel out of a terminal state either
	if _, err := orderRepo.CancelOrder(ctx, order.ID); err == nil {
		t.Error("expected cancelling a cancelled order to fail")
	}
}

func TestListOpenByWaiter(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	first := openOrder(t, repo, nil)
	openOrder(t, repo, nil)

	other, err := repo.CreateOrder(ctx, &entity.Order{RestaurantID: 1, TableNumber: "T9", WaiterID: 2}, nil)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := repo.CancelOrder(ctx, first.ID); err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}

	orders, err := repo.ListOpenByWaiter(ctx, 1)
	if err != nil {
		t.Fatalf("ListOpenByWaiter failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 open order for waiter 1, got %d", len(orders))
	}

	orders, err = repo.ListOpenByWaiter(ctx, 2)
	if err != nil {
		t.Fatalf("ListOpenByWaiter failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != other.ID {
		t.Fatalf("expected only order %d for waiter 2, got %+v", other.ID, orders)
	}
}
