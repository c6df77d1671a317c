package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/pkg/email"
)

type inventoryFixture struct {
	service  *InventoryService
	itemRepo *fakeItemRepo
	notifs   *fakeNotificationRepo
}

func newInventoryFixture(items ...*entity.Item) *inventoryFixture {
	f := &inventoryFixture{
		itemRepo: newFakeItemRepo(items...),
		notifs:   newFakeNotificationRepo(),
	}
	f.service = NewInventoryService(f.itemRepo, newFakeUserRepo(), f.notifs, email.NewEmailService(email.EmailConfig{}))
	return f
}

func intPtr(n int) *int {
	return &n
}

func TestCreateItemDefaultsStockThreshold(t *testing.T) {
	f := newInventoryFixture()

	item, err := f.service.CreateItem(context.Background(), &CreateItemInput{
		Name:     "Coffee",
		Category: enum.ItemCategoryBeverage,
		Price:    2.50,
		Stock:    40,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.StockThreshold != 10 {
		t.Errorf("expected default threshold 10, got %d", item.StockThreshold)
	}
}

func TestCreateItemExplicitStockThreshold(t *testing.T) {
	f := newInventoryFixture()

	item, err := f.service.CreateItem(context.Background(), &CreateItemInput{
		Name:           "Napkins",
		Category:       enum.ItemCategoryOther,
		Price:          0.50,
		Stock:          500,
		StockThreshold: intPtr(0),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	// An explicit zero is a choice, not an omission.
	if item.StockThreshold != 0 {
		t.Errorf("expected threshold 0, got %d", item.StockThreshold)
	}

	if _, err := f.service.CreateItem(context.Background(), &CreateItemInput{
		Name:           "Broken",
		Price:          1,
		StockThreshold: intPtr(-1),
	}); err == nil {
		t.Error("negative threshold must be rejected")
	}
}

func TestUpdateItemDoesNotOverwriteStock(t *testing.T) {
	item := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, StockThreshold: 5, Active: true}
	f := newInventoryFixture(item)

	// A sale lands between the catalog read and the write-back.
	f.itemRepo.onGet = func() {
		f.itemRepo.onGet = nil
		if _, err := f.itemRepo.AtomicDecrementBatch(context.Background(), map[uuid.UUID]int{item.ID: 3}); err != nil {
			t.Fatalf("decrement: %v", err)
		}
	}

	newPrice := 3.00
	if _, err := f.service.UpdateItem(context.Background(), item.ID, &UpdateItemInput{Price: &newPrice}); err != nil {
		t.Fatalf("update item: %v", err)
	}

	stored, err := f.service.GetItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if stored.Stock != 7 {
		t.Errorf("catalog edit resurrected stale stock: expected 7, got %d", stored.Stock)
	}
	if stored.Price != 300 {
		t.Errorf("expected updated price 300 cents, got %d", stored.Price)
	}
}

func TestRestockAddsQuantity(t *testing.T) {
	item := &entity.Item{Name: "Soda", Price: 150, Stock: 4, StockThreshold: 5, Active: true}
	f := newInventoryFixture(item)

	updated, err := f.service.Restock(context.Background(), item.ID, 20)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if updated.Stock != 24 {
		t.Errorf("expected stock 24, got %d", updated.Stock)
	}

	if _, err := f.service.Restock(context.Background(), item.ID, 0); err == nil {
		t.Error("non-positive restock must be rejected")
	}
}
