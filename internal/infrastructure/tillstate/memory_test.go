package tillstate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	domainRepo "github.com/veloclub/clubhouse-api/internal/domain/repository"
)

func TestMemoryStoreSaveLoadClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sessionID := uuid.New()
	err := store.Save(ctx, &domainRepo.TillState{
		Terminal:  "till-1",
		SessionID: sessionID,
		Cart: []domainRepo.TillCartLine{
			{ItemID: uuid.New(), ItemName: "Coffee", Quantity: 2, UnitPrice: 250},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	state, err := store.Load(ctx, "till-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state == nil {
		t.Fatal("expected saved state back")
	}
	if state.SessionID != sessionID {
		t.Errorf("wrong session ID: %s", state.SessionID)
	}
	if len(state.Cart) != 1 || state.Cart[0].ItemName != "Coffee" {
		t.Errorf("unexpected cart: %+v", state.Cart)
	}
	if state.UpdatedAt.IsZero() {
		t.Error("save should stamp UpdatedAt")
	}

	if err := store.Clear(ctx, "till-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	state, err = store.Load(ctx, "till-1")
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if state != nil {
		t.Errorf("expected nil after clear, got %+v", state)
	}
}

func TestMemoryStoreMissingTerminal(t *testing.T) {
	store := NewMemoryStore()

	state, err := store.Load(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("load of a missing terminal must not error, got %v", err)
	}
	if state != nil {
		t.Errorf("expected nil state, got %+v", state)
	}
}

func TestMemoryStoreLoadIsolatesCart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Save(ctx, &domainRepo.TillState{
		Terminal:  "till-1",
		SessionID: uuid.New(),
		Cart: []domainRepo.TillCartLine{
			{ItemID: uuid.New(), ItemName: "Coffee", Quantity: 2, UnitPrice: 250},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	first, err := store.Load(ctx, "till-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Mutating a loaded cart must not bleed into the stored state.
	first.Cart[0].ItemName = "Tea"
	first.Cart[0].Quantity = 99

	second, err := store.Load(ctx, "till-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if second.Cart[0].ItemName != "Coffee" || second.Cart[0].Quantity != 2 {
		t.Errorf("stored cart was mutated through a loaded copy: %+v", second.Cart[0])
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	_ = store.Save(ctx, &domainRepo.TillState{Terminal: "till-1", SessionID: first})
	_ = store.Save(ctx, &domainRepo.TillState{Terminal: "till-1", SessionID: second})

	state, err := store.Load(ctx, "till-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.SessionID != second {
		t.Errorf("expected latest state, got session %s", state.SessionID)
	}
}
