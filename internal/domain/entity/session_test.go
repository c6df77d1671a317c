package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestReconcile(t *testing.T) {
	coffee := uuid.New()
	soda := uuid.New()
	cake := uuid.New()

	opening := []SessionStockLine{
		{ItemID: coffee, ItemName: "Coffee", Stage: StockStageOpening, Quantity: 40},
		{ItemID: soda, ItemName: "Soda", Stage: StockStageOpening, Quantity: 20},
	}
	closing := []SessionStockLine{
		{ItemID: coffee, ItemName: "Coffee", Stage: StockStageClosing, Quantity: 28},
		{ItemID: soda, ItemName: "Soda", Stage: StockStageClosing, Quantity: 35},
		{ItemID: cake, ItemName: "Cake", Stage: StockStageClosing, Quantity: 6},
	}

	lines := Reconcile(opening, closing)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	byName := make(map[string]ReconciliationLine)
	for _, line := range lines {
		byName[line.ItemName] = line
	}

	if line := byName["Coffee"]; line.Sold != 12 {
		t.Errorf("coffee sold = %d, want 12", line.Sold)
	}
	// Restocked mid-session: closing above opening clamps to zero sold.
	if line := byName["Soda"]; line.Sold != 0 {
		t.Errorf("soda sold = %d, want 0", line.Sold)
	}
	// New item added mid-session appears with opening counted as zero.
	if line := byName["Cake"]; line.Opening != 0 || line.Closing != 6 || line.Sold != 0 {
		t.Errorf("unexpected cake line: %+v", line)
	}
}

func TestReconcileItemMissingFromClosing(t *testing.T) {
	coffee := uuid.New()
	opening := []SessionStockLine{
		{ItemID: coffee, ItemName: "Coffee", Stage: StockStageOpening, Quantity: 10},
	}

	lines := Reconcile(opening, nil)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Closing != 0 || lines[0].Sold != 10 {
		t.Errorf("unexpected line: %+v", lines[0])
	}
}

func TestSessionBalances(t *testing.T) {
	session := CashSession{StartingBalance: 5000, SalesTotal: 4500}

	if got := session.ExpectedBalance(); got != 9500 {
		t.Errorf("expected balance = %d, want 9500", got)
	}
	if got := session.Variance(); got != 0 {
		t.Errorf("variance without a count = %d, want 0", got)
	}

	counted := int64(9200)
	session.CountedBalance = &counted
	if got := session.Variance(); got != -300 {
		t.Errorf("variance = %d, want -300", got)
	}
}
