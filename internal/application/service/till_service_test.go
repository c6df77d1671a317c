package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/infrastructure/tillstate"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

type tillFixture struct {
	service     *TillService
	sessionRepo *fakeSessionRepo
	itemRepo    *fakeItemRepo
	orderRepo   *fakeOrderRepo
	settings    *fakeSettingsRepo
	notifs      *fakeNotificationRepo
	stateStore  repository.TillStateStore
}

func newTillFixture(t *testing.T, items ...*entity.Item) *tillFixture {
	t.Helper()

	settings := newFakeSettingsRepo()
	hash, err := utils.HashPassword("1234")
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	if err := settings.Set(context.Background(), &entity.Setting{
		Key:    entity.SettingCashierPin,
		Value:  hash,
		Secret: true,
	}); err != nil {
		t.Fatalf("seed pin: %v", err)
	}

	f := &tillFixture{
		sessionRepo: newFakeSessionRepo(),
		itemRepo:    newFakeItemRepo(items...),
		orderRepo:   newFakeOrderRepo(),
		settings:    settings,
		notifs:      newFakeNotificationRepo(),
		stateStore:  tillstate.NewMemoryStore(),
	}
	f.service = NewTillService(f.sessionRepo, f.itemRepo, f.orderRepo, f.settings, f.notifs, f.stateStore)
	return f
}

func (f *tillFixture) start(t *testing.T, terminal string) *entity.CashSession {
	t.Helper()
	session, err := f.service.StartSession(context.Background(), &StartSessionInput{
		CashierID:       uuid.New(),
		Terminal:        terminal,
		Pin:             "1234",
		StartingBalance: 50,
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return session
}

func TestStartSessionPinNotConfigured(t *testing.T) {
	f := newTillFixture(t)
	if err := f.settings.Delete(context.Background(), entity.SettingCashierPin); err != nil {
		t.Fatalf("delete pin: %v", err)
	}

	_, err := f.service.StartSession(context.Background(), &StartSessionInput{
		CashierID: uuid.New(),
		Terminal:  "till-1",
		Pin:       "1234",
	})
	if err != apperror.ErrPinNotConfigured {
		t.Fatalf("expected ErrPinNotConfigured, got %v", err)
	}
}

func TestStartSessionWrongPin(t *testing.T) {
	f := newTillFixture(t)

	_, err := f.service.StartSession(context.Background(), &StartSessionInput{
		CashierID: uuid.New(),
		Terminal:  "till-1",
		Pin:       "9999",
	})
	if err != apperror.ErrInvalidPin {
		t.Fatalf("expected ErrInvalidPin, got %v", err)
	}
}

func TestStartSessionNegativeBalance(t *testing.T) {
	f := newTillFixture(t)

	_, err := f.service.StartSession(context.Background(), &StartSessionInput{
		CashierID:       uuid.New(),
		Terminal:        "till-1",
		Pin:             "1234",
		StartingBalance: -5,
	})
	if err != apperror.ErrInvalidBalance {
		t.Fatalf("expected ErrInvalidBalance, got %v", err)
	}
}

func TestStartSessionTerminalAlreadyOpen(t *testing.T) {
	f := newTillFixture(t)
	f.start(t, "till-1")

	_, err := f.service.StartSession(context.Background(), &StartSessionInput{
		CashierID: uuid.New(),
		Terminal:  "till-1",
		Pin:       "1234",
	})
	if err != apperror.ErrSessionAlreadyOpen {
		t.Fatalf("expected ErrSessionAlreadyOpen, got %v", err)
	}
}

func TestStartSessionCapturesOpeningSnapshot(t *testing.T) {
	f := newTillFixture(t,
		&entity.Item{Name: "Coffee", Price: 250, Stock: 40, Active: true},
		&entity.Item{Name: "Retired", Price: 100, Stock: 10, Active: false},
	)

	session := f.start(t, "till-1")

	if session.StartingBalance != 5000 {
		t.Errorf("expected starting balance 5000 cents, got %d", session.StartingBalance)
	}

	opening, err := f.sessionRepo.GetStockLines(context.Background(), session.ID, entity.StockStageOpening)
	if err != nil {
		t.Fatalf("get stock lines: %v", err)
	}
	if len(opening) != 1 {
		t.Fatalf("expected 1 opening line for the active item, got %d", len(opening))
	}
	if opening[0].ItemName != "Coffee" || opening[0].Quantity != 40 {
		t.Errorf("unexpected opening line: %+v", opening[0])
	}
}

func TestRecordSaleAccumulates(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")

	updated, err := f.service.RecordSale(context.Background(), session.ID, 7.50)
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if updated.SalesTotal != 750 {
		t.Errorf("expected sales total 750 cents, got %d", updated.SalesTotal)
	}

	updated, err = f.service.RecordSale(context.Background(), session.ID, 2.50)
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if updated.SalesTotal != 1000 {
		t.Errorf("expected sales total 1000 cents, got %d", updated.SalesTotal)
	}
	if updated.OrderCount != 2 {
		t.Errorf("expected order count 2, got %d", updated.OrderCount)
	}
}

func TestRecordSaleClosedSession(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")

	if _, err := f.service.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID}); err != nil {
		t.Fatalf("close session: %v", err)
	}

	_, err := f.service.RecordSale(context.Background(), session.ID, 5)
	if err != apperror.ErrSessionNotOpen {
		t.Fatalf("expected ErrSessionNotOpen, got %v", err)
	}
}

func TestCloseSessionReconciliation(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 40, Active: true}
	soda := &entity.Item{Name: "Soda", Price: 150, Stock: 20, Active: true}
	f := newTillFixture(t, coffee, soda)

	session := f.start(t, "till-1")

	// Coffee sells down; soda gets restocked mid-shift.
	coffee.Stock = 28
	soda.Stock = 35

	counted := 120.0
	summary, err := f.service.CloseSession(context.Background(), &CloseSessionInput{
		SessionID:      session.ID,
		CountedBalance: &counted,
	})
	if err != nil {
		t.Fatalf("close session: %v", err)
	}

	if summary.Session.Status != enum.SessionStatusClosed {
		t.Errorf("expected closed status, got %v", summary.Session.Status)
	}
	if summary.Session.CountedBalance == nil || *summary.Session.CountedBalance != 12000 {
		t.Errorf("expected counted balance 12000 cents, got %v", summary.Session.CountedBalance)
	}

	byName := make(map[string]entity.ReconciliationLine)
	for _, line := range summary.Reconciliation {
		byName[line.ItemName] = line
	}
	if line := byName["Coffee"]; line.Sold != 12 {
		t.Errorf("expected 12 coffees sold, got %d", line.Sold)
	}
	// A closing count above opening means restock, never negative sales.
	if line := byName["Soda"]; line.Sold != 0 {
		t.Errorf("expected 0 sodas sold after restock, got %d", line.Sold)
	}
}

func TestCloseSessionTwice(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")

	if _, err := f.service.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID}); err != nil {
		t.Fatalf("first close: %v", err)
	}

	_, err := f.service.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID})
	if err != apperror.ErrSessionNotOpen {
		t.Fatalf("expected ErrSessionNotOpen on second close, got %v", err)
	}
}

func TestCloseSessionRetryReplacesClosingSnapshot(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 40, Active: true}
	f := newTillFixture(t, coffee)
	session := f.start(t, "till-1")

	// A close that failed after snapshotting leaves its lines behind with the
	// session still open. The retry must not stack a second set on top.
	stale := []entity.SessionStockLine{{
		SessionID: session.ID,
		ItemID:    coffee.ID,
		ItemName:  coffee.Name,
		Stage:     entity.StockStageClosing,
		Quantity:  40,
	}}
	if err := f.sessionRepo.AddStockLines(context.Background(), stale); err != nil {
		t.Fatalf("seed stale closing lines: %v", err)
	}

	coffee.Stock = 28
	summary, err := f.service.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID})
	if err != nil {
		t.Fatalf("close session: %v", err)
	}

	closing, err := f.sessionRepo.GetStockLines(context.Background(), session.ID, entity.StockStageClosing)
	if err != nil {
		t.Fatalf("get closing lines: %v", err)
	}
	if len(closing) != 1 {
		t.Fatalf("expected a single closing line, got %d", len(closing))
	}
	if closing[0].Quantity != 28 {
		t.Errorf("expected the fresh count 28, got %d", closing[0].Quantity)
	}

	if len(summary.Reconciliation) != 1 || summary.Reconciliation[0].Sold != 12 {
		t.Errorf("unexpected reconciliation: %+v", summary.Reconciliation)
	}
}

func TestCloseSessionAttachWarning(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")
	f.orderRepo.attachErr = context.DeadlineExceeded

	summary, err := f.service.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID})
	if err != nil {
		t.Fatalf("close session: %v", err)
	}
	if summary.Warning == "" {
		t.Error("expected a warning when order attachment fails")
	}
	if summary.Session.Status != enum.SessionStatusClosed {
		t.Errorf("session should still close, got status %v", summary.Session.Status)
	}
}

func TestAbandonSession(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")

	notes := "terminal crashed"
	abandoned, err := f.service.AbandonSession(context.Background(), session.ID, &notes)
	if err != nil {
		t.Fatalf("abandon session: %v", err)
	}

	if abandoned.Status != enum.SessionStatusAbandoned {
		t.Errorf("expected abandoned status, got %v", abandoned.Status)
	}
	if abandoned.CountedBalance != nil {
		t.Error("abandoned session should carry no counted balance")
	}

	// The terminal is free again.
	open, err := f.sessionRepo.GetOpenByTerminal(context.Background(), "till-1")
	if err != nil {
		t.Fatalf("get open: %v", err)
	}
	if open != nil {
		t.Error("terminal should have no open session after abandon")
	}
}

func TestResumeReturnsSessionAndCart(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")

	cart := []repository.TillCartLine{
		{ItemID: uuid.New(), ItemName: "Coffee", Quantity: 2, UnitPrice: 250},
	}
	if err := f.service.SaveCart(context.Background(), "till-1", cart); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	out, err := f.service.Resume(context.Background(), "till-1")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if out == nil || out.Session == nil {
		t.Fatal("expected a resumable session")
	}
	if out.Session.ID != session.ID {
		t.Errorf("resumed wrong session: %s", out.Session.ID)
	}
	if len(out.Cart) != 1 || out.Cart[0].ItemName != "Coffee" {
		t.Errorf("expected saved cart back, got %+v", out.Cart)
	}
}

func TestResumeNoOpenSession(t *testing.T) {
	f := newTillFixture(t)

	out, err := f.service.Resume(context.Background(), "till-1")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil for a terminal with no open session, got %+v", out)
	}
}

func TestSaveCartRequiresOpenSession(t *testing.T) {
	f := newTillFixture(t)

	err := f.service.SaveCart(context.Background(), "till-1", nil)
	if err != apperror.ErrSessionNotOpen {
		t.Fatalf("expected ErrSessionNotOpen, got %v", err)
	}
}

func TestCloseSessionClearsState(t *testing.T) {
	f := newTillFixture(t)
	session := f.start(t, "till-1")

	if err := f.service.SaveCart(context.Background(), "till-1", []repository.TillCartLine{
		{ItemID: uuid.New(), ItemName: "Coffee", Quantity: 1, UnitPrice: 250},
	}); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	if _, err := f.service.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID}); err != nil {
		t.Fatalf("close session: %v", err)
	}

	state, err := f.stateStore.Load(context.Background(), "till-1")
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if state != nil {
		t.Errorf("expected till state cleared on close, got %+v", state)
	}
}
