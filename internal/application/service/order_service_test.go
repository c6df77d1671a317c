package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
)

type orderFixture struct {
	service     *OrderService
	orderRepo   *fakeOrderRepo
	itemRepo    *fakeItemRepo
	sessionRepo *fakeSessionRepo
	memberRepo  *fakeMemberRepo
	counterRepo *fakeCounterRepo
}

func newOrderFixture(items ...*entity.Item) *orderFixture {
	f := &orderFixture{
		orderRepo:   newFakeOrderRepo(),
		itemRepo:    newFakeItemRepo(items...),
		sessionRepo: newFakeSessionRepo(),
		memberRepo:  newFakeMemberRepo(),
		counterRepo: newFakeCounterRepo(),
	}
	f.service = NewOrderService(f.orderRepo, f.itemRepo, f.sessionRepo, f.memberRepo, f.counterRepo)
	return f
}

func pay(m enum.PaymentMethod) *enum.PaymentMethod {
	return &m
}

func (f *orderFixture) openSession(t *testing.T) *entity.CashSession {
	t.Helper()
	session := &entity.CashSession{
		Terminal:  "till-1",
		CashierID: uuid.New(),
		Status:    enum.SessionStatusOpen,
		StartedAt: time.Now(),
	}
	if err := f.sessionRepo.Create(context.Background(), session); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID: uuid.New(),
	})
	if err != apperror.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	cake := &entity.Item{Name: "Cake", Price: 400, Stock: 5, Active: true}
	f := newOrderFixture(coffee, cake)
	session := f.openSession(t)

	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     session.CashierID,
		SessionID:     &session.ID,
		PaymentMethod: pay(enum.PaymentMethodCash),
		Lines: []OrderLineInput{
			{ItemID: coffee.ID, Quantity: 2},
			{ItemID: cake.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.Total != 900 {
		t.Errorf("expected total 900 cents, got %d", order.Total)
	}
	if order.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", order.TotalItems)
	}
	if order.OrderNo != "ORD-000001" {
		t.Errorf("expected ORD-000001, got %s", order.OrderNo)
	}

	// Stock moved and the sale landed in the session total.
	if coffee.Stock != 8 || cake.Stock != 4 {
		t.Errorf("expected stock 8/4, got %d/%d", coffee.Stock, cake.Stock)
	}
	updated, _ := f.sessionRepo.GetByID(context.Background(), session.ID)
	if updated.SalesTotal != 900 {
		t.Errorf("expected session sales total 900, got %d", updated.SalesTotal)
	}
}

func TestCreateOrderMissingPaymentMethod(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	f := newOrderFixture(coffee)

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID: uuid.New(),
		Lines:     []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("an order without a payment method must be rejected, not rung as cash")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 422 {
		t.Errorf("expected validation code 422, got %d", appErr.Code)
	}

	if coffee.Stock != 10 {
		t.Errorf("stock should be untouched, got %d", coffee.Stock)
	}
	if len(f.orderRepo.orders) != 0 {
		t.Errorf("no order should exist, got %d", len(f.orderRepo.orders))
	}
}

func TestCreateOrderCustomerLabel(t *testing.T) {
	t.Run("walk-in default", func(t *testing.T) {
		coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
		f := newOrderFixture(coffee)

		order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
			CashierID:     uuid.New(),
			PaymentMethod: pay(enum.PaymentMethodCash),
			Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		if order.CustomerLabel != "Walk-in Customer" {
			t.Errorf("expected walk-in label, got %q", order.CustomerLabel)
		}
	})

	t.Run("member name snapshot", func(t *testing.T) {
		coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
		f := newOrderFixture(coffee)
		member := &entity.Member{MemberNo: "MBR-00001", FirstName: "Ada", LastName: "Mwangi", Active: true}
		if err := f.memberRepo.Create(context.Background(), member); err != nil {
			t.Fatalf("create member: %v", err)
		}

		order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
			CashierID:     uuid.New(),
			MemberID:      &member.ID,
			PaymentMethod: pay(enum.PaymentMethodAccount),
			Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		if order.CustomerLabel != member.FullName() {
			t.Errorf("expected %q, got %q", member.FullName(), order.CustomerLabel)
		}
	})

	t.Run("free text label kept", func(t *testing.T) {
		coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
		f := newOrderFixture(coffee)

		order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
			CashierID:     uuid.New(),
			CustomerLabel: "Visiting team",
			PaymentMethod: pay(enum.PaymentMethodCash),
			Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		if order.CustomerLabel != "Visiting team" {
			t.Errorf("expected free text label, got %q", order.CustomerLabel)
		}
	})
}

func TestCreateOrderSnapshotsNamesAndPrices(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	f := newOrderFixture(coffee)

	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     uuid.New(),
		PaymentMethod: pay(enum.PaymentMethodCash),
		Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	stored, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	if len(stored.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(stored.Lines))
	}
	line := stored.Lines[0]
	if line.ItemName != "Coffee" || line.UnitPrice != 250 || line.Total != 500 {
		t.Errorf("unexpected line snapshot: %+v", line)
	}
}

func TestCreateOrderInsufficientStockRejectsWholeOrder(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	cake := &entity.Item{Name: "Cake", Price: 400, Stock: 1, Active: true}
	f := newOrderFixture(coffee, cake)

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     uuid.New(),
		PaymentMethod: pay(enum.PaymentMethodCash),
		Lines: []OrderLineInput{
			{ItemID: coffee.ID, Quantity: 2},
			{ItemID: cake.ID, Quantity: 3},
		},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 409 {
		t.Errorf("expected conflict code, got %d", appErr.Code)
	}

	// Nothing sold: both stocks untouched.
	if coffee.Stock != 10 || cake.Stock != 1 {
		t.Errorf("stock should be untouched, got %d/%d", coffee.Stock, cake.Stock)
	}
	if len(f.orderRepo.orders) != 0 {
		t.Errorf("no order should exist, got %d", len(f.orderRepo.orders))
	}
}

func TestCreateOrderInactiveItem(t *testing.T) {
	retired := &entity.Item{Name: "Retired", Price: 100, Stock: 10, Active: false}
	f := newOrderFixture(retired)

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     uuid.New(),
		PaymentMethod: pay(enum.PaymentMethodCash),
		Lines:         []OrderLineInput{{ItemID: retired.ID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for inactive item")
	}
}

func TestCreateOrderUnknownItem(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     uuid.New(),
		PaymentMethod: pay(enum.PaymentMethodCash),
		Lines:         []OrderLineInput{{ItemID: uuid.New(), Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestCreateOrderClosedSessionRejected(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	f := newOrderFixture(coffee)
	session := f.openSession(t)

	closedAt := time.Now()
	if _, err := f.sessionRepo.CloseIfOpen(context.Background(), session.ID, enum.SessionStatusClosed, closedAt, nil, nil); err != nil {
		t.Fatalf("close session: %v", err)
	}

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     session.CashierID,
		SessionID:     &session.ID,
		PaymentMethod: pay(enum.PaymentMethodCash),
		Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
	})
	if err != apperror.ErrSessionNotOpen {
		t.Fatalf("expected ErrSessionNotOpen, got %v", err)
	}
}

func TestCreateOrderUnknownMember(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	f := newOrderFixture(coffee)

	memberID := uuid.New()
	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:     uuid.New(),
		MemberID:      &memberID,
		PaymentMethod: pay(enum.PaymentMethodAccount),
		Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for unknown member")
	}
}

func TestOrderNumbersAreSequential(t *testing.T) {
	coffee := &entity.Item{Name: "Coffee", Price: 250, Stock: 10, Active: true}
	f := newOrderFixture(coffee)

	for i, want := range []string{"ORD-000001", "ORD-000002", "ORD-000003"} {
		order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
			CashierID:     uuid.New(),
			PaymentMethod: pay(enum.PaymentMethodCash),
			Lines:         []OrderLineInput{{ItemID: coffee.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
		if order.OrderNo != want {
			t.Errorf("expected %s, got %s", want, order.OrderNo)
		}
	}
}
