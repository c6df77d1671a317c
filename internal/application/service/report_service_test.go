package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

func TestListReceiptsPageAggregates(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewReportService(newFakeSessionRepo(), orderRepo)

	for _, total := range []int64{250, 750, 500} {
		_ = orderRepo.Create(context.Background(), &entity.Order{
			OrderNo:   uuid.NewString(),
			CashierID: uuid.New(),
			Total:     total,
		})
	}

	page, err := svc.ListReceipts(context.Background(), &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("list receipts: %v", err)
	}

	agg := page.Aggregates
	if agg.Scope != "page_scope" {
		t.Errorf("aggregates must be labelled page_scope, got %q", agg.Scope)
	}
	if agg.OrderCount != 3 {
		t.Errorf("expected 3 orders, got %d", agg.OrderCount)
	}
	if agg.Revenue != 15.0 {
		t.Errorf("expected revenue 15.00, got %v", agg.Revenue)
	}
	if agg.AverageOrder != 5.0 {
		t.Errorf("expected average 5.00, got %v", agg.AverageOrder)
	}
}

func TestListReceiptsEmptyPage(t *testing.T) {
	svc := NewReportService(newFakeSessionRepo(), newFakeOrderRepo())

	page, err := svc.ListReceipts(context.Background(), &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("list receipts: %v", err)
	}
	if page.Aggregates.AverageOrder != 0 {
		t.Errorf("average over an empty page must be 0, got %v", page.Aggregates.AverageOrder)
	}
}

func TestGetSessionDetailReconciles(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	svc := NewReportService(sessionRepo, newFakeOrderRepo())

	session := &entity.CashSession{Terminal: "till-1", CashierID: uuid.New()}
	_ = sessionRepo.Create(context.Background(), session)

	itemID := uuid.New()
	_ = sessionRepo.AddStockLines(context.Background(), []entity.SessionStockLine{
		{SessionID: session.ID, ItemID: itemID, ItemName: "Coffee", Stage: entity.StockStageOpening, Quantity: 30},
		{SessionID: session.ID, ItemID: itemID, ItemName: "Coffee", Stage: entity.StockStageClosing, Quantity: 18},
	})

	detail, err := svc.GetSessionDetail(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("get session detail: %v", err)
	}
	if len(detail.Reconciliation) != 1 {
		t.Fatalf("expected 1 reconciliation line, got %d", len(detail.Reconciliation))
	}
	if detail.Reconciliation[0].Sold != 12 {
		t.Errorf("expected 12 sold, got %d", detail.Reconciliation[0].Sold)
	}
}

func TestGetSessionDetailNotFound(t *testing.T) {
	svc := NewReportService(newFakeSessionRepo(), newFakeOrderRepo())

	if _, err := svc.GetSessionDetail(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestExportSessionsXLSX(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	svc := NewReportService(sessionRepo, newFakeOrderRepo())

	counted := int64(10000)
	session := &entity.CashSession{
		Terminal:        "till-1",
		CashierID:       uuid.New(),
		StartingBalance: 5000,
		SalesTotal:      4500,
		CountedBalance:  &counted,
	}
	_ = sessionRepo.Create(context.Background(), session)

	buf, err := svc.ExportSessionsXLSX(context.Background(), &repository.SessionFilterParams{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a non-empty workbook")
	}
}
