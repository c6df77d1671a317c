package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// ReportService serves session history, receipt history and exports
type ReportService struct {
	sessionRepo repository.SessionRepository
	orderRepo   repository.OrderRepository
}

// NewReportService creates a new report service
func NewReportService(sessionRepo repository.SessionRepository, orderRepo repository.OrderRepository) *ReportService {
	return &ReportService{
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
	}
}

// ListSessions lists session summaries with filters and pagination
func (s *ReportService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) (*pagination.PaginatedResult[entity.CashSession], error) {
	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}

// SessionDetail is a session with its reconciliation lines
type SessionDetail struct {
	Session        *entity.CashSession         `json:"session"`
	Reconciliation []entity.ReconciliationLine `json:"reconciliation"`
}

// GetSessionDetail returns a session with its opening/closing/sold lines
func (s *ReportService) GetSessionDetail(ctx context.Context, id uuid.UUID) (*SessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	opening, err := s.sessionRepo.GetStockLines(ctx, id, entity.StockStageOpening)
	if err != nil {
		return nil, err
	}
	closing, err := s.sessionRepo.GetStockLines(ctx, id, entity.StockStageClosing)
	if err != nil {
		return nil, err
	}

	return &SessionDetail{
		Session:        session,
		Reconciliation: entity.Reconcile(opening, closing),
	}, nil
}

// PageAggregates holds revenue figures computed over one result page only,
// never over the full filtered set.
type PageAggregates struct {
	Scope        string  `json:"scope"`
	OrderCount   int     `json:"order_count"`
	Revenue      float64 `json:"revenue"`
	AverageOrder float64 `json:"average_order"`
}

// ReceiptPage is a page of receipt history plus its page-local aggregates
type ReceiptPage struct {
	Result     *pagination.PaginatedResult[entity.Order] `json:"result"`
	Aggregates PageAggregates                            `json:"aggregates"`
}

// ListReceipts returns paginated receipt history. The revenue aggregates cover
// the returned page only and say so via the page_scope label.
func (s *ReportService) ListReceipts(ctx context.Context, params *repository.OrderFilterParams) (*ReceiptPage, error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	var revenue int64
	for _, order := range orders {
		revenue += order.Total
	}

	agg := PageAggregates{
		Scope:      "page_scope",
		OrderCount: len(orders),
		Revenue:    float64(revenue) / 100,
	}
	if len(orders) > 0 {
		agg.AverageOrder = float64(revenue) / float64(len(orders)) / 100
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return &ReceiptPage{
		Result:     pagination.NewPaginatedResult(orders, pag),
		Aggregates: agg,
	}, nil
}

var sessionExportHeaders = []string{
	"Terminal", "Cashier", "Status", "Started At", "Closed At",
	"Starting Balance", "Sales Total", "Expected Balance", "Counted Balance", "Variance", "Orders",
}

// ExportSessionsXLSX renders the filtered session summaries as a spreadsheet
// for auditors. Filters apply as in ListSessions but the export is not paged.
func (s *ReportService) ExportSessionsXLSX(ctx context.Context, params *repository.SessionFilterParams) (*bytes.Buffer, error) {
	// Exports cover the whole filtered set
	params.Pagination = &pagination.PaginationParams{Page: 1, PerPage: 10000}

	sessions, _, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sessions"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range sessionExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(sessionExportHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)
	}

	for i, session := range sessions {
		row := i + 2
		closedAt := ""
		if session.ClosedAt != nil {
			closedAt = session.ClosedAt.Format(time.RFC3339)
		}
		values := []interface{}{
			session.Terminal,
			session.Cashier.FullName(),
			session.Status.String(),
			session.StartedAt.Format(time.RFC3339),
			closedAt,
			float64(session.StartingBalance) / 100,
			float64(session.SalesTotal) / 100,
			float64(session.ExpectedBalance()) / 100,
		}
		if session.CountedBalance != nil {
			values = append(values, float64(*session.CountedBalance)/100)
			values = append(values, float64(session.Variance())/100)
		} else {
			values = append(values, "", "")
		}
		values = append(values, session.OrderCount)

		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}
	return buf, nil
}
