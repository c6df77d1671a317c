package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/veloclub/clubhouse-api/internal/application/service"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/request"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/response"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// ReportHandler handles receipt history HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Receipts handles listing receipt history with page-local revenue aggregates
func (h *ReportHandler) Receipts(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		CashierID: parseUUIDParam(filter.CashierID),
		SessionID: parseUUIDParam(filter.SessionID),
		MemberID:  parseUUIDParam(filter.MemberID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseEndDate(filter.EndDate),
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.PaymentMethod != "" {
		if method, ok := enum.ParsePaymentMethod(filter.PaymentMethod); ok {
			params.PaymentMethod = &method
		}
	}

	page, err := h.reportService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", page)
}
