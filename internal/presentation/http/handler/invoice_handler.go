package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/application/service"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/request"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/response"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// InvoiceHandler handles invoicing HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Issue handles creating a single invoice
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req request.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	kind, ok := enum.ParseInvoiceKind(req.Kind)
	if !ok {
		response.BadRequest(c, "Invalid invoice kind")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	invoice, err := h.invoiceService.IssueInvoice(c.Request.Context(), &service.IssueInvoiceInput{
		Kind:        kind,
		MemberID:    req.MemberID,
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice issued successfully", invoice)
}

// FeeBatch handles issuing a membership fee invoice to every active member
func (h *InvoiceHandler) FeeBatch(c *gin.Context) {
	var req request.FeeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	count, err := h.invoiceService.RunMembershipFeeBatch(c.Request.Context(), req.Description, req.Amount, dueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee batch completed", gin.H{"invoices_created": count})
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		MemberID:  parseUUIDParam(filter.MemberID),
		UserID:    parseUUIDParam(filter.UserID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseEndDate(filter.EndDate),
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Kind != "" {
		if kind, ok := enum.ParseInvoiceKind(filter.Kind); ok {
			params.Kind = &kind
		}
	}
	if filter.Status != "" {
		if status, ok := enum.ParseInvoiceStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// MarkPaid handles settling an invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as paid", invoice)
}

// Cancel handles voiding an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled", invoice)
}

// SweepOverdue handles flipping pending invoices past due to overdue
func (h *InvoiceHandler) SweepOverdue(c *gin.Context) {
	count, err := h.invoiceService.SweepOverdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue sweep completed", gin.H{"invoices_flagged": count})
}
