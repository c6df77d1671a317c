package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/application/service"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/request"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/dto/response"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// SessionHandler handles till session HTTP requests
type SessionHandler struct {
	tillService    *service.TillService
	reportService  *service.ReportService
	printerService *service.PrinterService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	tillService *service.TillService,
	reportService *service.ReportService,
	printerService *service.PrinterService,
) *SessionHandler {
	return &SessionHandler{
		tillService:    tillService,
		reportService:  reportService,
		printerService: printerService,
	}
}

// Start handles opening a till session
func (h *SessionHandler) Start(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.tillService.StartSession(c.Request.Context(), &service.StartSessionInput{
		CashierID:       *userID,
		Terminal:        req.Terminal,
		Pin:             req.Pin,
		StartingBalance: req.StartingBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session started successfully", session)
}

// Resume handles recovering the open session for a terminal
func (h *SessionHandler) Resume(c *gin.Context) {
	terminal := c.Query("terminal")
	if terminal == "" {
		response.BadRequest(c, "Terminal is required")
		return
	}

	out, err := h.tillService.Resume(c.Request.Context(), terminal)
	if err != nil {
		response.Error(c, err)
		return
	}
	if out == nil {
		response.OK(c, "No open session for terminal", nil)
		return
	}

	response.OK(c, "Session resumed successfully", out)
}

// SaveCart handles persisting the in-progress cart for a terminal
func (h *SessionHandler) SaveCart(c *gin.Context) {
	var req request.SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tillService.SaveCart(c.Request.Context(), req.Terminal, req.Cart); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart saved successfully", nil)
}

// RecordSale handles adding a sale amount to the session's running total
func (h *SessionHandler) RecordSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.tillService.RecordSale(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale recorded successfully", session)
}

// Close handles closing a till session with reconciliation
func (h *SessionHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.tillService.CloseSession(c.Request.Context(), &service.CloseSessionInput{
		SessionID:      id,
		CountedBalance: req.CountedBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session closed successfully", summary)
}

// Abandon handles force-closing a crashed session. Admin only.
func (h *SessionHandler) Abandon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.AbandonSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.tillService.AbandonSession(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session abandoned", session)
}

// List handles listing session history with filters
func (h *SessionHandler) List(c *gin.Context) {
	var filter request.SessionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reportService.ListSessions(c.Request.Context(), sessionFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sessions retrieved successfully", result)
}

// Get handles retrieving a session with its reconciliation lines
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	detail, err := h.reportService.GetSessionDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", detail)
}

// Export handles downloading the filtered session history as XLSX
func (h *SessionHandler) Export(c *gin.Context) {
	var filter request.SessionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	buf, err := h.reportService.ExportSessionsXLSX(c.Request.Context(), sessionFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sessions.xlsx"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Report handles rendering the printable close-out report
func (h *SessionHandler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	report, err := h.printerService.BuildSessionReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session report built successfully", report)
}

// PrintReport handles sending the close-out report to the thermal printer
func (h *SessionHandler) PrintReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	report, err := h.printerService.PrintSessionReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session report printed successfully", report)
}

func sessionFilterParams(filter *request.SessionFilterRequest) *repository.SessionFilterParams {
	params := &repository.SessionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Terminal:  filter.Terminal,
		CashierID: parseUUIDParam(filter.CashierID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseEndDate(filter.EndDate),
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	if filter.Status != "" {
		if status, ok := enum.ParseSessionStatus(filter.Status); ok {
			params.Status = &status
		}
	}
	return params
}
