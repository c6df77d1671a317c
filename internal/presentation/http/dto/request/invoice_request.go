package request

import "github.com/google/uuid"

// IssueInvoiceRequest represents an invoice creation request
type IssueInvoiceRequest struct {
	Kind        string     `json:"kind" binding:"required,oneof=membership_fee salary"`
	MemberID    *uuid.UUID `json:"member_id"`
	UserID      *uuid.UUID `json:"user_id"`
	Description string     `json:"description" binding:"required,max=255"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	DueDate     string     `json:"due_date" binding:"required"` // YYYY-MM-DD
}

// FeeBatchRequest represents a membership fee batch run request
type FeeBatchRequest struct {
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	DueDate     string  `json:"due_date" binding:"required"` // YYYY-MM-DD
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	Search    string `form:"search"`
	Kind      string `form:"kind"`
	Status    string `form:"status"`
	MemberID  string `form:"member_id"`
	UserID    string `form:"user_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
