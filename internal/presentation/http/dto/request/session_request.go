package request

import "github.com/veloclub/clubhouse-api/internal/domain/repository"

// StartSessionRequest represents a till session start request
type StartSessionRequest struct {
	Terminal        string  `json:"terminal" binding:"required,min=1,max=100"`
	Pin             string  `json:"pin" binding:"required,min=4"`
	StartingBalance float64 `json:"starting_balance" binding:"min=0"`
}

// RecordSaleRequest represents a manual sale amount recording request
type RecordSaleRequest struct {
	Amount float64 `json:"amount" binding:"required,min=0"`
}

// CloseSessionRequest represents a till session close request
type CloseSessionRequest struct {
	CountedBalance *float64 `json:"counted_balance" binding:"omitempty,min=0"`
	Notes          *string  `json:"notes"`
}

// AbandonSessionRequest represents an admin session abandon request
type AbandonSessionRequest struct {
	Notes *string `json:"notes"`
}

// SaveCartRequest represents a till cart snapshot save request
type SaveCartRequest struct {
	Terminal string                    `json:"terminal" binding:"required"`
	Cart     []repository.TillCartLine `json:"cart"`
}

// SessionFilterRequest represents session filter parameters
type SessionFilterRequest struct {
	Terminal  string `form:"terminal"`
	CashierID string `form:"cashier_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
