package request

import "github.com/google/uuid"

// OrderLineRequest represents one cart line in an order request
type OrderLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	SessionID     *uuid.UUID         `json:"session_id"`
	MemberID      *uuid.UUID         `json:"member_id"`
	CustomerLabel string             `json:"customer_label" binding:"omitempty,max=255"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=cash card account"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,dive"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search        string `form:"search"`
	CashierID     string `form:"cashier_id"`
	SessionID     string `form:"session_id"`
	MemberID      string `form:"member_id"`
	PaymentMethod string `form:"payment_method"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
