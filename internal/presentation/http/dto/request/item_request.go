package request

// CreateItemRequest represents an item creation request. StockThreshold left
// out of the body means "use the catalog default", not zero.
type CreateItemRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=255"`
	Category       string  `json:"category" binding:"omitempty,oneof=food beverage snack other"`
	Price          float64 `json:"price" binding:"min=0"`
	Stock          int     `json:"stock" binding:"min=0"`
	StockThreshold *int    `json:"stock_threshold" binding:"omitempty,min=0"`
}

// UpdateItemRequest represents an item update request
type UpdateItemRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Category       *string  `json:"category" binding:"omitempty,oneof=food beverage snack other"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
	StockThreshold *int     `json:"stock_threshold" binding:"omitempty,min=0"`
	Active         *bool    `json:"active"`
}

// RestockRequest represents a stock top-up request
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ItemFilterRequest represents item filter parameters
type ItemFilterRequest struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	LowStock   bool   `form:"low_stock"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
