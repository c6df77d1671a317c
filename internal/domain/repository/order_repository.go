package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order together with its lines
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	// GetWithLines retrieves an order with its lines preloaded
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.Order, error)
	// AttachSession stamps the session ID onto orders taken by the cashier in
	// the given window that have no session yet. Returns rows affected.
	AttachSession(ctx context.Context, sessionID, cashierID uuid.UUID, from, to time.Time) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CashierID     *uuid.UUID
	SessionID     *uuid.UUID
	MemberID      *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// CounterRepository advances named sequences for document numbers
type CounterRepository interface {
	// Next atomically increments and returns the counter value for the name
	Next(ctx context.Context, name string) (int64, error)
}
