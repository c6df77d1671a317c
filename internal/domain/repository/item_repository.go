package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// ItemRepository defines the interface for cafeteria item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	CreateBatch(ctx context.Context, items []entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	// GetByIDs retrieves multiple items by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	// Update writes catalog columns (name, category, price, threshold, active).
	// It never touches stock; only the atomic increment/decrement paths do.
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	// ListActive returns every active item, used for session stock snapshots
	ListActive(ctx context.Context) ([]entity.Item, error)
	GetLowStock(ctx context.Context) ([]entity.Item, error)
	// AtomicDecrementStock atomically decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// AtomicDecrementBatch atomically decrements stock for multiple items.
	// Returns IDs that failed (insufficient stock) and any error.
	// If any item fails, the entire transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple items (restocks, rollbacks)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   *enum.ItemCategory
	LowStock   bool
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
