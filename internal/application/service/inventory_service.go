package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/email"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// InventoryService handles cafeteria catalog and stock operations
type InventoryService struct {
	itemRepo     repository.ItemRepository
	userRepo     repository.UserRepository
	notifRepo    repository.NotificationRepository
	emailService *email.EmailService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	emailService *email.EmailService,
) *InventoryService {
	return &InventoryService{
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		notifRepo:    notifRepo,
		emailService: emailService,
	}
}

// Restock threshold applied when an item is created without one
const defaultStockThreshold = 10

// CreateItemInput represents the create item input. StockThreshold is a
// pointer so an explicit zero is distinguishable from an omitted value.
type CreateItemInput struct {
	Name           string
	Category       enum.ItemCategory
	Price          float64
	Stock          int
	StockThreshold *int
}

// CreateItem adds a new item to the catalog
func (s *InventoryService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	threshold := defaultStockThreshold
	if input.StockThreshold != nil {
		if *input.StockThreshold < 0 {
			return nil, apperror.NewBadRequestError("Stock threshold cannot be negative")
		}
		threshold = *input.StockThreshold
	}

	item := &entity.Item{
		Name:           input.Name,
		Category:       input.Category,
		Stock:          input.Stock,
		StockThreshold: threshold,
		Active:         true,
	}
	item.SetPriceFromDecimal(input.Price)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput represents the update item input. Nil fields are untouched.
type UpdateItemInput struct {
	Name           *string
	Category       *enum.ItemCategory
	Price          *float64
	StockThreshold *int
	Active         *bool
}

// UpdateItem updates catalog fields. Stock changes go through Restock or
// orders, never through here, so concurrent sales cannot be overwritten.
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		item.SetPriceFromDecimal(*input.Price)
	}
	if input.StockThreshold != nil {
		item.StockThreshold = *input.StockThreshold
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists items with filtering
func (s *InventoryService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// DeleteItem soft-deletes an item from the catalog
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}

// Restock adds quantity to an item's stock
func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*entity.Item, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Restock quantity must be positive")
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if err := s.itemRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{id: quantity}); err != nil {
		return nil, err
	}

	return s.itemRepo.GetByID(ctx, id)
}

// GetLowStockItems returns active items at or below their restock threshold
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.GetLowStock(ctx)
}

// SendLowStockDigest mails the low stock summary to the given address and
// leaves an in-app notification for the recipient. No-op when nothing is low.
func (s *InventoryService) SendLowStockDigest(ctx context.Context, recipientID uuid.UUID, recipientEmail string) (int, error) {
	items, err := s.itemRepo.GetLowStock(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	digest := make([]email.LowStockItem, 0, len(items))
	for _, item := range items {
		digest = append(digest, email.LowStockItem{
			Name:      item.Name,
			Stock:     item.Stock,
			Threshold: item.StockThreshold,
		})
	}

	if err := s.emailService.SendLowStockDigest(recipientEmail, digest); err != nil {
		log.Printf("Warning: failed to send low stock digest: %v", err)
	}

	notification := &entity.Notification{
		UserID: recipientID,
		Kind:   entity.NotificationKindLowStock,
		Title:  "Low stock alert",
		Body:   "Some cafeteria items are at or below their restock threshold.",
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		log.Printf("Warning: failed to create low stock notification: %v", err)
	}

	return len(items), nil
}
