package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

// Counter name for sequential order numbers
const orderCounter = "order_no"

// OrderService handles cafeteria order processing
type OrderService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.ItemRepository
	sessionRepo repository.SessionRepository
	memberRepo  repository.MemberRepository
	counterRepo repository.CounterRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	sessionRepo repository.SessionRepository,
	memberRepo repository.MemberRepository,
	counterRepo repository.CounterRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
		memberRepo:  memberRepo,
		counterRepo: counterRepo,
	}
}

// OrderLineInput represents one cart line in an order
type OrderLineInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// CreateOrderInput represents the create order input. PaymentMethod is a
// pointer so a request that never supplied one is distinguishable from cash.
type CreateOrderInput struct {
	CashierID     uuid.UUID
	SessionID     *uuid.UUID
	MemberID      *uuid.UUID
	CustomerLabel string
	PaymentMethod *enum.PaymentMethod
	Lines         []OrderLineInput
}

// CreateOrder rings a cart through: validates the cart, snapshots item names
// and prices, decrements stock atomically, and records the sale into the open
// session. The whole order is rejected when any line lacks stock.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if input.PaymentMethod == nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_method", Message: "Payment method is required"},
		})
	}

	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Line quantity must be positive")
		}
	}

	// The customer label is a snapshot: the member's name at sale time, or
	// free text, or the walk-in default when neither is given.
	customerLabel := strings.TrimSpace(input.CustomerLabel)
	if input.MemberID != nil {
		member, err := s.memberRepo.GetByID(ctx, *input.MemberID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, apperror.NewNotFoundError("Member")
		}
		if customerLabel == "" {
			customerLabel = member.FullName()
		}
	}
	if customerLabel == "" {
		customerLabel = entity.WalkInCustomer
	}

	// Reject up front when the session is already gone; the conditional
	// RecordSale below still covers the race with a concurrent close.
	if input.SessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, *input.SessionID)
		if err != nil {
			return nil, err
		}
		if session == nil || !session.IsOpen() {
			return nil, apperror.ErrSessionNotOpen
		}
	}

	// Batch fetch all items in one query (prevents N+1)
	itemIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		itemIDs[i] = line.ItemID
	}

	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	itemMap := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	// Validate all items exist, snapshot names and prices, and build the
	// stock decrement set
	var total int64
	var totalItems int
	orderLines := make([]entity.OrderLine, 0, len(input.Lines))
	stockDecrements := make(map[uuid.UUID]int)

	for _, line := range input.Lines {
		item, exists := itemMap[line.ItemID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s", line.ItemID))
		}
		if !item.Active {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %q is not for sale", item.Name))
		}

		lineTotal := item.Price * int64(line.Quantity)
		total += lineTotal
		totalItems += line.Quantity

		orderLines = append(orderLines, entity.OrderLine{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
			Total:     lineTotal,
		})

		stockDecrements[item.ID] += line.Quantity
	}

	// Atomically decrement stock. If any item has insufficient stock, the
	// whole batch rolls back and nothing is sold.
	failedIDs, err := s.itemRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}

	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if item, exists := itemMap[id]; exists {
				failedNames = append(failedNames, item.Name)
			}
		}
		return nil, apperror.NewInsufficientStockError(failedNames)
	}

	seq, err := s.counterRepo.Next(ctx, orderCounter)
	if err != nil {
		_ = s.itemRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	order := &entity.Order{
		OrderNo:       utils.FormatOrderNo(seq),
		CashierID:     input.CashierID,
		SessionID:     input.SessionID,
		MemberID:      input.MemberID,
		CustomerLabel: customerLabel,
		PaymentMethod: *input.PaymentMethod,
		TotalItems:    totalItems,
		Total:         total,
		Lines:         orderLines,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock was already decremented, restore it
		_ = s.itemRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	// Record the sale into the session's running total. If the session got
	// closed between our check and here, detach the order rather than lose it.
	if input.SessionID != nil {
		ok, err := s.sessionRepo.RecordSale(ctx, *input.SessionID, total)
		if err != nil {
			log.Printf("Warning: failed to record sale for session %s: %v", *input.SessionID, err)
		} else if !ok {
			log.Printf("Warning: session %s closed before sale was recorded, detaching order %s",
				*input.SessionID, order.OrderNo)
			order.SessionID = nil
			if updErr := s.orderRepo.Update(ctx, order); updErr != nil {
				log.Printf("Warning: failed to detach order %s: %v", order.OrderNo, updErr)
			}
		}
	}

	return s.orderRepo.GetWithLines(ctx, order.ID)
}

// GetOrder retrieves an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListSessionOrders returns all orders rung through a session
func (s *OrderService) ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]entity.Order, error) {
	return s.orderRepo.ListBySession(ctx, sessionID)
}
