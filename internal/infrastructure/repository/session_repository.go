package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	domainRepo "github.com/veloclub/clubhouse-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new cash session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetWithStockCounts(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Preload("StockCounts").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetOpenByTerminal(ctx context.Context, terminal string) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Where("terminal = ? AND status = ?", terminal, enum.SessionStatusOpen).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashSession{})

	if params.Terminal != "" {
		query = query.Where("terminal = ?", params.Terminal)
	}

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("started_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("started_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "started_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Cashier").
		Order(sortBy + " " + sortOrder).
		Find(&sessions).Error

	return sessions, total, err
}

// RecordSale adds the sale amount to the running total, conditional on the
// session still being open. The guard keeps a racing close from losing sales.
func (r *sessionRepository) RecordSale(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.CashSession{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusOpen).
		Updates(map[string]interface{}{
			"sales_total": gorm.Expr("sales_total + ?", amount),
			"order_count": gorm.Expr("order_count + 1"),
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CloseIfOpen transitions the session out of the open state. The status guard
// in the WHERE clause means only one of two concurrent closes wins.
func (r *sessionRepository) CloseIfOpen(ctx context.Context, id uuid.UUID, status enum.SessionStatus, closedAt time.Time, countedBalance *int64, notes *string) (bool, error) {
	updates := map[string]interface{}{
		"status":    status,
		"closed_at": closedAt,
	}
	if countedBalance != nil {
		updates["counted_balance"] = *countedBalance
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := r.db.WithContext(ctx).Model(&entity.CashSession{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusOpen).
		Updates(updates)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) AddStockLines(ctx context.Context, lines []entity.SessionStockLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *sessionRepository) DeleteStockLines(ctx context.Context, sessionID uuid.UUID, stage string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND stage = ?", sessionID, stage).
		Delete(&entity.SessionStockLine{}).Error
}

func (r *sessionRepository) GetStockLines(ctx context.Context, sessionID uuid.UUID, stage string) ([]entity.SessionStockLine, error) {
	var lines []entity.SessionStockLine
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND stage = ?", sessionID, stage).
		Order("item_name ASC").
		Find(&lines).Error
	return lines, err
}
