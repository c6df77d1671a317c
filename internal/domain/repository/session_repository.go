package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// SessionRepository defines the interface for cash session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetWithStockCounts retrieves a session with its stock snapshot lines preloaded
	GetWithStockCounts(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetOpenByTerminal returns the open session for a terminal, or nil if none
	GetOpenByTerminal(ctx context.Context, terminal string) (*entity.CashSession, error)
	Update(ctx context.Context, session *entity.CashSession) error
	List(ctx context.Context, params *SessionFilterParams) ([]entity.CashSession, int64, error)
	// RecordSale atomically adds the amount to the running total and bumps the
	// order count, but only while the session is open. Returns false if the
	// session was not open.
	RecordSale(ctx context.Context, id uuid.UUID, amount int64) (bool, error)
	// CloseIfOpen transitions the session out of the open state. The update is
	// conditional on the current status so two concurrent closes cannot both
	// succeed. Returns false if the session was not open.
	CloseIfOpen(ctx context.Context, id uuid.UUID, status enum.SessionStatus, closedAt time.Time, countedBalance *int64, notes *string) (bool, error)
	// AddStockLines persists a batch of snapshot lines for a session
	AddStockLines(ctx context.Context, lines []entity.SessionStockLine) error
	GetStockLines(ctx context.Context, sessionID uuid.UUID, stage string) ([]entity.SessionStockLine, error)
	// DeleteStockLines removes a session's snapshot lines for one stage. A
	// close that failed partway leaves its closing lines behind; the retry
	// clears them before writing a fresh snapshot.
	DeleteStockLines(ctx context.Context, sessionID uuid.UUID, stage string) error
}

// SessionFilterParams contains filtering parameters for session queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	Terminal   string
	CashierID  *uuid.UUID
	Status     *enum.SessionStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
