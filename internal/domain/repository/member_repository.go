package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// MemberRepository defines the interface for club member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)
	GetByMemberNo(ctx context.Context, memberNo string) (*entity.Member, error)
	Update(ctx context.Context, member *entity.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MemberFilterParams) ([]entity.Member, int64, error)
	// ListActive returns every active member, used for fee invoice runs
	ListActive(ctx context.Context) ([]entity.Member, error)
}

// MemberFilterParams contains filtering parameters for member queries
type MemberFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
