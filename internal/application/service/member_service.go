package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

// Counter name for sequential member numbers
const memberCounter = "member_no"

// MemberService handles club member registration and upkeep
type MemberService struct {
	memberRepo  repository.MemberRepository
	counterRepo repository.CounterRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repository.MemberRepository, counterRepo repository.CounterRepository) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		counterRepo: counterRepo,
	}
}

// CreateMemberInput represents the create member input
type CreateMemberInput struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Address   *string
	JoinedAt  *time.Time
}

// CreateMember registers a new member with a sequential member number
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*entity.Member, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, apperror.NewBadRequestError("First and last name are required")
	}

	seq, err := s.counterRepo.Next(ctx, memberCounter)
	if err != nil {
		return nil, err
	}

	joinedAt := time.Now()
	if input.JoinedAt != nil {
		joinedAt = *input.JoinedAt
	}

	member := &entity.Member{
		MemberNo:  utils.FormatMemberNo(seq),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		JoinedAt:  joinedAt,
		Active:    true,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMemberInput represents the update member input. Nil fields are untouched.
type UpdateMemberInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Active    *bool
}

// UpdateMember updates a member's details
func (s *MemberService) UpdateMember(ctx context.Context, id uuid.UUID, input *UpdateMemberInput) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Email != nil {
		member.Email = input.Email
	}
	if input.Phone != nil {
		member.Phone = input.Phone
	}
	if input.Address != nil {
		member.Address = input.Address
	}
	if input.Active != nil {
		member.Active = *input.Active
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetMember retrieves a member by ID
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	return member, nil
}

// ListMembers lists members with search and pagination
func (s *MemberService) ListMembers(ctx context.Context, params *repository.MemberFilterParams) (*pagination.PaginatedResult[entity.Member], error) {
	members, total, err := s.memberRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(members, pag), nil
}

// DeleteMember soft-deletes a member
func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return apperror.NewNotFoundError("Member")
	}
	return s.memberRepo.Delete(ctx, id)
}
