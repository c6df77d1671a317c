package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// NotificationService handles the in-app notification inbox
type NotificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
	}
}

// CreateNotificationInput represents the create notification input. A direct
// notification targets UserID; a broadcast targets every user holding Role.
type CreateNotificationInput struct {
	UserID *uuid.UUID
	Role   string
	Kind   string
	Title  string
	Body   string
}

// Notify creates notifications for the target user or role. Returns the
// number of notifications created.
func (s *NotificationService) Notify(ctx context.Context, input *CreateNotificationInput) (int, error) {
	if input.Title == "" {
		return 0, apperror.NewBadRequestError("Title is required")
	}
	kind := input.Kind
	if kind == "" {
		kind = entity.NotificationKindGeneral
	}

	if input.UserID != nil {
		notification := &entity.Notification{
			UserID: *input.UserID,
			Kind:   kind,
			Title:  input.Title,
			Body:   input.Body,
		}
		if err := s.notifRepo.Create(ctx, notification); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if input.Role == "" {
		return 0, apperror.NewBadRequestError("Either a user or a role target is required")
	}

	// Role broadcast walks the user list; staff counts stay small enough
	// that paging through is not worth the complexity.
	params := &pagination.PaginationParams{Page: 1, PerPage: 500}
	users, _, err := s.userRepo.List(ctx, params, "")
	if err != nil {
		return 0, err
	}

	notifications := make([]entity.Notification, 0, len(users))
	for i := range users {
		user, err := s.userRepo.GetWithRoles(ctx, users[i].ID)
		if err != nil {
			return 0, err
		}
		if user == nil || !user.HasRole(input.Role) {
			continue
		}
		notifications = append(notifications, entity.Notification{
			UserID: user.ID,
			Kind:   kind,
			Title:  input.Title,
			Body:   input.Body,
		})
	}

	if len(notifications) == 0 {
		return 0, nil
	}
	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, err
	}
	return len(notifications), nil
}

// ListInbox lists a user's notifications, optionally unread only
func (s *NotificationService) ListInbox(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, unreadOnly bool) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, params, unreadOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.Delete(ctx, id, userID)
}
