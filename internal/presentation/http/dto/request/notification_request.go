package request

import "github.com/google/uuid"

// CreateNotificationRequest represents a notification creation request.
// Targets either a single user or every holder of a role.
type CreateNotificationRequest struct {
	UserID *uuid.UUID `json:"user_id"`
	Role   string     `json:"role" binding:"omitempty,oneof=admin treasurer cashier staff"`
	Kind   string     `json:"kind" binding:"omitempty,max=50"`
	Title  string     `json:"title" binding:"required,max=255"`
	Body   string     `json:"body"`
}
