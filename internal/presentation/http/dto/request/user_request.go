package request

// CreateUserRequest represents a staff account creation request
type CreateUserRequest struct {
	FirstName string   `json:"first_name" binding:"required,min=2,max=255"`
	LastName  string   `json:"last_name" binding:"required,min=2,max=255"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8"`
	Roles     []string `json:"roles" binding:"omitempty,dive,oneof=admin treasurer cashier staff"`
}

// UpdateUserRequest represents an admin user update request
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=255"`
	Active    *bool   `json:"active"`
}

// AssignRoleRequest represents a role grant or revoke request
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin treasurer cashier staff"`
}
