package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a billing document issued by the club: membership fee
// invoices go to members, salary invoices go to staff users.
type Invoice struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo   string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	Kind        enum.InvoiceKind   `gorm:"default:0" json:"kind"`
	Status      enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	MemberID    *uuid.UUID         `gorm:"type:uuid;index" json:"member_id,omitempty"`
	UserID      *uuid.UUID         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Description string             `gorm:"size:255;not null" json:"description"`
	Amount      int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IssuedAt    time.Time          `gorm:"type:date;not null" json:"issued_at"`
	DueDate     time.Time          `gorm:"type:date;not null" json:"due_date"`
	PaidAt      *time.Time         `json:"paid_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(i),
		Amount: float64(i.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsOverdue reports whether an unpaid invoice is past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == enum.InvoiceStatusPending && now.After(i.DueDate)
}
