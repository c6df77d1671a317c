package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member represents a club member
type Member struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	MemberNo  string         `gorm:"size:50;unique;not null" json:"member_no"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	LastName  string         `gorm:"size:255;not null" json:"last_name"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	JoinedAt  time.Time      `gorm:"type:date;not null" json:"joined_at"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders   []Order   `gorm:"foreignKey:MemberID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:MemberID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new member
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Member model
func (Member) TableName() string {
	return "members"
}

// FullName returns the member's display name
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
