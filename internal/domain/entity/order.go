package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"gorm.io/gorm"
)

// WalkInCustomer labels a sale rung without a member reference
const WalkInCustomer = "Walk-in Customer"

// Order represents a completed cafeteria sale. CustomerLabel is a snapshot
// taken at sale time, like the line items, so receipts survive member edits.
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo       string             `gorm:"size:100;unique;not null" json:"order_no"`
	CashierID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	SessionID     *uuid.UUID         `gorm:"type:uuid;index" json:"session_id,omitempty"`
	MemberID      *uuid.UUID         `gorm:"type:uuid;index" json:"member_id,omitempty"`
	CustomerLabel string             `gorm:"size:255;not null;default:'Walk-in Customer'" json:"customer_label"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	TotalItems    int                `gorm:"default:0" json:"total_items"`
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Cashier User        `gorm:"foreignKey:CashierID" json:"-"`
	Member  *Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Lines   []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderLine represents a line item in an order. Item name and unit price are
// snapshots taken at sale time so the receipt stays stable when the catalog
// changes later.
type OrderLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string         `gorm:"size:255;not null" json:"item_name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ol OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(ol),
		UnitPrice: float64(ol.UnitPrice) / 100,
		Total:     float64(ol.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order line
func (ol *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if ol.ID == uuid.Nil {
		ol.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// Counter backs sequential document numbers (order numbers, invoice numbers).
// Values are advanced atomically with an upsert so concurrent requests never
// observe the same sequence twice.
type Counter struct {
	Name  string `gorm:"size:100;primary_key"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
