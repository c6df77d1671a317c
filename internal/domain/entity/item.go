package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Item represents a cafeteria item for sale
type Item struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Category       enum.ItemCategory `gorm:"default:0" json:"category"`
	Price          int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Stock          int               `gorm:"default:0" json:"stock"`
	StockThreshold int               `gorm:"default:10" json:"stock_threshold"`
	Active         bool              `gorm:"default:true" json:"active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: float64(i.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// GetPriceDecimal returns the price as a decimal (for display)
func (i *Item) GetPriceDecimal() float64 {
	return float64(i.Price) / 100
}

// SetPriceFromDecimal sets the price from a decimal value
func (i *Item) SetPriceFromDecimal(price float64) {
	i.Price = int64(price*100 + 0.5)
}

// IsLowStock reports whether the item is at or below its restock threshold
func (i *Item) IsLowStock() bool {
	return i.Stock <= i.StockThreshold
}
