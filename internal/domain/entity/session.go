package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Snapshot stages for session stock counts
const (
	StockStageOpening = "opening"
	StockStageClosing = "closing"
)

// CashSession represents a cashier's shift at a till terminal, from the
// opening count to the closing reconciliation.
type CashSession struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Terminal        string             `gorm:"size:100;not null;index" json:"terminal"`
	CashierID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Status          enum.SessionStatus `gorm:"default:0;index" json:"status"`
	StartingBalance int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	SalesTotal      int64              `gorm:"default:0" json:"-"` // Running till total in cents
	CountedBalance  *int64             `gorm:"" json:"-"`          // Cash counted at close, in cents
	OrderCount      int                `gorm:"default:0" json:"order_count"`
	StartedAt       time.Time          `gorm:"not null" json:"started_at"`
	ClosedAt        *time.Time         `json:"closed_at,omitempty"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Cashier     User               `gorm:"foreignKey:CashierID" json:"-"`
	StockCounts []SessionStockLine `gorm:"foreignKey:SessionID" json:"stock_counts,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s CashSession) MarshalJSON() ([]byte, error) {
	type Alias CashSession
	var counted *float64
	if s.CountedBalance != nil {
		v := float64(*s.CountedBalance) / 100
		counted = &v
	}
	return json.Marshal(&struct {
		Alias
		StartingBalance float64  `json:"starting_balance"`
		SalesTotal      float64  `json:"sales_total"`
		ExpectedBalance float64  `json:"expected_balance"`
		CountedBalance  *float64 `json:"counted_balance,omitempty"`
	}{
		Alias:           Alias(s),
		StartingBalance: float64(s.StartingBalance) / 100,
		SalesTotal:      float64(s.SalesTotal) / 100,
		ExpectedBalance: float64(s.ExpectedBalance()) / 100,
		CountedBalance:  counted,
	})
}

// BeforeCreate generates a UUID before creating a new session
func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}

// ExpectedBalance returns the cash the drawer should hold: the starting
// balance plus everything sold during the session.
func (s *CashSession) ExpectedBalance() int64 {
	return s.StartingBalance + s.SalesTotal
}

// Variance returns counted minus expected. Zero until a count is recorded.
func (s *CashSession) Variance() int64 {
	if s.CountedBalance == nil {
		return 0
	}
	return *s.CountedBalance - s.ExpectedBalance()
}

// IsOpen reports whether the session is still accepting sales
func (s *CashSession) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}

// SessionStockLine is a point-in-time stock count for one item, taken when a
// session opens or closes. The item name is snapshotted so reconciliation
// reports survive catalog edits.
type SessionStockLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string    `gorm:"size:255;not null" json:"item_name"`
	Stage     string    `gorm:"size:20;not null" json:"stage"` // "opening" or "closing"
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new stock line
func (l *SessionStockLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SessionStockLine model
func (SessionStockLine) TableName() string {
	return "session_stock_lines"
}

// ReconciliationLine compares the opening and closing counts for one item.
// UnitsSold is clamped at zero: a closing count above the opening count means
// a restock happened mid-session, not negative sales.
type ReconciliationLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	Opening  int       `json:"opening"`
	Closing  int       `json:"closing"`
	Sold     int       `json:"sold"`
}

// Reconcile builds reconciliation lines from opening and closing counts,
// matched by item ID. Items present in only one snapshot still appear, with
// the missing side counted as zero.
func Reconcile(opening, closing []SessionStockLine) []ReconciliationLine {
	type pair struct {
		name    string
		opening int
		closing int
	}
	byItem := make(map[uuid.UUID]*pair)
	order := make([]uuid.UUID, 0, len(opening))

	for _, l := range opening {
		byItem[l.ItemID] = &pair{name: l.ItemName, opening: l.Quantity}
		order = append(order, l.ItemID)
	}
	for _, l := range closing {
		p, ok := byItem[l.ItemID]
		if !ok {
			p = &pair{name: l.ItemName}
			byItem[l.ItemID] = p
			order = append(order, l.ItemID)
		}
		p.closing = l.Quantity
	}

	lines := make([]ReconciliationLine, 0, len(order))
	for _, id := range order {
		p := byItem[id]
		sold := p.opening - p.closing
		if sold < 0 {
			sold = 0
		}
		lines = append(lines, ReconciliationLine{
			ItemID:   id,
			ItemName: p.name,
			Opening:  p.opening,
			Closing:  p.closing,
			Sold:     sold,
		})
	}
	return lines
}
