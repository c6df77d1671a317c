package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TillCartLine is one pending cart line in the saved till state
type TillCartLine struct {
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"` // cents
}

// TillState is the recoverable state of a till terminal: the open session
// reference plus any cart that had not been rung through when the terminal
// went away. It lets a cashier resume mid-shift after a crash or page reload.
type TillState struct {
	Terminal  string         `json:"terminal"`
	SessionID uuid.UUID      `json:"session_id"`
	Cart      []TillCartLine `json:"cart,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TillStateStore persists till state keyed by terminal. Implementations must
// treat Load of a missing terminal as (nil, nil), not an error.
type TillStateStore interface {
	Save(ctx context.Context, state *TillState) error
	Load(ctx context.Context, terminal string) (*TillState, error)
	Clear(ctx context.Context, terminal string) error
}
