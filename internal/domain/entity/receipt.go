package entity

// ReceiptHeader holds the club header printed at the top of a receipt.
type ReceiptHeader struct {
	ClubName string `json:"club_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable sale receipt.
// It is NOT a database entity; it is composed from order data at print time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	OrderNo       string        `json:"order_no"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	Terminal      string        `json:"terminal,omitempty"`
	Customer      string        `json:"customer"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
	Footer        string        `json:"footer,omitempty"`
}

// SessionReport is a value object for the printable end-of-shift
// reconciliation report.
type SessionReport struct {
	Header          ReceiptHeader        `json:"header"`
	Terminal        string               `json:"terminal"`
	Cashier         string               `json:"cashier"`
	StartedAt       string               `json:"started_at"`
	ClosedAt        string               `json:"closed_at,omitempty"`
	Status          string               `json:"status"`
	Lines           []ReconciliationLine `json:"lines"`
	OrderCount      int                  `json:"order_count"`
	StartingBalance float64              `json:"starting_balance"`
	SalesTotal      float64              `json:"sales_total"`
	ExpectedBalance float64              `json:"expected_balance"`
	CountedBalance  *float64             `json:"counted_balance,omitempty"`
	Variance        *float64             `json:"variance,omitempty"`
}
