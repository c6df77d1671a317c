package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceKind distinguishes membership fee invoices from salary invoices
type InvoiceKind int

const (
	InvoiceKindMembershipFee InvoiceKind = 0
	InvoiceKindSalary        InvoiceKind = 1
)

func (k InvoiceKind) String() string {
	return [...]string{"MembershipFee", "Salary"}[k]
}

func (k InvoiceKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *InvoiceKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = InvoiceKind(i)
		return nil
	}
	switch str {
	case "MembershipFee":
		*k = InvoiceKindMembershipFee
	case "Salary":
		*k = InvoiceKindSalary
	}
	return nil
}

func (k InvoiceKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *InvoiceKind) Scan(value interface{}) error {
	if value == nil {
		*k = InvoiceKindMembershipFee
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = InvoiceKind(v)
	case int:
		*k = InvoiceKind(v)
	}
	return nil
}

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending   InvoiceStatus = 0
	InvoiceStatusPaid      InvoiceStatus = 1
	InvoiceStatusOverdue   InvoiceStatus = 2
	InvoiceStatusCancelled InvoiceStatus = 3
)

func (s InvoiceStatus) String() string {
	return [...]string{"Pending", "Paid", "Overdue", "Cancelled"}[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = InvoiceStatusPending
	case "Paid":
		*s = InvoiceStatusPaid
	case "Overdue":
		*s = InvoiceStatusOverdue
	case "Cancelled":
		*s = InvoiceStatusCancelled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
