package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatOrderNo formats a counter value as a zero-padded order number
// e.g. 42 -> "ORD-000042"
func FormatOrderNo(seq int64) string {
	return fmt.Sprintf("ORD-%06d", seq)
}

// FormatInvoiceNo formats a counter value as a zero-padded invoice number
// e.g. 7 -> "INV-000007"
func FormatInvoiceNo(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

// FormatMemberNo formats a counter value as a zero-padded member number
// e.g. 12 -> "MBR-00012"
func FormatMemberNo(seq int64) string {
	return fmt.Sprintf("MBR-%05d", seq)
}

// GenerateReferenceNo generates a unique reference number with the given prefix
func GenerateReferenceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// FormatAmount renders an amount in cents as a decimal string, e.g. 1050 -> "10.50".
// Negative amounts keep a single leading sign.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
