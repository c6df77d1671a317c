package enum

import "strings"

// ParseItemCategory converts a query/body string to an ItemCategory.
// Matching is case-insensitive; the second return reports success.
func ParseItemCategory(s string) (ItemCategory, bool) {
	switch strings.ToLower(s) {
	case "food":
		return ItemCategoryFood, true
	case "beverage":
		return ItemCategoryBeverage, true
	case "snack":
		return ItemCategorySnack, true
	case "other":
		return ItemCategoryOther, true
	}
	return ItemCategoryOther, false
}

// ParsePaymentMethod converts a query/body string to a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(s) {
	case "cash":
		return PaymentMethodCash, true
	case "card":
		return PaymentMethodCard, true
	case "account":
		return PaymentMethodAccount, true
	}
	return PaymentMethodCash, false
}

// ParseSessionStatus converts a query string to a SessionStatus
func ParseSessionStatus(s string) (SessionStatus, bool) {
	switch strings.ToLower(s) {
	case "open":
		return SessionStatusOpen, true
	case "closed":
		return SessionStatusClosed, true
	case "abandoned":
		return SessionStatusAbandoned, true
	}
	return SessionStatusOpen, false
}

// ParseInvoiceKind converts a query/body string to an InvoiceKind
func ParseInvoiceKind(s string) (InvoiceKind, bool) {
	switch strings.ToLower(s) {
	case "membership_fee", "membershipfee":
		return InvoiceKindMembershipFee, true
	case "salary":
		return InvoiceKindSalary, true
	}
	return InvoiceKindMembershipFee, false
}

// ParseInvoiceStatus converts a query string to an InvoiceStatus
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch strings.ToLower(s) {
	case "pending":
		return InvoiceStatusPending, true
	case "paid":
		return InvoiceStatusPaid, true
	case "overdue":
		return InvoiceStatusOverdue, true
	case "cancelled":
		return InvoiceStatusCancelled, true
	}
	return InvoiceStatusPending, false
}
