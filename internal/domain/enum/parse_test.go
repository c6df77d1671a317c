package enum

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentMethod
		ok   bool
	}{
		{"cash", PaymentMethodCash, true},
		{"Card", PaymentMethodCard, true},
		{"ACCOUNT", PaymentMethodAccount, true},
		{"cheque", PaymentMethodCash, false},
		{"", PaymentMethodCash, false},
	}

	for _, tt := range tests {
		got, ok := ParsePaymentMethod(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePaymentMethod(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSessionStatus(t *testing.T) {
	if got, ok := ParseSessionStatus("Closed"); !ok || got != SessionStatusClosed {
		t.Errorf("ParseSessionStatus(Closed) = (%v, %v)", got, ok)
	}
	if got, ok := ParseSessionStatus("abandoned"); !ok || got != SessionStatusAbandoned {
		t.Errorf("ParseSessionStatus(abandoned) = (%v, %v)", got, ok)
	}
	if _, ok := ParseSessionStatus("finished"); ok {
		t.Error("unknown status should not parse")
	}
}

func TestParseInvoiceKind(t *testing.T) {
	if got, ok := ParseInvoiceKind("membership_fee"); !ok || got != InvoiceKindMembershipFee {
		t.Errorf("ParseInvoiceKind(membership_fee) = (%v, %v)", got, ok)
	}
	if got, ok := ParseInvoiceKind("Salary"); !ok || got != InvoiceKindSalary {
		t.Errorf("ParseInvoiceKind(Salary) = (%v, %v)", got, ok)
	}
	if _, ok := ParseInvoiceKind("bonus"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestParseItemCategory(t *testing.T) {
	if got, ok := ParseItemCategory("Beverage"); !ok || got != ItemCategoryBeverage {
		t.Errorf("ParseItemCategory(Beverage) = (%v, %v)", got, ok)
	}
	if _, ok := ParseItemCategory("hardware"); ok {
		t.Error("unknown category should not parse")
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	if got, ok := ParseInvoiceStatus("overdue"); !ok || got != InvoiceStatusOverdue {
		t.Errorf("ParseInvoiceStatus(overdue) = (%v, %v)", got, ok)
	}
	if _, ok := ParseInvoiceStatus("void"); ok {
		t.Error("unknown status should not parse")
	}
}
