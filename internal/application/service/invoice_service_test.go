package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/pkg/email"
)

type invoiceFixture struct {
	service     *InvoiceService
	invoiceRepo *fakeInvoiceRepo
	memberRepo  *fakeMemberRepo
	userRepo    *fakeUserRepo
	notifs      *fakeNotificationRepo
}

func newInvoiceFixture(members ...*entity.Member) *invoiceFixture {
	f := &invoiceFixture{
		invoiceRepo: newFakeInvoiceRepo(),
		memberRepo:  newFakeMemberRepo(members...),
		userRepo:    newFakeUserRepo(),
		notifs:      newFakeNotificationRepo(),
	}
	f.service = NewInvoiceService(
		f.invoiceRepo,
		f.memberRepo,
		f.userRepo,
		newFakeCounterRepo(),
		f.notifs,
		email.NewEmailService(email.EmailConfig{}),
		"Clubhouse",
		"",
	)
	return f
}

func TestIssueInvoiceMembershipFee(t *testing.T) {
	member := &entity.Member{MemberNo: "MBR-00001", FirstName: "Ada", LastName: "Mwangi", Active: true}
	f := newInvoiceFixture(member)

	invoice, err := f.service.IssueInvoice(context.Background(), &IssueInvoiceInput{
		Kind:        enum.InvoiceKindMembershipFee,
		MemberID:    &member.ID,
		Description: "Annual membership 2026",
		Amount:      120,
		DueDate:     time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("issue invoice: %v", err)
	}

	if invoice.InvoiceNo != "INV-000001" {
		t.Errorf("expected INV-000001, got %s", invoice.InvoiceNo)
	}
	if invoice.Amount != 12000 {
		t.Errorf("expected amount 12000 cents, got %d", invoice.Amount)
	}
	if invoice.Status != enum.InvoiceStatusPending {
		t.Errorf("expected pending status, got %v", invoice.Status)
	}
}

func TestIssueInvoiceValidation(t *testing.T) {
	f := newInvoiceFixture()

	memberID := uuid.New()
	cases := []struct {
		name  string
		input IssueInvoiceInput
	}{
		{"zero amount", IssueInvoiceInput{Kind: enum.InvoiceKindMembershipFee, MemberID: &memberID, Description: "Fee"}},
		{"missing description", IssueInvoiceInput{Kind: enum.InvoiceKindMembershipFee, MemberID: &memberID, Amount: 10}},
		{"membership fee without member", IssueInvoiceInput{Kind: enum.InvoiceKindMembershipFee, Description: "Fee", Amount: 10}},
		{"salary without user", IssueInvoiceInput{Kind: enum.InvoiceKindSalary, Description: "Salary", Amount: 10}},
		{"unknown member", IssueInvoiceInput{Kind: enum.InvoiceKindMembershipFee, MemberID: &memberID, Description: "Fee", Amount: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.service.IssueInvoice(context.Background(), &tc.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIssueSalaryInvoiceNotifiesUser(t *testing.T) {
	staff := &entity.User{FirstName: "Jane", LastName: "Kariuki"}
	f := newInvoiceFixture()
	_ = f.userRepo.Create(context.Background(), staff)

	invoice, err := f.service.IssueInvoice(context.Background(), &IssueInvoiceInput{
		Kind:        enum.InvoiceKindSalary,
		UserID:      &staff.ID,
		Description: "August salary",
		Amount:      500,
		DueDate:     time.Now().AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("issue invoice: %v", err)
	}
	if invoice.Kind != enum.InvoiceKindSalary {
		t.Errorf("expected salary kind, got %v", invoice.Kind)
	}

	count, _ := f.notifs.CountUnread(context.Background(), staff.ID)
	if count != 1 {
		t.Errorf("expected 1 in-app notification for the staff user, got %d", count)
	}
}

func TestRunMembershipFeeBatch(t *testing.T) {
	f := newInvoiceFixture(
		&entity.Member{MemberNo: "MBR-00001", FirstName: "Ada", LastName: "Mwangi", Active: true},
		&entity.Member{MemberNo: "MBR-00002", FirstName: "Ben", LastName: "Otieno", Active: true},
		&entity.Member{MemberNo: "MBR-00003", FirstName: "Eve", LastName: "Njeri", Active: false},
	)

	count, err := f.service.RunMembershipFeeBatch(context.Background(), "Annual membership 2026", 120, time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("fee batch: %v", err)
	}

	// Inactive members are skipped.
	if count != 2 {
		t.Errorf("expected 2 invoices, got %d", count)
	}
	if len(f.invoiceRepo.invoices) != 2 {
		t.Errorf("expected 2 stored invoices, got %d", len(f.invoiceRepo.invoices))
	}
}

func TestRunMembershipFeeBatchNoMembers(t *testing.T) {
	f := newInvoiceFixture()

	count, err := f.service.RunMembershipFeeBatch(context.Background(), "Fee", 120, time.Now())
	if err != nil {
		t.Fatalf("fee batch: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 invoices, got %d", count)
	}
}

func TestMarkPaidTransitions(t *testing.T) {
	member := &entity.Member{MemberNo: "MBR-00001", FirstName: "Ada", LastName: "Mwangi", Active: true}
	f := newInvoiceFixture(member)

	invoice, err := f.service.IssueInvoice(context.Background(), &IssueInvoiceInput{
		Kind:        enum.InvoiceKindMembershipFee,
		MemberID:    &member.ID,
		Description: "Fee",
		Amount:      50,
		DueDate:     time.Now(),
	})
	if err != nil {
		t.Fatalf("issue invoice: %v", err)
	}

	paid, err := f.service.MarkPaid(context.Background(), invoice.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != enum.InvoiceStatusPaid {
		t.Errorf("expected paid status, got %v", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Error("expected PaidAt to be stamped")
	}

	if _, err := f.service.MarkPaid(context.Background(), invoice.ID); err == nil {
		t.Error("expected conflict on double pay")
	}
	if _, err := f.service.Cancel(context.Background(), invoice.ID); err == nil {
		t.Error("paid invoices must not be cancellable")
	}
}

func TestCancelInvoice(t *testing.T) {
	member := &entity.Member{MemberNo: "MBR-00001", FirstName: "Ada", LastName: "Mwangi", Active: true}
	f := newInvoiceFixture(member)

	invoice, err := f.service.IssueInvoice(context.Background(), &IssueInvoiceInput{
		Kind:        enum.InvoiceKindMembershipFee,
		MemberID:    &member.ID,
		Description: "Fee",
		Amount:      50,
		DueDate:     time.Now(),
	})
	if err != nil {
		t.Fatalf("issue invoice: %v", err)
	}

	cancelled, err := f.service.Cancel(context.Background(), invoice.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != enum.InvoiceStatusCancelled {
		t.Errorf("expected cancelled status, got %v", cancelled.Status)
	}

	if _, err := f.service.MarkPaid(context.Background(), invoice.ID); err == nil {
		t.Error("cancelled invoices must not be payable")
	}
}

func TestSweepOverdue(t *testing.T) {
	member := &entity.Member{MemberNo: "MBR-00001", FirstName: "Ada", LastName: "Mwangi", Active: true}
	f := newInvoiceFixture(member)

	past := time.Now().AddDate(0, 0, -10)
	future := time.Now().AddDate(0, 1, 0)
	for _, due := range []time.Time{past, future} {
		if _, err := f.service.IssueInvoice(context.Background(), &IssueInvoiceInput{
			Kind:        enum.InvoiceKindMembershipFee,
			MemberID:    &member.ID,
			Description: "Fee",
			Amount:      50,
			DueDate:     due,
		}); err != nil {
			t.Fatalf("issue invoice: %v", err)
		}
	}

	flipped, err := f.service.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if flipped != 1 {
		t.Errorf("expected 1 overdue invoice, got %d", flipped)
	}
}
