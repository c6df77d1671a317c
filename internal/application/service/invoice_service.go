package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/email"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

// Counter name for sequential invoice numbers
const invoiceCounter = "invoice_no"

// InvoiceService handles membership fee and salary invoicing
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	memberRepo   repository.MemberRepository
	userRepo     repository.UserRepository
	counterRepo  repository.CounterRepository
	notifRepo    repository.NotificationRepository
	emailService *email.EmailService
	appName      string
	portalURL    string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	counterRepo repository.CounterRepository,
	notifRepo repository.NotificationRepository,
	emailService *email.EmailService,
	appName, portalURL string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		counterRepo:  counterRepo,
		notifRepo:    notifRepo,
		emailService: emailService,
		appName:      appName,
		portalURL:    portalURL,
	}
}

// IssueInvoiceInput represents the issue invoice input. Exactly one of
// MemberID and UserID must be set, matching the invoice kind.
type IssueInvoiceInput struct {
	Kind        enum.InvoiceKind
	MemberID    *uuid.UUID
	UserID      *uuid.UUID
	Description string
	Amount      float64
	DueDate     time.Time
}

// IssueInvoice creates a single invoice and sends the issued email best-effort
func (s *InvoiceService) IssueInvoice(ctx context.Context, input *IssueInvoiceInput) (*entity.Invoice, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Description is required")
	}

	var recipientName, recipientEmail string
	switch input.Kind {
	case enum.InvoiceKindMembershipFee:
		if input.MemberID == nil {
			return nil, apperror.NewBadRequestError("Membership fee invoices require a member")
		}
		member, err := s.memberRepo.GetByID(ctx, *input.MemberID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, apperror.NewNotFoundError("Member")
		}
		recipientName = member.FullName()
		if member.Email != nil {
			recipientEmail = *member.Email
		}
	case enum.InvoiceKindSalary:
		if input.UserID == nil {
			return nil, apperror.NewBadRequestError("Salary invoices require a staff user")
		}
		user, err := s.userRepo.GetByID(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NewNotFoundError("User")
		}
		recipientName = user.FullName()
		recipientEmail = user.Email
	default:
		return nil, apperror.NewBadRequestError("Unknown invoice kind")
	}

	seq, err := s.counterRepo.Next(ctx, invoiceCounter)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		InvoiceNo:   utils.FormatInvoiceNo(seq),
		Kind:        input.Kind,
		Status:      enum.InvoiceStatusPending,
		MemberID:    input.MemberID,
		UserID:      input.UserID,
		Description: input.Description,
		Amount:      int64(input.Amount*100 + 0.5),
		IssuedAt:    time.Now(),
		DueDate:     input.DueDate,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.notifyIssued(ctx, invoice, recipientName, recipientEmail)

	return invoice, nil
}

// RunMembershipFeeBatch issues a membership fee invoice to every active
// member. Returns the number of invoices created.
func (s *InvoiceService) RunMembershipFeeBatch(ctx context.Context, description string, amount float64, dueDate time.Time) (int, error) {
	if amount <= 0 {
		return 0, apperror.NewBadRequestError("Amount must be positive")
	}

	members, err := s.memberRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}

	cents := int64(amount*100 + 0.5)
	now := time.Now()
	invoices := make([]entity.Invoice, 0, len(members))
	for i := range members {
		seq, err := s.counterRepo.Next(ctx, invoiceCounter)
		if err != nil {
			return 0, err
		}
		memberID := members[i].ID
		invoices = append(invoices, entity.Invoice{
			InvoiceNo:   utils.FormatInvoiceNo(seq),
			Kind:        enum.InvoiceKindMembershipFee,
			Status:      enum.InvoiceStatusPending,
			MemberID:    &memberID,
			Description: description,
			Amount:      cents,
			IssuedAt:    now,
			DueDate:     dueDate,
		})
	}

	if err := s.invoiceRepo.CreateBatch(ctx, invoices); err != nil {
		return 0, err
	}

	for i := range invoices {
		member := members[i]
		recipientEmail := ""
		if member.Email != nil {
			recipientEmail = *member.Email
		}
		s.notifyIssued(ctx, &invoices[i], member.FullName(), recipientEmail)
	}

	return len(invoices), nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// MarkPaid settles a pending or overdue invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return nil, apperror.NewConflictError("Invoice is already paid")
	}
	if invoice.Status == enum.InvoiceStatusCancelled {
		return nil, apperror.NewConflictError("Invoice is cancelled")
	}

	now := time.Now()
	invoice.Status = enum.InvoiceStatusPaid
	invoice.PaidAt = &now

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Cancel voids a pending or overdue invoice
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return nil, apperror.NewConflictError("Paid invoices cannot be cancelled")
	}

	invoice.Status = enum.InvoiceStatusCancelled
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// SweepOverdue flips pending invoices past their due date to overdue.
// Meant to run daily. Returns the number of invoices flipped.
func (s *InvoiceService) SweepOverdue(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, time.Now())
}

// notifyIssued sends the invoice issued email and in-app notification.
// Both are best-effort; the invoice stands regardless.
func (s *InvoiceService) notifyIssued(ctx context.Context, invoice *entity.Invoice, recipientName, recipientEmail string) {
	if recipientEmail != "" {
		data := email.InvoiceEmailData{
			RecipientName: recipientName,
			InvoiceNo:     invoice.InvoiceNo,
			Description:   invoice.Description,
			Amount:        utils.FormatAmount(invoice.Amount),
			DueDate:       invoice.DueDate.Format("2 January 2006"),
			AppName:       s.appName,
			PortalURL:     s.portalURL,
		}
		if err := s.emailService.SendInvoiceIssuedEmail(recipientEmail, data); err != nil {
			log.Printf("Warning: failed to send invoice email for %s: %v", invoice.InvoiceNo, err)
		}
	}

	if invoice.UserID != nil {
		notification := &entity.Notification{
			UserID: *invoice.UserID,
			Kind:   entity.NotificationKindInvoiceIssued,
			Title:  "Invoice issued",
			Body:   fmt.Sprintf("Invoice %s for %s is due %s.", invoice.InvoiceNo, utils.FormatAmount(invoice.Amount), invoice.DueDate.Format("2 January 2006")),
		}
		if err := s.notifRepo.Create(ctx, notification); err != nil {
			log.Printf("Warning: failed to create invoice notification for %s: %v", invoice.InvoiceNo, err)
		}
	}
}
