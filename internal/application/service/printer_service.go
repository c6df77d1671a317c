package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/printer"
)

// PrinterService renders orders and session reports as ESC/POS documents and
// drives the physical printer. Formatting lives here, not in handlers, so the
// same bytes serve USB, network and preview.
type PrinterService struct {
	printer      printer.Printer
	settingsRepo repository.SettingsRepository
	orderRepo    repository.OrderRepository
	sessionRepo  repository.SessionRepository
	width        int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	settingsRepo repository.SettingsRepository,
	orderRepo repository.OrderRepository,
	sessionRepo repository.SessionRepository,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:      p,
		settingsRepo: settingsRepo,
		orderRepo:    orderRepo,
		sessionRepo:  sessionRepo,
		width:        width,
	}
}

// Status reports whether a printer is connected
func (s *PrinterService) Status() map[string]interface{} {
	return map[string]interface{}{
		"connected": s.printer.IsConnected(),
		"width":     s.width,
	}
}

// TestPrint sends a short test page to verify connectivity
func (s *PrinterService) TestPrint(ctx context.Context) error {
	header, _ := s.clubHeader(ctx)
	doc := printer.NewDocument(s.width).
		SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(header.ClubName).
		SetBold(false).
		LineFeed().
		Text("Printer test OK").
		TextF("%s", time.Now().Format("2006-01-02 15:04:05")).
		FeedLines(3).
		PartialCut()
	return s.printer.Print(doc.Bytes())
}

// BuildReceipt composes the printable receipt for an order
func (s *PrinterService) BuildReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	header, footer := s.clubHeader(ctx)

	receipt := &entity.Receipt{
		Header:        header,
		OrderNo:       order.OrderNo,
		Date:          order.CreatedAt.Format("2006-01-02 15:04"),
		Customer:      order.CustomerLabel,
		PaymentMethod: order.PaymentMethod.String(),
		Total:         float64(order.Total) / 100,
		Footer:        footer,
	}
	if receipt.Customer == "" {
		// Rows predating the customer snapshot still print a label.
		receipt.Customer = entity.WalkInCustomer
	}
	for _, line := range order.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: float64(line.UnitPrice) / 100,
			Total:     float64(line.Total) / 100,
		})
	}
	return receipt, nil
}

// FormatReceipt renders a receipt into ESC/POS bytes
func (s *PrinterService) FormatReceipt(receipt *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(receipt.Header.ClubName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if receipt.Header.Address != "" {
		doc.Text(receipt.Header.Address)
	}
	if receipt.Header.Phone != "" {
		doc.Text(receipt.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Receipt", receipt.OrderNo).
		KeyValue("Date", receipt.Date)
	if receipt.Customer != "" {
		doc.KeyValue("Customer", receipt.Customer)
	}
	if receipt.PaymentMethod != "" {
		doc.KeyValue("Payment", receipt.PaymentMethod)
	}
	doc.Separator('-')

	for _, item := range receipt.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("   @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL", fmt.Sprintf("%.2f", receipt.Total)).
		SetBold(false).
		LineFeed()

	if receipt.Footer != "" {
		doc.SetAlign(printer.AlignCenter).Text(receipt.Footer)
	}
	doc.SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// PrintReceipt builds, formats and prints the receipt for an order
func (s *PrinterService) PrintReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(s.FormatReceipt(receipt)); err != nil {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to print receipt")
	}
	return receipt, nil
}

// BuildSessionReport composes the printable close-out report for a session
func (s *PrinterService) BuildSessionReport(ctx context.Context, sessionID uuid.UUID) (*entity.SessionReport, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	opening, err := s.sessionRepo.GetStockLines(ctx, sessionID, entity.StockStageOpening)
	if err != nil {
		return nil, err
	}
	closing, err := s.sessionRepo.GetStockLines(ctx, sessionID, entity.StockStageClosing)
	if err != nil {
		return nil, err
	}

	header, _ := s.clubHeader(ctx)

	report := &entity.SessionReport{
		Header:          header,
		Terminal:        session.Terminal,
		Cashier:         session.Cashier.FullName(),
		StartedAt:       session.StartedAt.Format("2006-01-02 15:04"),
		Status:          session.Status.String(),
		Lines:           entity.Reconcile(opening, closing),
		OrderCount:      session.OrderCount,
		StartingBalance: float64(session.StartingBalance) / 100,
		SalesTotal:      float64(session.SalesTotal) / 100,
		ExpectedBalance: float64(session.ExpectedBalance()) / 100,
	}
	if session.ClosedAt != nil {
		report.ClosedAt = session.ClosedAt.Format("2006-01-02 15:04")
	}
	if session.CountedBalance != nil {
		counted := float64(*session.CountedBalance) / 100
		variance := float64(session.Variance()) / 100
		report.CountedBalance = &counted
		report.Variance = &variance
	}
	if session.Status == enum.SessionStatusAbandoned {
		report.Lines = nil
	}
	return report, nil
}

// FormatSessionReport renders a close-out report into ESC/POS bytes. The
// reconciliation prints as a three column table: opening, closing, sold.
func (s *PrinterService) FormatSessionReport(report *entity.SessionReport) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(report.Header.ClubName).
		Text("SESSION REPORT").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Terminal", report.Terminal).
		KeyValue("Cashier", report.Cashier).
		KeyValue("Opened", report.StartedAt)
	if report.ClosedAt != "" {
		doc.KeyValue("Closed", report.ClosedAt)
	}
	doc.KeyValue("Status", report.Status).
		Separator('-')

	if len(report.Lines) > 0 {
		const colWidth = 5
		doc.SetBold(true).
			TableRow("Item", colWidth, "Open", "Clos", "Sold").
			SetBold(false)
		for _, line := range report.Lines {
			doc.TableRow(line.ItemName, colWidth,
				fmt.Sprintf("%d", line.Opening),
				fmt.Sprintf("%d", line.Closing),
				fmt.Sprintf("%d", line.Sold))
		}
		doc.Separator('-')
	}

	doc.KeyValue("Orders", fmt.Sprintf("%d", report.OrderCount)).
		KeyValue("Opening float", fmt.Sprintf("%.2f", report.StartingBalance)).
		KeyValue("Sales", fmt.Sprintf("%.2f", report.SalesTotal)).
		SetBold(true).
		KeyValue("Expected", fmt.Sprintf("%.2f", report.ExpectedBalance)).
		SetBold(false)
	if report.CountedBalance != nil {
		doc.KeyValue("Counted", fmt.Sprintf("%.2f", *report.CountedBalance))
	}
	if report.Variance != nil {
		doc.KeyValue("Variance", fmt.Sprintf("%+.2f", *report.Variance))
	}

	doc.FeedLines(3).PartialCut()
	return doc.Bytes()
}

// PrintSessionReport builds, formats and prints the close-out report
func (s *PrinterService) PrintSessionReport(ctx context.Context, sessionID uuid.UUID) (*entity.SessionReport, error) {
	report, err := s.BuildSessionReport(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(s.FormatSessionReport(report)); err != nil {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to print session report")
	}
	return report, nil
}

// clubHeader reads the club identity and receipt footer from settings.
// Missing keys fall back to blanks so printing never blocks on setup.
func (s *PrinterService) clubHeader(ctx context.Context) (entity.ReceiptHeader, string) {
	header := entity.ReceiptHeader{ClubName: "Clubhouse"}
	if setting, err := s.settingsRepo.Get(ctx, entity.SettingClubName); err == nil && setting != nil {
		header.ClubName = setting.Value
	}
	if setting, err := s.settingsRepo.Get(ctx, entity.SettingClubAddress); err == nil && setting != nil {
		header.Address = setting.Value
	}
	if setting, err := s.settingsRepo.Get(ctx, entity.SettingClubPhone); err == nil && setting != nil {
		header.Phone = setting.Value
	}
	footer := ""
	if setting, err := s.settingsRepo.Get(ctx, entity.SettingReceiptFooter); err == nil && setting != nil {
		footer = setting.Value
	}
	return header, footer
}
