package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

// TillService manages the cash session lifecycle at a till terminal: PIN-gated
// start, running sale totals, crash recovery, and end-of-shift reconciliation.
type TillService struct {
	sessionRepo  repository.SessionRepository
	itemRepo     repository.ItemRepository
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	notifRepo    repository.NotificationRepository
	stateStore   repository.TillStateStore
}

// NewTillService creates a new till service
func NewTillService(
	sessionRepo repository.SessionRepository,
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	notifRepo repository.NotificationRepository,
	stateStore repository.TillStateStore,
) *TillService {
	return &TillService{
		sessionRepo:  sessionRepo,
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		notifRepo:    notifRepo,
		stateStore:   stateStore,
	}
}

// StartSessionInput represents the start session input
type StartSessionInput struct {
	CashierID       uuid.UUID
	Terminal        string
	Pin             string
	StartingBalance float64
}

// StartSession opens a cash session: verifies the cashier PIN against the
// settings store, rejects a second open session on the same terminal, and
// captures the opening inventory snapshot by value.
func (s *TillService) StartSession(ctx context.Context, input *StartSessionInput) (*entity.CashSession, error) {
	if input.Terminal == "" {
		return nil, apperror.NewBadRequestError("Terminal is required")
	}
	if input.StartingBalance < 0 {
		return nil, apperror.ErrInvalidBalance
	}

	if err := s.verifyPin(ctx, input.Pin); err != nil {
		return nil, err
	}

	existing, err := s.sessionRepo.GetOpenByTerminal(ctx, input.Terminal)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrSessionAlreadyOpen
	}

	session := &entity.CashSession{
		Terminal:        input.Terminal,
		CashierID:       input.CashierID,
		Status:          enum.SessionStatusOpen,
		StartingBalance: int64(input.StartingBalance*100 + 0.5),
		StartedAt:       time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	// Opening snapshot: current stock of every active item, frozen by value
	// so later catalog edits cannot rewrite the shift's starting point.
	items, err := s.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.AddStockLines(ctx, snapshotLines(session.ID, entity.StockStageOpening, items)); err != nil {
		return nil, err
	}

	if err := s.stateStore.Save(ctx, &repository.TillState{
		Terminal:  input.Terminal,
		SessionID: session.ID,
	}); err != nil {
		// The session exists either way; recovery just falls back to lookup
		log.Printf("Warning: failed to save till state for %s: %v", input.Terminal, err)
	}

	return session, nil
}

// RecordSale adds a sale amount to the session's running total. The increment
// happens in the database guarded by the open status, so concurrent sales and
// a racing close cannot corrupt the total.
func (s *TillService) RecordSale(ctx context.Context, sessionID uuid.UUID, amount float64) (*entity.CashSession, error) {
	if amount < 0 {
		return nil, apperror.NewBadRequestError("Sale amount cannot be negative")
	}

	ok, err := s.sessionRepo.RecordSale(ctx, sessionID, int64(amount*100+0.5))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrSessionNotOpen
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// ResumeOutput represents the resumable till state for a terminal
type ResumeOutput struct {
	Session *entity.CashSession       `json:"session"`
	Cart    []repository.TillCartLine `json:"cart,omitempty"`
}

// Resume returns the open session and saved cart for a terminal so a till
// that crashed or reloaded can pick up mid-shift without a new PIN prompt.
// Returns nil when the terminal has no open session.
func (s *TillService) Resume(ctx context.Context, terminal string) (*ResumeOutput, error) {
	session, err := s.sessionRepo.GetOpenByTerminal(ctx, terminal)
	if err != nil {
		return nil, err
	}
	if session == nil {
		// Stale state for a session that is gone gets cleaned up here
		_ = s.stateStore.Clear(ctx, terminal)
		return nil, nil
	}

	out := &ResumeOutput{Session: session}

	state, err := s.stateStore.Load(ctx, terminal)
	if err != nil {
		log.Printf("Warning: failed to load till state for %s: %v", terminal, err)
		return out, nil
	}
	if state != nil && state.SessionID == session.ID {
		out.Cart = state.Cart
	}
	return out, nil
}

// SaveCart persists the in-progress cart for a terminal so it survives a
// reload. The terminal must have an open session.
func (s *TillService) SaveCart(ctx context.Context, terminal string, cart []repository.TillCartLine) error {
	session, err := s.sessionRepo.GetOpenByTerminal(ctx, terminal)
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.ErrSessionNotOpen
	}

	return s.stateStore.Save(ctx, &repository.TillState{
		Terminal:  terminal,
		SessionID: session.ID,
		Cart:      cart,
	})
}

// CloseSessionInput represents the close session input
type CloseSessionInput struct {
	SessionID      uuid.UUID
	CountedBalance *float64
	Notes          *string
}

// SessionSummary is the immutable record returned when a session closes
type SessionSummary struct {
	Session        *entity.CashSession         `json:"session"`
	Reconciliation []entity.ReconciliationLine `json:"reconciliation"`
	AttachedOrders int64                       `json:"attached_orders"`
	Warning        string                      `json:"warning,omitempty"`
}

// CloseSession ends a shift: captures the closing snapshot, reconciles it
// against the opening counts, transitions the session to closed, and
// best-effort attaches stray orders from the shift window. The status
// transition is conditional so a double close fails cleanly and a failed
// close leaves the session open for retry.
func (s *TillService) CloseSession(ctx context.Context, input *CloseSessionInput) (*SessionSummary, error) {
	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if !session.IsOpen() {
		return nil, apperror.ErrSessionNotOpen
	}

	// Closing snapshot, taken before the status flips so a retried close
	// never loses the counts. Any lines left by an earlier failed close are
	// dropped first so the retry does not record the counts twice.
	items, err := s.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.DeleteStockLines(ctx, session.ID, entity.StockStageClosing); err != nil {
		return nil, err
	}
	closing := snapshotLines(session.ID, entity.StockStageClosing, items)
	if err := s.sessionRepo.AddStockLines(ctx, closing); err != nil {
		return nil, err
	}

	var countedCents *int64
	if input.CountedBalance != nil {
		v := int64(*input.CountedBalance*100 + 0.5)
		countedCents = &v
	}

	closedAt := time.Now()
	ok, err := s.sessionRepo.CloseIfOpen(ctx, session.ID, enum.SessionStatusClosed, closedAt, countedCents, input.Notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrSessionNotOpen
	}

	summary := &SessionSummary{}

	// Best-effort: stamp the session onto orders from this cashier inside
	// the shift window that never got a session reference.
	attached, err := s.orderRepo.AttachSession(ctx, session.ID, session.CashierID, session.StartedAt, closedAt)
	if err != nil {
		log.Printf("Warning: failed to attach orders to session %s: %v", session.ID, err)
		summary.Warning = "Some receipts could not be linked to this session"
	}
	summary.AttachedOrders = attached

	opening, err := s.sessionRepo.GetStockLines(ctx, session.ID, entity.StockStageOpening)
	if err != nil {
		return nil, err
	}
	summary.Reconciliation = entity.Reconcile(opening, closing)

	if err := s.stateStore.Clear(ctx, session.Terminal); err != nil {
		log.Printf("Warning: failed to clear till state for %s: %v", session.Terminal, err)
	}

	session, err = s.sessionRepo.GetByID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	summary.Session = session

	notification := &entity.Notification{
		UserID: session.CashierID,
		Kind:   entity.NotificationKindSessionClosed,
		Title:  "Cash session closed",
		Body:   "Session on terminal " + session.Terminal + " was closed with total sales " + utils.FormatAmount(session.SalesTotal) + ".",
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		log.Printf("Warning: failed to create session close notification: %v", err)
	}

	return summary, nil
}

// AbandonSession closes a crashed or walked-away session without a closing
// count. Admin only; the session is flagged abandoned and carries no
// reconciliation.
func (s *TillService) AbandonSession(ctx context.Context, sessionID uuid.UUID, notes *string) (*entity.CashSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	ok, err := s.sessionRepo.CloseIfOpen(ctx, sessionID, enum.SessionStatusAbandoned, time.Now(), nil, notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrSessionNotOpen
	}

	if err := s.stateStore.Clear(ctx, session.Terminal); err != nil {
		log.Printf("Warning: failed to clear till state for %s: %v", session.Terminal, err)
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// verifyPin checks the supplied PIN against the bcrypt hash in settings
func (s *TillService) verifyPin(ctx context.Context, pin string) error {
	setting, err := s.settingsRepo.Get(ctx, entity.SettingCashierPin)
	if err != nil {
		return err
	}
	if setting == nil || setting.Value == "" {
		return apperror.ErrPinNotConfigured
	}
	if !utils.CheckPasswordHash(pin, setting.Value) {
		return apperror.ErrInvalidPin
	}
	return nil
}

// snapshotLines freezes item stock into session stock lines for a stage
func snapshotLines(sessionID uuid.UUID, stage string, items []entity.Item) []entity.SessionStockLine {
	lines := make([]entity.SessionStockLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, entity.SessionStockLine{
			SessionID: sessionID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Stage:     stage,
			Quantity:  item.Stock,
		})
	}
	return lines
}
