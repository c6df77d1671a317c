package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/enum"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/pagination"
)

// In-memory fakes shared by the service tests.

type fakeSessionRepo struct {
	sessions   map[uuid.UUID]*entity.CashSession
	stockLines []entity.SessionStockLine
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.CashSession)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.CashSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) GetWithStockCounts(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSessionRepo) GetOpenByTerminal(ctx context.Context, terminal string) (*entity.CashSession, error) {
	for _, session := range r.sessions {
		if session.Terminal == terminal && session.Status == enum.SessionStatusOpen {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.CashSession) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) List(ctx context.Context, params *repository.SessionFilterParams) ([]entity.CashSession, int64, error) {
	var out []entity.CashSession
	for _, session := range r.sessions {
		out = append(out, *session)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSessionRepo) RecordSale(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	session, ok := r.sessions[id]
	if !ok || session.Status != enum.SessionStatusOpen {
		return false, nil
	}
	session.SalesTotal += amount
	session.OrderCount++
	return true, nil
}

func (r *fakeSessionRepo) CloseIfOpen(ctx context.Context, id uuid.UUID, status enum.SessionStatus, closedAt time.Time, countedBalance *int64, notes *string) (bool, error) {
	session, ok := r.sessions[id]
	if !ok || session.Status != enum.SessionStatusOpen {
		return false, nil
	}
	session.Status = status
	session.ClosedAt = &closedAt
	session.CountedBalance = countedBalance
	session.Notes = notes
	return true, nil
}

func (r *fakeSessionRepo) AddStockLines(ctx context.Context, lines []entity.SessionStockLine) error {
	r.stockLines = append(r.stockLines, lines...)
	return nil
}

func (r *fakeSessionRepo) DeleteStockLines(ctx context.Context, sessionID uuid.UUID, stage string) error {
	kept := r.stockLines[:0]
	for _, line := range r.stockLines {
		if line.SessionID == sessionID && line.Stage == stage {
			continue
		}
		kept = append(kept, line)
	}
	r.stockLines = kept
	return nil
}

func (r *fakeSessionRepo) GetStockLines(ctx context.Context, sessionID uuid.UUID, stage string) ([]entity.SessionStockLine, error) {
	var out []entity.SessionStockLine
	for _, line := range r.stockLines {
		if line.SessionID == sessionID && line.Stage == stage {
			out = append(out, line)
		}
	}
	return out, nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*entity.Item
	// onGet runs after GetByID takes its copy, letting tests interleave a
	// concurrent stock change between a read and the following write.
	onGet func()
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[uuid.UUID]*entity.Item)}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) CreateBatch(ctx context.Context, items []entity.Item) error {
	for i := range items {
		if err := r.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	if r.onGet != nil {
		r.onGet()
	}
	return &copied, nil
}

func (r *fakeItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var out []entity.Item
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

// Update mirrors the repository contract: catalog columns only, the stored
// stock count survives untouched.
func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	if existing, ok := r.items[item.ID]; ok {
		item.Stock = existing.Stock
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	var out []entity.Item
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) ListActive(ctx context.Context) ([]entity.Item, error) {
	var out []entity.Item
	for _, item := range r.items {
		if item.Active {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) GetLowStock(ctx context.Context) ([]entity.Item, error) {
	var out []entity.Item
	for _, item := range r.items {
		if item.Active && item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) AtomicDecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	item, ok := r.items[id]
	if !ok || item.Stock < amount {
		return false, nil
	}
	item.Stock -= amount
	return true, nil
}

func (r *fakeItemRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, amount := range decrements {
		item, ok := r.items[id]
		if !ok || item.Stock < amount {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, amount := range decrements {
		r.items[id].Stock -= amount
	}
	return nil, nil
}

func (r *fakeItemRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, amount := range increments {
		if item, ok := r.items[id]; ok {
			item.Stock += amount
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders        map[uuid.UUID]*entity.Order
	attachErr     error
	attachedCount int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.OrderNo == orderNo {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.Order, error) {
	var out []entity.Order
	for _, order := range r.orders {
		if order.SessionID != nil && *order.SessionID == sessionID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) AttachSession(ctx context.Context, sessionID, cashierID uuid.UUID, from, to time.Time) (int64, error) {
	if r.attachErr != nil {
		return 0, r.attachErr
	}
	return r.attachedCount, nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*entity.Member
}

func newFakeMemberRepo(members ...*entity.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{members: make(map[uuid.UUID]*entity.Member)}
	for _, member := range members {
		if member.ID == uuid.Nil {
			member.ID = uuid.New()
		}
		r.members[member.ID] = member
	}
	return r
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *entity.Member) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, nil
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) GetByMemberNo(ctx context.Context, memberNo string) (*entity.Member, error) {
	for _, member := range r.members {
		if member.MemberNo == memberNo {
			copied := *member
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *entity.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) List(ctx context.Context, params *repository.MemberFilterParams) ([]entity.Member, int64, error) {
	var out []entity.Member
	for _, member := range r.members {
		out = append(out, *member)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMemberRepo) ListActive(ctx context.Context) ([]entity.Member, error) {
	var out []entity.Member
	for _, member := range r.members {
		if member.Active {
			out = append(out, *member)
		}
	}
	return out, nil
}

type fakeCounterRepo struct {
	values map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{values: make(map[string]int64)}
}

func (r *fakeCounterRepo) Next(ctx context.Context, name string) (int64, error) {
	r.values[name]++
	return r.values[name], nil
}

type fakeSettingsRepo struct {
	settings map[string]*entity.Setting
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[string]*entity.Setting)}
}

func (r *fakeSettingsRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	setting, ok := r.settings[key]
	if !ok {
		return nil, nil
	}
	copied := *setting
	return &copied, nil
}

func (r *fakeSettingsRepo) Set(ctx context.Context, setting *entity.Setting) error {
	copied := *setting
	r.settings[setting.Key] = &copied
	return nil
}

func (r *fakeSettingsRepo) Delete(ctx context.Context, key string) error {
	delete(r.settings, key)
	return nil
}

func (r *fakeSettingsRepo) List(ctx context.Context) ([]entity.Setting, error) {
	var out []entity.Setting
	for _, setting := range r.settings {
		out = append(out, *setting)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []entity.Notification) error {
	for i := range notifications {
		if err := r.Create(ctx, &notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			copied := r.notifications[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, unreadOnly bool) ([]entity.Notification, int64, error) {
	var out []entity.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead() {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	now := time.Now()
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		r.users[user.ID] = user
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	var out []entity.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	return nil
}

func (r *fakeUserRepo) RemoveRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	copied := *invoice
	r.invoices[invoice.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) CreateBatch(ctx context.Context, invoices []entity.Invoice) error {
	for i := range invoices {
		if err := r.Create(ctx, &invoices[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	copied := *invoice
	return &copied, nil
}

func (r *fakeInvoiceRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	for _, invoice := range r.invoices {
		if invoice.InvoiceNo == invoiceNo {
			copied := *invoice
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	copied := *invoice
	r.invoices[invoice.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, invoice := range r.invoices {
		out = append(out, *invoice)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var flipped int64
	for _, invoice := range r.invoices {
		if invoice.Status == enum.InvoiceStatusPending && invoice.DueDate.Before(asOf) {
			invoice.Status = enum.InvoiceStatusOverdue
			flipped++
		}
	}
	return flipped, nil
}
