package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/payment"
	"github.com/sickfits/storefront-go/internal/repository"
)

// In-memory store fakes mirroring the repository contracts, including the
// sentinel errors the services translate.

type memUserStore struct {
	users  map[string]*model.User
	nextID int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) id() string {
	s.nextID++
	return fmt.Sprintf("user-%d", s.nextID)
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = s.id()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByResetToken(_ context.Context, token string) (*model.User, error) {
	for _, u := range s.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (s *memUserStore) SetResetToken(_ context.Context, userID, token string, expiry time.Time) error {
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (s *memUserStore) CompletePasswordReset(_ context.Context, userID, passwordHash string) error {
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (s *memUserStore) UpdatePermissions(_ context.Context, userID string, permissions []model.Permission) (*model.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Permissions = permissions
	return u, nil
}

type memItemStore struct {
	items  map[string]*model.Item
	nextID int
}

func newMemItemStore() *memItemStore {
	return &memItemStore{items: make(map[string]*model.Item)}
}

func (s *memItemStore) Create(_ context.Context, item *model.Item) error {
	if item.ID == "" {
		s.nextID++
		item.ID = fmt.Sprintf("item-%d", s.nextID)
	}
	item.CreatedAt = time.Now()
	s.items[item.ID] = item
	return nil
}

func (s *memItemStore) GetByID(_ context.Context, id string) (*model.Item, error) {
	if it, ok := s.items[id]; ok {
		copied := *it
		return &copied, nil
	}
	return nil, repository.ErrItemNotFound
}

func (s *memItemStore) List(_ context.Context, limit, offset int) ([]model.Item, error) {
	var items []model.Item
	for _, it := range s.items {
		items = append(items, *it)
	}
	return items, nil
}

func (s *memItemStore) Update(_ context.Context, item *model.Item) error {
	if _, ok := s.items[item.ID]; !ok {
		return repository.ErrItemNotFound
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *memItemStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

type memCartStore struct {
	rows   map[string]*model.CartItem
	items  *memItemStore
	nextID int
}

func newMemCartStore(items *memItemStore) *memCartStore {
	return &memCartStore{rows: make(map[string]*model.CartItem), items: items}
}

// AddOne mirrors the SQL upsert: one row per (user, item), quantity bumped on
// conflict.
func (s *memCartStore) AddOne(_ context.Context, userID, itemID string) error {
	for _, row := range s.rows {
		if row.UserID == userID && row.ItemID == itemID {
			row.Quantity++
			return nil
		}
	}
	s.nextID++
	id := fmt.Sprintf("cart-%d", s.nextID)
	s.rows[id] = &model.CartItem{ID: id, UserID: userID, ItemID: itemID, Quantity: 1, CreatedAt: time.Now()}
	return nil
}

func (s *memCartStore) GetByID(_ context.Context, id string) (*model.CartItem, error) {
	if row, ok := s.rows[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, repository.ErrCartItemNotFound
}

func (s *memCartStore) GetByUserAndItem(_ context.Context, userID, itemID string) (*model.CartItem, error) {
	for _, row := range s.rows {
		if row.UserID == userID && row.ItemID == itemID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, repository.ErrCartItemNotFound
}

func (s *memCartStore) ListByUser(_ context.Context, userID string) ([]model.CartLine, error) {
	var lines []model.CartLine
	for _, row := range s.rows {
		if row.UserID != userID {
			continue
		}
		item, ok := s.items.items[row.ItemID]
		if !ok {
			continue
		}
		lines = append(lines, model.CartLine{CartItem: *row, Item: *item})
	}
	return lines, nil
}

func (s *memCartStore) Delete(_ context.Context, id string) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrCartItemNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memCartStore) clearUser(userID string) {
	for id, row := range s.rows {
		if row.UserID == userID {
			delete(s.rows, id)
		}
	}
}

type memOrderStore struct {
	orders map[string]*model.Order
	items  map[string][]model.OrderItem
	cart   *memCartStore
	nextID int
}

func newMemOrderStore(cart *memCartStore) *memOrderStore {
	return &memOrderStore{
		orders: make(map[string]*model.Order),
		items:  make(map[string][]model.OrderItem),
		cart:   cart,
	}
}

func (s *memOrderStore) Create(_ context.Context, order *model.Order, items []model.OrderItem) error {
	if order.ID == "" {
		s.nextID++
		order.ID = fmt.Sprintf("order-%d", s.nextID)
	}
	order.CreatedAt = time.Now()
	s.orders[order.ID] = order
	s.items[order.ID] = items
	s.cart.clearUser(order.UserID)
	return nil
}

func (s *memOrderStore) GetByID(_ context.Context, id string) (*model.Order, []model.OrderItem, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, nil, repository.ErrOrderNotFound
	}
	return order, s.items[id], nil
}

func (s *memOrderStore) ListByUser(_ context.Context, userID string) ([]model.Order, map[string][]model.OrderItem, error) {
	var orders []model.Order
	byOrder := make(map[string][]model.OrderItem)
	for id, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
			byOrder[id] = s.items[id]
		}
	}
	return orders, byOrder, nil
}

type fakeMailer struct {
	sent    []string // reset URLs, in order
	lastTo  string
	sendErr error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.lastTo = to
	m.sent = append(m.sent, resetURL)
	return nil
}

type fakeProcessor struct {
	charged   []int64
	lastToken string
	chargeErr error
}

func (p *fakeProcessor) Charge(_ context.Context, amount int64, currency, cardToken string) (*payment.Charge, error) {
	if p.chargeErr != nil {
		return nil, p.chargeErr
	}
	p.charged = append(p.charged, amount)
	p.lastToken = cardToken
	return &payment.Charge{ID: fmt.Sprintf("ch_%d", len(p.charged)), Amount: amount}, nil
}
