package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
	// CreateErr is returned by Create only, after lookups succeed.
	CreateErr error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	s.Users[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders and items in memory.
type OrderRepositoryStub struct {
	mu         sync.Mutex
	orders     map[int64]*model.Order
	items      map[int64]*model.Item
	nextOrder  int64
	nextItem   int64
	Err        error
	AddItemErr error
	// Locked records ids passed to GetByIDForUpdate.
	Locked []int64
}

// NewOrderRepositoryStub constructs empty in-memory order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		orders: make(map[int64]*model.Order),
		items:  make(map[int64]*model.Item),
	}
}

// Create stores a new pending order for the user.
func (s *OrderRepositoryStub) Create(ctx context.Context, userID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.nextOrder++
	now := time.Now()
	order := &model.Order{
		ID:        s.nextOrder,
		UserID:    userID,
		Status:    model.OrderStatusPending,
		Price:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[order.ID] = order
	return s.snapshot(order), nil
}

// GetByID returns a copy of the order with its items.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return s.snapshot(order), nil
}

// GetByIDForUpdate behaves like GetByID and records the lock request.
func (s *OrderRepositoryStub) GetByIDForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	s.Locked = append(s.Locked, id)
	s.mu.Unlock()
	return s.GetByID(ctx, id)
}

// ListAll returns every order sorted by id.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.list(func(*model.Order) bool { return true })
}

// ListByUser returns orders owned by the user sorted by id.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.list(func(o *model.Order) bool { return o.UserID == userID })
}

// UpdateStatus changes the stored order status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice changes the stored order price.
func (s *OrderRepositoryStub) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Price = price
	order.UpdatedAt = time.Now()
	return nil
}

// AddItem attaches an item to an existing order.
func (s *OrderRepositoryStub) AddItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.AddItemErr != nil {
		return nil, s.AddItemErr
	}
	if _, ok := s.orders[item.OrderID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.nextItem++
	stored := *item
	stored.ID = s.nextItem
	s.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetItem returns item by id.
func (s *OrderRepositoryStub) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *item
	return &out, nil
}

// DeleteItem removes item by id.
func (s *OrderRepositoryStub) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Seed stores an order as-is, assigning item ids; used to arrange fixtures.
func (s *OrderRepositoryStub) Seed(order model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		s.nextOrder++
		order.ID = s.nextOrder
	} else if order.ID > s.nextOrder {
		s.nextOrder = order.ID
	}
	for _, item := range order.Items {
		s.nextItem++
		item.ID = s.nextItem
		item.OrderID = order.ID
		stored := item
		s.items[stored.ID] = &stored
	}
	order.Items = nil
	stored := order
	s.orders[stored.ID] = &stored
	return s.snapshot(&stored)
}

func (s *OrderRepositoryStub) list(keep func(*model.Order) bool) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if keep(order) {
			out = append(out, *s.snapshot(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *OrderRepositoryStub) snapshot(order *model.Order) *model.Order {
	out := *order
	out.Items = nil
	for _, item := range s.items {
		if item.OrderID == order.ID {
			out.Items = append(out.Items, *item)
		}
	}
	sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].ID < out.Items[j].ID })
	return &out
}

// TransactorStub runs functions inline and counts invocations.
type TransactorStub struct {
	Calls int
	Err   error
}

// WithinTransaction invokes fn unless an error is preconfigured.
func (s *TransactorStub) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	return fn(ctx)
}
