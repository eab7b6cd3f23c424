package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/delivery/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their items.
// Orders returned by Get* and List* carry their items.
type OrderRepository interface {
	Create(ctx context.Context, userID int64) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// GetByIDForUpdate loads the order and locks it until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error

	AddItem(ctx context.Context, item *model.Item) (*model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}
