package handlers

import (
	"context"

	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/server/http/middleware"
	"github.com/polkiloo/delivery/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	Refresh(caller *model.User) (string, error)
	SignUp(ctx context.Context, caller *model.User, in usecase.NewUser) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, caller *model.User) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error)
	FinalizeOrder(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error)
	AllOrders(ctx context.Context, caller *model.User) ([]model.Order, error)
	MyOrders(ctx context.Context, caller *model.User) ([]model.Order, error)
	Order(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error)
	AddItem(ctx context.Context, orderID int64, spec usecase.ItemSpec, caller *model.User) (*model.Order, error)
	RemoveItem(ctx context.Context, itemID int64, caller *model.User) (*model.Order, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// DeliveryFacade aggregates the full set of operations used across handlers.
type DeliveryFacade interface {
	AuthFacade
	OrderFacade
	HealthFacade
	middleware.CallerResolver
}
