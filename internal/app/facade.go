package app

import (
	"context"
	"log/slog"

	"github.com/polkiloo/delivery/internal/config"
	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DeliveryFacade exposes use cases to the transport layer.
type DeliveryFacade struct {
	auth   *usecase.AuthUseCase
	users  *usecase.UserUseCase
	orders *usecase.OrderUseCase
	health HealthChecker
	logger *slog.Logger
}

func NewDeliveryFacade(auth *usecase.AuthUseCase, users *usecase.UserUseCase, orders *usecase.OrderUseCase, health HealthChecker, logger *slog.Logger) *DeliveryFacade {
	return &DeliveryFacade{auth: auth, users: users, orders: orders, health: health, logger: logger}
}

func (f *DeliveryFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *DeliveryFacade) Refresh(caller *model.User) (string, error) {
	return f.auth.Refresh(caller)
}

func (f *DeliveryFacade) ResolveCaller(ctx context.Context, token string) (*model.User, error) {
	return f.auth.ResolveCaller(ctx, token)
}

func (f *DeliveryFacade) SignUp(ctx context.Context, caller *model.User, in usecase.NewUser) (*model.User, error) {
	return f.users.Create(ctx, caller, in)
}

func (f *DeliveryFacade) CreateOrder(ctx context.Context, caller *model.User) (*model.Order, error) {
	return f.orders.Create(ctx, caller)
}

func (f *DeliveryFacade) CancelOrder(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID, caller)
}

func (f *DeliveryFacade) FinalizeOrder(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	return f.orders.Finalize(ctx, orderID, caller)
}

func (f *DeliveryFacade) AllOrders(ctx context.Context, caller *model.User) ([]model.Order, error) {
	return f.orders.ListAll(ctx, caller)
}

func (f *DeliveryFacade) MyOrders(ctx context.Context, caller *model.User) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, caller)
}

func (f *DeliveryFacade) Order(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, caller)
}

func (f *DeliveryFacade) AddItem(ctx context.Context, orderID int64, spec usecase.ItemSpec, caller *model.User) (*model.Order, error) {
	return f.orders.AddItem(ctx, orderID, spec, caller)
}

func (f *DeliveryFacade) RemoveItem(ctx context.Context, itemID int64, caller *model.User) (*model.Order, error) {
	return f.orders.RemoveItem(ctx, itemID, caller)
}

// Health pings storage; a nil checker is always healthy.
func (f *DeliveryFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}

// SeedAdmin creates the configured bootstrap admin when it is missing.
func (f *DeliveryFacade) SeedAdmin(ctx context.Context, admin config.AdminConfig) error {
	if !admin.Enabled() {
		return nil
	}
	usr, created, err := f.users.Bootstrap(ctx, usecase.NewUser{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
	})
	if err != nil {
		return err
	}
	if created {
		f.logger.Info("bootstrap admin created", slog.Int64("user_id", usr.ID), slog.String("email", usr.Email))
	}
	return nil
}
