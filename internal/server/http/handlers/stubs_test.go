package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/usecase"
)

// facadeStub provides controllable behaviour for every handler facade.
type facadeStub struct {
	AuthenticateFn func(context.Context, string, string) (string, error)
	RefreshFn      func(*model.User) (string, error)
	SignUpFn       func(context.Context, *model.User, usecase.NewUser) (*model.User, error)

	CreateFn   func(context.Context, *model.User) (*model.Order, error)
	CancelFn   func(context.Context, int64, *model.User) (*model.Order, error)
	FinalizeFn func(context.Context, int64, *model.User) (*model.Order, error)
	AllFn      func(context.Context, *model.User) ([]model.Order, error)
	MineFn     func(context.Context, *model.User) ([]model.Order, error)
	OrderFn    func(context.Context, int64, *model.User) (*model.Order, error)
	AddFn      func(context.Context, int64, usecase.ItemSpec, *model.User) (*model.Order, error)
	RemoveFn   func(context.Context, int64, *model.User) (*model.Order, error)

	HealthErr error
}

func (s facadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

func (s facadeStub) Refresh(caller *model.User) (string, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(caller)
	}
	return "refreshed", nil
}

func (s facadeStub) SignUp(ctx context.Context, caller *model.User, in usecase.NewUser) (*model.User, error) {
	if s.SignUpFn != nil {
		return s.SignUpFn(ctx, caller, in)
	}
	return &model.User{ID: 7, Email: in.Email, Name: in.Name}, nil
}

func (s facadeStub) CreateOrder(ctx context.Context, caller *model.User) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, caller)
	}
	return &model.Order{ID: 1, UserID: caller.ID, Status: model.OrderStatusPending}, nil
}

func (s facadeStub) CancelOrder(ctx context.Context, id int64, caller *model.User) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id, caller)
	}
	return &model.Order{ID: id, Status: model.OrderStatusCanceled}, nil
}

func (s facadeStub) FinalizeOrder(ctx context.Context, id int64, caller *model.User) (*model.Order, error) {
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, id, caller)
	}
	return &model.Order{ID: id, Status: model.OrderStatusFinalized}, nil
}

func (s facadeStub) AllOrders(ctx context.Context, caller *model.User) ([]model.Order, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx, caller)
	}
	return nil, nil
}

func (s facadeStub) MyOrders(ctx context.Context, caller *model.User) ([]model.Order, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, caller)
	}
	return nil, nil
}

func (s facadeStub) Order(ctx context.Context, id int64, caller *model.User) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id, caller)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

func (s facadeStub) AddItem(ctx context.Context, id int64, spec usecase.ItemSpec, caller *model.User) (*model.Order, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, id, spec, caller)
	}
	return &model.Order{ID: id, Price: spec.UnitPrice.Mul(decimal.NewFromInt(int64(spec.Quantity)))}, nil
}

func (s facadeStub) RemoveItem(ctx context.Context, id int64, caller *model.User) (*model.Order, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, id, caller)
	}
	return &model.Order{ID: 1}, nil
}

func (s facadeStub) Health(context.Context) error {
	return s.HealthErr
}

func (s facadeStub) ResolveCaller(context.Context, string) (*model.User, error) {
	return &model.User{ID: 1}, nil
}

var _ DeliveryFacade = facadeStub{}
