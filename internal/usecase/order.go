package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/domain/repository"
)

// ItemSpec describes an item to attach to an order.
type ItemSpec struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Flavor    model.Flavor
	Size      model.Size
}

// Validate checks quantity, price and catalog membership.
func (s ItemSpec) Validate() error {
	switch {
	case s.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", domainErrors.ErrBadRequest)
	case s.Quantity > model.MaxQuantity:
		return fmt.Errorf("%w: quantity must not exceed %d", domainErrors.ErrBadRequest, model.MaxQuantity)
	case s.UnitPrice.IsNegative():
		return fmt.Errorf("%w: unit price must not be negative", domainErrors.ErrBadRequest)
	case !s.UnitPrice.Equal(s.UnitPrice.Round(model.MoneyPlaces)):
		return fmt.Errorf("%w: unit price must have at most %d decimal places", domainErrors.ErrBadRequest, model.MoneyPlaces)
	case s.UnitPrice.GreaterThan(model.MaxAmount):
		return fmt.Errorf("%w: unit price must not exceed %s", domainErrors.ErrBadRequest, model.MaxAmount)
	case !s.Flavor.Valid():
		return fmt.Errorf("%w: unknown flavor %q", domainErrors.ErrBadRequest, s.Flavor)
	case !s.Size.Valid():
		return fmt.Errorf("%w: unknown size %q", domainErrors.ErrBadRequest, s.Size)
	}
	return nil
}

// OrderRecorder observes order lifecycle events.
type OrderRecorder interface {
	OrderCreated()
	OrderTransitioned(to model.OrderStatus)
	ItemChanged(op string)
}

type noopRecorder struct{}

func (noopRecorder) OrderCreated() {}

func (noopRecorder) OrderTransitioned(model.OrderStatus) {}

func (noopRecorder) ItemChanged(string) {}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	tx       repository.Transactor
	recorder OrderRecorder
}

// NewOrderUseCase constructs OrderUseCase. A nil recorder disables event recording.
func NewOrderUseCase(orders repository.OrderRepository, tx repository.Transactor, recorder OrderRecorder) *OrderUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &OrderUseCase{orders: orders, tx: tx, recorder: recorder}
}

// Create opens a pending order owned by the caller.
func (u *OrderUseCase) Create(ctx context.Context, caller *model.User) (*model.Order, error) {
	if caller == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	order, err := u.orders.Create(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	u.recorder.OrderCreated()
	return order, nil
}

// Cancel moves a pending order to CANCELED.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	return u.transition(ctx, orderID, caller, model.OrderStatusCanceled)
}

// Finalize moves a pending order to FINALIZED.
func (u *OrderUseCase) Finalize(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	return u.transition(ctx, orderID, caller, model.OrderStatusFinalized)
}

// transition applies the status change. Repeating the current terminal status is a no-op.
func (u *OrderUseCase) transition(ctx context.Context, orderID int64, caller *model.User, to model.OrderStatus) (*model.Order, error) {
	var result *model.Order
	changed := false
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := AuthorizeResourceAccess(caller, order.UserID); err != nil {
			return err
		}

		if order.Status == to {
			result = order
			return nil
		}
		if !model.CanTransition(order.Status, to) {
			return fmt.Errorf("%w: order is %s", domainErrors.ErrConflict, order.Status)
		}

		if err := u.orders.UpdateStatus(ctx, order.ID, to); err != nil {
			return err
		}
		order.Status = to
		result = order
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		u.recorder.OrderTransitioned(to)
	}
	return result, nil
}

// ListAll returns every order; admins only.
func (u *OrderUseCase) ListAll(ctx context.Context, caller *model.User) ([]model.Order, error) {
	if err := AuthorizeAdminAction(caller); err != nil {
		return nil, err
	}
	return u.orders.ListAll(ctx)
}

// ListByUser returns the caller's own orders.
func (u *OrderUseCase) ListByUser(ctx context.Context, caller *model.User) ([]model.Order, error) {
	if caller == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.orders.ListByUser(ctx, caller.ID)
}

// Get returns an order visible to the caller.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeResourceAccess(caller, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// AddItem attaches an item to a pending order and re-prices it.
func (u *OrderUseCase) AddItem(ctx context.Context, orderID int64, spec ItemSpec, caller *model.User) (*model.Order, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var result *model.Order
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.lockMutable(ctx, orderID, caller)
		if err != nil {
			return err
		}

		item, err := u.orders.AddItem(ctx, &model.Item{
			OrderID:   order.ID,
			Quantity:  spec.Quantity,
			UnitPrice: spec.UnitPrice,
			Flavor:    spec.Flavor,
			Size:      spec.Size,
		})
		if err != nil {
			return err
		}
		order.Items = append(order.Items, *item)

		result, err = u.reprice(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.recorder.ItemChanged("add")
	return result, nil
}

// RemoveItem detaches an item from its pending order and re-prices it.
func (u *OrderUseCase) RemoveItem(ctx context.Context, itemID int64, caller *model.User) (*model.Order, error) {
	var result *model.Order
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := u.orders.GetItem(ctx, itemID)
		if err != nil {
			return err
		}

		order, err := u.lockMutable(ctx, item.OrderID, caller)
		if err != nil {
			return err
		}

		if err := u.orders.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		kept := order.Items[:0]
		for _, it := range order.Items {
			if it.ID != item.ID {
				kept = append(kept, it)
			}
		}
		order.Items = kept

		result, err = u.reprice(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.recorder.ItemChanged("remove")
	return result, nil
}

// lockMutable loads the order for update and checks the caller may change its items.
func (u *OrderUseCase) lockMutable(ctx context.Context, orderID int64, caller *model.User) (*model.Order, error) {
	order, err := u.orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeResourceAccess(caller, order.UserID); err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order is %s", domainErrors.ErrConflict, order.Status)
	}
	return order, nil
}

func (u *OrderUseCase) reprice(ctx context.Context, order *model.Order) (*model.Order, error) {
	price := order.Recalculate()
	if price.GreaterThan(model.MaxAmount) {
		return nil, fmt.Errorf("%w: order total must not exceed %s", domainErrors.ErrBadRequest, model.MaxAmount)
	}
	if err := u.orders.UpdatePrice(ctx, order.ID, price); err != nil {
		return nil, err
	}
	return order, nil
}
