package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
	testhelpers "github.com/polkiloo/delivery/internal/test"
)

type recorderStub struct {
	created     int
	transitions []model.OrderStatus
	items       []string
}

func (r *recorderStub) OrderCreated() {
	r.created++
}

func (r *recorderStub) OrderTransitioned(to model.OrderStatus) {
	r.transitions = append(r.transitions, to)
}

func (r *recorderStub) ItemChanged(op string) {
	r.items = append(r.items, op)
}

type orderFixture struct {
	repo     *testhelpers.OrderRepositoryStub
	tx       *testhelpers.TransactorStub
	recorder *recorderStub
	uc       *OrderUseCase
	owner    *model.User
	stranger *model.User
	admin    *model.User
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		repo:     testhelpers.NewOrderRepositoryStub(),
		tx:       &testhelpers.TransactorStub{},
		recorder: &recorderStub{},
		owner:    &model.User{ID: 1},
		stranger: &model.User{ID: 2},
		admin:    &model.User{ID: 3, Admin: true},
	}
	f.uc = NewOrderUseCase(f.repo, f.tx, f.recorder)
	return f
}

func pizza(qty int, price string) ItemSpec {
	return ItemSpec{
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
		Flavor:    model.FlavorCalabresa,
		Size:      model.SizeLarge,
	}
}

func TestOrderUseCaseCreate(t *testing.T) {
	f := newOrderFixture()

	order, err := f.uc.Create(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.True(t, order.Price.IsZero())
	assert.Equal(t, f.owner.ID, order.UserID)
	assert.Equal(t, 1, f.recorder.created)

	_, err = f.uc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestOrderUseCaseTransitions(t *testing.T) {
	cases := []struct {
		name   string
		from   model.OrderStatus
		apply  func(*OrderUseCase, context.Context, int64, *model.User) (*model.Order, error)
		status model.OrderStatus
		err    error
	}{
		{"cancel pending", model.OrderStatusPending, (*OrderUseCase).Cancel, model.OrderStatusCanceled, nil},
		{"finalize pending", model.OrderStatusPending, (*OrderUseCase).Finalize, model.OrderStatusFinalized, nil},
		{"cancel canceled is no-op", model.OrderStatusCanceled, (*OrderUseCase).Cancel, model.OrderStatusCanceled, nil},
		{"finalize finalized is no-op", model.OrderStatusFinalized, (*OrderUseCase).Finalize, model.OrderStatusFinalized, nil},
		{"cancel finalized conflicts", model.OrderStatusFinalized, (*OrderUseCase).Cancel, model.OrderStatusFinalized, domainErrors.ErrConflict},
		{"finalize canceled conflicts", model.OrderStatusCanceled, (*OrderUseCase).Finalize, model.OrderStatusCanceled, domainErrors.ErrConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture()
			seeded := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: tc.from})

			order, err := tc.apply(f.uc, context.Background(), seeded.ID, f.owner)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, order)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.status, order.Status)
			}

			stored, err := f.repo.GetByID(context.Background(), seeded.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.status, stored.Status)
			assert.Equal(t, []int64{seeded.ID}, f.repo.Locked)
			assert.Equal(t, 1, f.tx.Calls)
		})
	}
}

func TestOrderUseCaseTransitionRecordsOnlyChanges(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})

	_, err := f.uc.Cancel(context.Background(), order.ID, f.owner)
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), order.ID, f.owner)
	require.NoError(t, err)

	assert.Equal(t, []model.OrderStatus{model.OrderStatusCanceled}, f.recorder.transitions)
}

func TestOrderUseCaseTransitionAccess(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})

	_, err := f.uc.Cancel(context.Background(), order.ID, f.stranger)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.uc.Finalize(context.Background(), 404, f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = f.uc.Cancel(context.Background(), 999, f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	finalized, err := f.uc.Finalize(context.Background(), order.ID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusFinalized, finalized.Status)
}

func TestOrderUseCaseTransactionError(t *testing.T) {
	f := newOrderFixture()
	f.tx.Err = errors.New("begin failed")
	order := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})

	_, err := f.uc.Cancel(context.Background(), order.ID, f.owner)
	assert.EqualError(t, err, "begin failed")
	assert.Empty(t, f.recorder.transitions)
}

func TestOrderUseCaseListAll(t *testing.T) {
	f := newOrderFixture()
	f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})
	f.repo.Seed(model.Order{UserID: f.stranger.ID, Status: model.OrderStatusPending})

	orders, err := f.uc.ListAll(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = f.uc.ListAll(context.Background(), f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestOrderUseCaseListByUser(t *testing.T) {
	f := newOrderFixture()
	mine := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})
	f.repo.Seed(model.Order{UserID: f.stranger.ID, Status: model.OrderStatusPending})

	orders, err := f.uc.ListByUser(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)

	empty, err := f.uc.ListByUser(context.Background(), &model.User{ID: 50})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOrderUseCaseGet(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{
		UserID: f.owner.ID,
		Status: model.OrderStatusPending,
		Items:  []model.Item{{Quantity: 1, UnitPrice: decimal.NewFromInt(10), Flavor: model.FlavorPortuguesa, Size: model.SizeSmall}},
	})

	got, err := f.uc.Get(context.Background(), order.ID, f.owner)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = f.uc.Get(context.Background(), order.ID, f.stranger)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.uc.Get(context.Background(), order.ID, f.admin)
	assert.NoError(t, err)

	_, err = f.uc.Get(context.Background(), 999, f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestOrderUseCaseAddItemReprices(t *testing.T) {
	f := newOrderFixture()
	order, err := f.uc.Create(context.Background(), f.owner)
	require.NoError(t, err)

	updated, err := f.uc.AddItem(context.Background(), order.ID, pizza(2, "25.00"), f.owner)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(50)), "price %s", updated.Price)

	updated, err = f.uc.AddItem(context.Background(), order.ID, pizza(1, "40.10"), f.owner)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("90.10")), "price %s", updated.Price)
	assert.Len(t, updated.Items, 2)

	stored, err := f.repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("90.10")))
	assert.Equal(t, []string{"add", "add"}, f.recorder.items)
}

func TestOrderUseCaseAddItemValidation(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})

	tooMany := model.MaxQuantity
	tooMany++

	invalid := map[string]ItemSpec{
		"zero quantity":     pizza(0, "10"),
		"quantity overflow": pizza(tooMany, "1"),
		"negative price":    pizza(1, "-1"),
		"sub-cent price":    pizza(2, "10.005"),
		"price overflow":    pizza(1, "10000000000"),
		"unknown flavor":    {Quantity: 1, UnitPrice: decimal.NewFromInt(1), Flavor: "ABACAXI", Size: model.SizeSmall},
		"unknown size":      {Quantity: 1, UnitPrice: decimal.NewFromInt(1), Flavor: model.FlavorMarguerita, Size: "GIGANTE"},
	}
	for name, spec := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.AddItem(context.Background(), order.ID, spec, f.owner)
			assert.ErrorIs(t, err, domainErrors.ErrBadRequest)
		})
	}
	assert.Zero(t, f.tx.Calls)

	free, err := f.uc.AddItem(context.Background(), order.ID, pizza(1, "0"), f.owner)
	require.NoError(t, err)
	assert.True(t, free.Price.IsZero())

	padded, err := f.uc.AddItem(context.Background(), order.ID, pizza(2, "10.500"), f.owner)
	require.NoError(t, err)
	assert.True(t, padded.Price.Equal(decimal.NewFromInt(21)), "price %s", padded.Price)
}

func TestOrderUseCaseAddItemTotalLimit(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})

	updated, err := f.uc.AddItem(context.Background(), order.ID, pizza(1, "9999999999.99"), f.owner)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(model.MaxAmount))

	_, err = f.uc.AddItem(context.Background(), order.ID, pizza(1, "0.01"), f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrBadRequest)

	stored, err := f.repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(model.MaxAmount), "stored price %s", stored.Price)
	assert.Equal(t, []string{"add"}, f.recorder.items)
}

func TestOrderUseCaseAddItemRejections(t *testing.T) {
	f := newOrderFixture()
	pending := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})
	closed := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusFinalized})

	_, err := f.uc.AddItem(context.Background(), 999, pizza(1, "1"), f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = f.uc.AddItem(context.Background(), pending.ID, pizza(1, "1"), f.stranger)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.uc.AddItem(context.Background(), closed.ID, pizza(1, "1"), f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrConflict)

	stored, err := f.repo.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Empty(t, f.recorder.items)
}

func TestOrderUseCaseAddItemStoreError(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending})
	f.repo.AddItemErr = errors.New("insert failed")

	_, err := f.uc.AddItem(context.Background(), order.ID, pizza(1, "1"), f.owner)
	assert.EqualError(t, err, "insert failed")
}

func TestOrderUseCaseRemoveItemReprices(t *testing.T) {
	f := newOrderFixture()
	order := f.repo.Seed(model.Order{
		UserID: f.owner.ID,
		Status: model.OrderStatusPending,
		Price:  decimal.RequireFromString("90.40"),
		Items: []model.Item{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(25), Flavor: model.FlavorCalabresa, Size: model.SizeLarge},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("40.10"), Flavor: model.FlavorMarguerita, Size: model.SizeMedium},
			{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10"), Flavor: model.FlavorPortuguesa, Size: model.SizeSmall},
		},
	})

	updated, err := f.uc.RemoveItem(context.Background(), order.Items[1].ID, f.owner)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("50.30")), "price %s", updated.Price)
	assert.Len(t, updated.Items, 2)

	_, err = f.repo.GetItem(context.Background(), order.Items[1].ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	updated, err = f.uc.RemoveItem(context.Background(), order.Items[0].ID, f.admin)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("0.30")), "price %s", updated.Price)

	updated, err = f.uc.RemoveItem(context.Background(), order.Items[2].ID, f.owner)
	require.NoError(t, err)
	assert.True(t, updated.Price.IsZero())
	assert.Empty(t, updated.Items)
}

func TestOrderUseCaseRemoveItemRejections(t *testing.T) {
	f := newOrderFixture()
	item := model.Item{Quantity: 1, UnitPrice: decimal.NewFromInt(5), Flavor: model.FlavorCalabresa, Size: model.SizeSmall}
	pending := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusPending, Items: []model.Item{item}})
	canceled := f.repo.Seed(model.Order{UserID: f.owner.ID, Status: model.OrderStatusCanceled, Items: []model.Item{item}})

	_, err := f.uc.RemoveItem(context.Background(), 999, f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = f.uc.RemoveItem(context.Background(), pending.Items[0].ID, f.stranger)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.uc.RemoveItem(context.Background(), canceled.Items[0].ID, f.owner)
	assert.ErrorIs(t, err, domainErrors.ErrConflict)

	_, err = f.repo.GetItem(context.Background(), pending.Items[0].ID)
	assert.NoError(t, err)
}

func TestNewOrderUseCaseNilRecorder(t *testing.T) {
	uc := NewOrderUseCase(testhelpers.NewOrderRepositoryStub(), &testhelpers.TransactorStub{}, nil)
	_, err := uc.Create(context.Background(), &model.User{ID: 1})
	assert.NoError(t, err)
}
