package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const (
	orderColumns = `id, user_id, status, price, created_at, updated_at`
	itemColumns  = `id, order_id, quantity, unit_price, flavor, size`
)

func (r *orderRepository) Create(ctx context.Context, userID int64) (*model.Order, error) {
	const query = `INSERT INTO orders (user_id, status, price) VALUES ($1, $2, 0)
                   RETURNING ` + orderColumns
	rows, err := r.storage.conn(ctx).Query(ctx, query, userID, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &orders[0], nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *orderRepository) getOne(ctx context.Context, query string, id int64) (*model.Order, error) {
	var o model.Order
	err := r.storage.conn(ctx).QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.Status, &o.Price, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	orders := []model.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY id`
	return r.list(ctx, query)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, status, id)
}

func (r *orderRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	const query = `UPDATE orders SET price=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, price, id)
}

func (r *orderRepository) AddItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	const query = `INSERT INTO items (order_id, quantity, unit_price, flavor, size)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	it := *item
	err := r.storage.conn(ctx).QueryRow(ctx, query, it.OrderID, it.Quantity, it.UnitPrice, it.Flavor, it.Size).Scan(&it.ID)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *orderRepository) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id=$1`
	var it model.Item
	err := r.storage.conn(ctx).QueryRow(ctx, query, id).Scan(&it.ID, &it.OrderID, &it.Quantity, &it.UnitPrice, &it.Flavor, &it.Size)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *orderRepository) DeleteItem(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE id=$1`
	return r.exec(ctx, query, id)
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// attachItems loads items of all given orders with one query.
func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const query = `SELECT ` + itemColumns + ` FROM items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.storage.conn(ctx).Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Quantity, &it.UnitPrice, &it.Flavor, &it.Size); err != nil {
			return err
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Price, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
