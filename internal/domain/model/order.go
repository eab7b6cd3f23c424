package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCanceled  OrderStatus = "CANCELED"
	OrderStatusFinalized OrderStatus = "FINALIZED"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:   {OrderStatusCanceled: true, OrderStatusFinalized: true},
	OrderStatusCanceled:  {},
	OrderStatusFinalized: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transition is defined from the status.
func (s OrderStatus) Terminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

// Order is a purchase owned by a user. Price is derived from Items.
type Order struct {
	ID        int64
	UserID    int64
	Status    OrderStatus
	Price     decimal.Decimal
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recalculate re-sums the price over every attached item.
func (o *Order) Recalculate() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.Price = total
	return total
}
