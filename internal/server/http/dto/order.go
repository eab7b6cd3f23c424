package dto

import "github.com/shopspring/decimal"

// Money is a decimal amount rendered as a JSON number. Decoding accepts both
// numbers and quoted strings.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d for serialization.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the exact decimal as an unquoted number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// ItemRequest describes an item to add to an order.
type ItemRequest struct {
	Quantity  int    `json:"quantidade"`
	UnitPrice Money  `json:"preco_unitario"`
	Flavor    string `json:"sabor"`
	Size      string `json:"tamanho"`
}

// ItemResponse is an item as rendered inside an order.
type ItemResponse struct {
	ID        int64  `json:"id"`
	Quantity  int    `json:"quantidade"`
	UnitPrice Money  `json:"preco_unitario"`
	Flavor    string `json:"sabor"`
	Size      string `json:"tamanho"`
}

// OrderResponse is the full view of an order.
type OrderResponse struct {
	ID     int64          `json:"id"`
	UserID int64          `json:"usuario_id"`
	Status string         `json:"status"`
	Price  Money          `json:"preco"`
	Items  []ItemResponse `json:"itens"`
}

// OrdersHomeResponse answers the authenticated orders probe.
type OrdersHomeResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// OrderCreatedResponse confirms a created order.
type OrderCreatedResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"pedido_id"`
}

// OrderStatusResponse reports the status after cancel or finalize.
type OrderStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// OrderTotalResponse reports the price after an item mutation.
type OrderTotalResponse struct {
	Message string `json:"message"`
	Total   Money  `json:"preco_total"`
}
