package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Storage limits for item and order amounts (INTEGER and NUMERIC(12,2) columns).
const (
	MaxQuantity = math.MaxInt32
	MoneyPlaces = 2
)

// MaxAmount is the largest unit price or order total that can be stored.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Flavor is one of the fixed catalog flavors.
type Flavor string

const (
	FlavorCalabresa         Flavor = "CALABRESA"
	FlavorMarguerita        Flavor = "MARGUERITA"
	FlavorFrangoComCatupiry Flavor = "FRANGO_COM_CATUPIRY"
	FlavorPortuguesa        Flavor = "PORTUGUESA"
	FlavorQuatroQueijos     Flavor = "QUATRO_QUEIJOS"
)

// Size is one of the fixed catalog sizes.
type Size string

const (
	SizeSmall  Size = "PEQUENA"
	SizeMedium Size = "MEDIA"
	SizeLarge  Size = "GRANDE"
)

// Valid reports whether the flavor belongs to the catalog.
func (f Flavor) Valid() bool {
	switch f {
	case FlavorCalabresa, FlavorMarguerita, FlavorFrangoComCatupiry, FlavorPortuguesa, FlavorQuatroQueijos:
		return true
	}
	return false
}

// Valid reports whether the size belongs to the catalog.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Item is a line entry of an order.
type Item struct {
	ID        int64
	OrderID   int64
	Quantity  int
	UnitPrice decimal.Decimal
	Flavor    Flavor
	Size      Size
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
