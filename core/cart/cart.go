package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cbcbeauty/storefront/core/catalog"
)

var (
	// ErrInvalidQuantity is returned when Add is called with a non-positive quantity.
	ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")
	// ErrMissingProductID is returned when a line item operation lacks an identifier.
	ErrMissingProductID = errors.New("cart: missing product id")
)

// LineItem is one product/quantity pairing within the cart. The embedded
// product snapshot is flattened in JSON, so the persisted shape matches the
// original client's stored cart records.
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal returns the discounted unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.LastPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
