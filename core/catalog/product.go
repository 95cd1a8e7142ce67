package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog record as served by the backend. LastPrice is the
// discounted unit price customers actually pay; Price is the list price shown
// struck through.
type Product struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	LastPrice   decimal.Decimal `json:"lastPrice"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images,omitempty"`
	Category    string          `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitzero"`
	UpdatedAt   time.Time       `json:"updatedAt,omitzero"`
}

// Discount returns the absolute price reduction, zero when LastPrice is not
// lower than Price.
func (p Product) Discount() decimal.Decimal {
	d := p.Price.Sub(p.LastPrice)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// DiscountPercent returns the discount as a percentage of the list price,
// zero when nothing is discounted.
func (p Product) DiscountPercent() decimal.Decimal {
	if !p.Price.IsPositive() {
		return decimal.Zero
	}
	return p.Discount().Div(p.Price).Mul(decimal.NewFromInt(100))
}

// StockStatus classifies a product's availability.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusNotFound   StockStatus = "not_found"
)

// lowStockThreshold is the stock level at or below which a product is
// reported as running low.
const lowStockThreshold = 5

// Availability classifies the product's stock level.
func (p Product) Availability() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockStatusOutOfStock
	case p.Stock <= lowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
