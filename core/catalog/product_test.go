package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cbcbeauty/storefront/core/catalog"
)

func TestProductDiscount(t *testing.T) {
	t.Parallel()

	t.Run("discounted product", func(t *testing.T) {
		t.Parallel()

		p := catalog.Product{
			Price:     decimal.NewFromFloat(30.00),
			LastPrice: decimal.NewFromFloat(24.00),
		}
		assert.True(t, p.Discount().Equal(decimal.NewFromFloat(6.00)))
		assert.True(t, p.DiscountPercent().Equal(decimal.NewFromInt(20)))
	})

	t.Run("no discount", func(t *testing.T) {
		t.Parallel()

		p := catalog.Product{
			Price:     decimal.NewFromFloat(30.00),
			LastPrice: decimal.NewFromFloat(30.00),
		}
		assert.True(t, p.Discount().IsZero())
		assert.True(t, p.DiscountPercent().IsZero())
	})

	t.Run("last price above list clamps to zero", func(t *testing.T) {
		t.Parallel()

		p := catalog.Product{
			Price:     decimal.NewFromFloat(20.00),
			LastPrice: decimal.NewFromFloat(25.00),
		}
		assert.True(t, p.Discount().IsZero())
	})

	t.Run("zero list price yields zero percent", func(t *testing.T) {
		t.Parallel()

		p := catalog.Product{LastPrice: decimal.NewFromFloat(5.00)}
		assert.True(t, p.DiscountPercent().IsZero())
	})
}

func TestProductAvailability(t *testing.T) {
	t.Parallel()

	assert.Equal(t, catalog.StockStatusOutOfStock, catalog.Product{Stock: 0}.Availability())
	assert.Equal(t, catalog.StockStatusLowStock, catalog.Product{Stock: 5}.Availability())
	assert.Equal(t, catalog.StockStatusInStock, catalog.Product{Stock: 6}.Availability())
}
