package catalog_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbcbeauty/storefront/core/catalog"
)

var errBackendDown = errors.New("backend down")

// fakeBackend implements catalog.Backend over an in-memory product map.
type fakeBackend struct {
	mu       sync.Mutex
	products map[string]catalog.Product
	fail     bool
}

func newFakeBackend(products ...catalog.Product) *fakeBackend {
	f := &fakeBackend{products: make(map[string]catalog.Product)}
	for _, p := range products {
		f.products[p.ProductID] = p
	}
	return f
}

func (f *fakeBackend) Get(_ context.Context, path string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errBackendDown
	}

	switch {
	case path == "/products":
		list := out.(*[]catalog.Product)
		for _, p := range f.products {
			*list = append(*list, p)
		}
		return nil
	case strings.HasPrefix(path, "/products/search/"):
		query, _ := url.PathUnescape(strings.TrimPrefix(path, "/products/search/"))
		list := out.(*[]catalog.Product)
		for _, p := range f.products {
			if strings.Contains(strings.ToLower(p.ProductName), strings.ToLower(query)) {
				*list = append(*list, p)
			}
		}
		return nil
	default:
		id, _ := url.PathUnescape(strings.TrimPrefix(path, "/products/"))
		p, ok := f.products[id]
		if !ok {
			return errors.New("not found")
		}
		*out.(*catalog.Product) = p
		return nil
	}
}

func (f *fakeBackend) Post(_ context.Context, _ string, body, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errBackendDown
	}

	p := body.(catalog.Product)
	f.products[p.ProductID] = p
	return nil
}

func (f *fakeBackend) Put(_ context.Context, path string, body, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errBackendDown
	}

	id, _ := url.PathUnescape(strings.TrimPrefix(path, "/products/"))
	f.products[id] = body.(catalog.Product)
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errBackendDown
	}

	id, _ := url.PathUnescape(strings.TrimPrefix(path, "/products/"))
	delete(f.products, id)
	return nil
}

func (f *fakeBackend) stock(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

func testProduct(id, name string, stock int) catalog.Product {
	return catalog.Product{
		ProductID:   id,
		ProductName: name,
		Price:       decimal.NewFromFloat(24.99),
		LastPrice:   decimal.NewFromFloat(19.99),
		Stock:       stock,
	}
}

func TestServiceBrowse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("all and get", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(newFakeBackend(
			testProduct("CB001", "Anti-Aging Night Cream", 10),
			testProduct("CB002", "Gentle Face Wash", 8),
		))

		all, err := svc.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		p, err := svc.Get(ctx, "CB002")
		require.NoError(t, err)
		assert.Equal(t, "Gentle Face Wash", p.ProductName)
	})

	t.Run("search matches substring", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(newFakeBackend(
			testProduct("CB001", "Anti-Aging Night Cream", 10),
			testProduct("CB004", "Moisturizing Lip Balm", 20),
		))

		found, err := svc.Search(ctx, "lip")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "CB004", found[0].ProductID)
	})

	t.Run("empty product id rejected", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(newFakeBackend())

		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, catalog.ErrMissingProductID)
		assert.ErrorIs(t, svc.Update(ctx, "", catalog.Product{}), catalog.ErrMissingProductID)
		assert.ErrorIs(t, svc.Delete(ctx, ""), catalog.ErrMissingProductID)
	})
}

func TestServiceStock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("update stock floors at zero", func(t *testing.T) {
		t.Parallel()

		backend := newFakeBackend(testProduct("CB001", "Night Cream", 3))
		svc := catalog.NewService(backend)

		updated, err := svc.UpdateStock(ctx, "CB001", 5)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Stock)
		assert.False(t, updated.UpdatedAt.IsZero())
		assert.Equal(t, 0, backend.stock("CB001"))
	})

	t.Run("reduce stock for order updates every item", func(t *testing.T) {
		t.Parallel()

		backend := newFakeBackend(
			testProduct("CB001", "Night Cream", 10),
			testProduct("CB002", "Face Wash", 8),
		)
		svc := catalog.NewService(backend)

		products, err := svc.ReduceStockForOrder(ctx, []catalog.Sold{
			{ProductID: "CB001", Quantity: 2},
			{ProductID: "CB002", Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, 8, backend.stock("CB001"))
		assert.Equal(t, 7, backend.stock("CB002"))
	})

	t.Run("reduce stock reports joined failure", func(t *testing.T) {
		t.Parallel()

		backend := newFakeBackend(testProduct("CB001", "Night Cream", 10))
		svc := catalog.NewService(backend)

		_, err := svc.ReduceStockForOrder(ctx, []catalog.Sold{
			{ProductID: "CB001", Quantity: 1},
			{ProductID: "missing", Quantity: 1},
		})
		require.Error(t, err)
	})

	t.Run("in stock", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(newFakeBackend(testProduct("CB001", "Night Cream", 2)))

		assert.True(t, svc.InStock(ctx, "CB001", 2))
		assert.False(t, svc.InStock(ctx, "CB001", 3))
		assert.False(t, svc.InStock(ctx, "missing", 1))
	})

	t.Run("stock status thresholds", func(t *testing.T) {
		t.Parallel()

		svc := catalog.NewService(newFakeBackend(
			testProduct("full", "Full", 6),
			testProduct("low", "Low", 5),
			testProduct("empty", "Empty", 0),
		))

		assert.Equal(t, catalog.StockStatusInStock, svc.StockStatus(ctx, "full"))
		assert.Equal(t, catalog.StockStatusLowStock, svc.StockStatus(ctx, "low"))
		assert.Equal(t, catalog.StockStatusOutOfStock, svc.StockStatus(ctx, "empty"))
		assert.Equal(t, catalog.StockStatusNotFound, svc.StockStatus(ctx, "missing"))
	})

	t.Run("backend failure reads as unavailable", func(t *testing.T) {
		t.Parallel()

		backend := newFakeBackend(testProduct("CB001", "Night Cream", 10))
		backend.fail = true
		svc := catalog.NewService(backend)

		assert.False(t, svc.InStock(ctx, "CB001", 1))
		assert.Equal(t, catalog.StockStatusNotFound, svc.StockStatus(ctx, "CB001"))
	})
}

func TestServiceProductDiscount(t *testing.T) {
	t.Parallel()

	p := testProduct("CB001", "Night Cream", 1)
	assert.True(t, p.Discount().Equal(decimal.NewFromFloat(5.00)))

	p.LastPrice = p.Price.Add(decimal.NewFromInt(1))
	assert.True(t, p.Discount().IsZero())
}
