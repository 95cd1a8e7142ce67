package cart_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbcbeauty/storefront/core/cart"
	"github.com/cbcbeauty/storefront/core/catalog"
	"github.com/cbcbeauty/storefront/core/store"
)

// recordingNotifier captures messages for assertions.
type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) ShowSuccess(message string) uuid.UUID {
	r.messages = append(r.messages, message)
	return uuid.New()
}

func product(id, name string, price, lastPrice float64) catalog.Product {
	return catalog.Product{
		ProductID:   id,
		ProductName: name,
		Price:       decimal.NewFromFloat(price),
		LastPrice:   decimal.NewFromFloat(lastPrice),
		Stock:       10,
	}
}

func newManager(t *testing.T) (*cart.Manager, *recordingNotifier, *store.Memory) {
	t.Helper()

	st := store.NewMemory()
	n := &recordingNotifier{}
	m := cart.NewManager(context.Background(), st, cart.WithNotifier(n))
	return m, n, st
}

func TestManagerAdd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("repeated adds accumulate into one line item", func(t *testing.T) {
		t.Parallel()

		m, _, _ := newManager(t)
		p := product("CB001", "Night Cream", 49.99, 39.99)

		require.NoError(t, m.Add(ctx, p, 1))
		require.NoError(t, m.Add(ctx, p, 2))
		require.NoError(t, m.Add(ctx, p, 3))

		items := m.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 6, items[0].Quantity)
	})

	t.Run("distinct products keep insertion order", func(t *testing.T) {
		t.Parallel()

		m, _, _ := newManager(t)

		require.NoError(t, m.Add(ctx, product("CB001", "Night Cream", 49.99, 39.99), 1))
		require.NoError(t, m.Add(ctx, product("CB002", "Face Wash", 24.99, 19.99), 1))

		items := m.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "CB001", items[0].ProductID)
		assert.Equal(t, "CB002", items[1].ProductID)
	})

	t.Run("notifications distinguish add and update", func(t *testing.T) {
		t.Parallel()

		m, n, _ := newManager(t)
		p := product("CB001", "Night Cream", 49.99, 39.99)

		require.NoError(t, m.Add(ctx, p, 1))
		require.NoError(t, m.Add(ctx, p, 1))

		require.Len(t, n.messages, 2)
		assert.Equal(t, "Night Cream added to cart successfully!", n.messages[0])
		assert.Equal(t, "Night Cream quantity updated in cart!", n.messages[1])
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		t.Parallel()

		m, _, _ := newManager(t)
		p := product("CB001", "Night Cream", 49.99, 39.99)

		assert.ErrorIs(t, m.Add(ctx, p, 0), cart.ErrInvalidQuantity)
		assert.ErrorIs(t, m.Add(ctx, p, -1), cart.ErrInvalidQuantity)
		assert.Empty(t, m.Items())
	})
}

func TestManagerRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes and names the item", func(t *testing.T) {
		t.Parallel()

		m, n, _ := newManager(t)
		require.NoError(t, m.Add(ctx, product("CB001", "Night Cream", 49.99, 39.99), 1))

		require.NoError(t, m.Remove(ctx, "CB001"))
		assert.Empty(t, m.Items())
		assert.Contains(t, n.messages, "Night Cream removed from cart")
	})

	t.Run("absent product is a silent no-op", func(t *testing.T) {
		t.Parallel()

		m, n, _ := newManager(t)

		require.NoError(t, m.Remove(ctx, "missing"))
		assert.Empty(t, n.messages)
	})
}

func TestManagerSetQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("overwrites quantity", func(t *testing.T) {
		t.Parallel()

		m, n, _ := newManager(t)
		require.NoError(t, m.Add(ctx, product("CB001", "Night Cream", 49.99, 39.99), 5))

		require.NoError(t, m.SetQuantity(ctx, "CB001", 2))

		items := m.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Contains(t, n.messages, "Night Cream quantity updated to 2")
	})

	t.Run("non-positive quantity behaves as remove", func(t *testing.T) {
		t.Parallel()

		for _, qty := range []int{0, -3} {
			m, _, _ := newManager(t)
			require.NoError(t, m.Add(ctx, product("CB001", "Night Cream", 49.99, 39.99), 5))

			require.NoError(t, m.SetQuantity(ctx, "CB001", qty))
			assert.Empty(t, m.Items())
		}
	})
}

func TestManagerTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("total and count over mixed cart", func(t *testing.T) {
		t.Parallel()

		m, _, _ := newManager(t)
		require.NoError(t, m.Add(ctx, product("A", "Product A", 10.00, 8.00), 2))
		require.NoError(t, m.Add(ctx, product("B", "Product B", 20.00, 15.00), 1))

		assert.True(t, m.Total().Equal(decimal.NewFromFloat(31.00)), "got %s", m.Total())
		assert.Equal(t, 3, m.Count())
	})

	t.Run("total invariant under mutation order", func(t *testing.T) {
		t.Parallel()

		a := product("A", "Product A", 10.00, 8.00)
		b := product("B", "Product B", 20.00, 15.00)

		first, _, _ := newManager(t)
		require.NoError(t, first.Add(ctx, a, 2))
		require.NoError(t, first.Add(ctx, b, 1))

		second, _, _ := newManager(t)
		require.NoError(t, second.Add(ctx, b, 1))
		require.NoError(t, second.Add(ctx, a, 1))
		require.NoError(t, second.Add(ctx, a, 3))
		require.NoError(t, second.SetQuantity(ctx, "A", 2))

		assert.True(t, first.Total().Equal(second.Total()))
		assert.Equal(t, first.Count(), second.Count())
	})

	t.Run("clear zeroes everything and always notifies", func(t *testing.T) {
		t.Parallel()

		m, n, _ := newManager(t)
		require.NoError(t, m.Add(ctx, product("A", "Product A", 10.00, 8.00), 4))

		require.NoError(t, m.Clear(ctx))
		assert.Zero(t, m.Count())
		assert.True(t, m.Total().IsZero())
		assert.Contains(t, n.messages, "Cart cleared successfully")

		// Clearing an already-empty cart still notifies.
		require.NoError(t, m.Clear(ctx))
		assert.Equal(t, 2, countOf(n.messages, "Cart cleared successfully"))
	})
}

func countOf(messages []string, want string) int {
	n := 0
	for _, m := range messages {
		if m == want {
			n++
		}
	}
	return n
}

func TestManagerPersistence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("store mirrors every mutation", func(t *testing.T) {
		t.Parallel()

		m, _, st := newManager(t)
		require.NoError(t, m.Add(ctx, product("CB001", "Night Cream", 49.99, 39.99), 2))

		var stored []cart.LineItem
		require.NoError(t, store.GetJSON(ctx, st, store.KeyCart, &stored))
		require.Len(t, stored, 1)
		assert.Equal(t, 2, stored[0].Quantity)
	})

	t.Run("reload round-trips line items", func(t *testing.T) {
		t.Parallel()

		st := store.NewMemory()
		m := cart.NewManager(ctx, st)
		require.NoError(t, m.Add(ctx, product("CB001", "Night Cream", 49.99, 39.99), 2))
		require.NoError(t, m.Add(ctx, product("CB004", "Lip Balm", 12.99, 9.99), 1))
		before := m.Items()

		reloaded := cart.NewManager(ctx, st)
		assert.Equal(t, before, reloaded.Items())
	})

	t.Run("corrupt stored cart hydrates empty", func(t *testing.T) {
		t.Parallel()

		st := store.NewMemory()
		require.NoError(t, st.Set(ctx, store.KeyCart, []byte("[{broken")))

		m := cart.NewManager(ctx, st)
		assert.Empty(t, m.Items())
	})
}
