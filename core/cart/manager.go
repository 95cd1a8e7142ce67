package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cbcbeauty/storefront/core/catalog"
	"github.com/cbcbeauty/storefront/core/logger"
	"github.com/cbcbeauty/storefront/core/store"
)

// Notifier receives the user-facing messages cart mutations emit. All cart
// notifications carry success severity, matching the original storefront.
type Notifier interface {
	ShowSuccess(message string) uuid.UUID
}

// Manager owns the cart's line items for the duration of the process.
type Manager struct {
	mu       sync.Mutex
	items    []LineItem
	store    store.Store
	notifier Notifier
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNotifier routes mutation notifications to the given dispatcher.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithLogger configures structured logging for the manager.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = log
	}
}

// NewManager creates a cart manager hydrated from the store. An absent or
// unparseable stored cart yields an empty one; hydration never fails loudly
// since discarding corrupt local state is routine for this client.
func NewManager(ctx context.Context, st store.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  st,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	var items []LineItem
	if err := store.GetJSON(ctx, st, store.KeyCart, &items); err != nil {
		if !store.IsNotFound(err) {
			m.logger.Warn("discarding unparseable stored cart",
				logger.Component("cart"),
				logger.Error(err))
		}
		return m
	}
	m.items = items
	return m
}

// Add appends a line item for the product, or accumulates quantity when a
// line item for the same ProductID already exists. Quantity must be >= 1.
// Stock-bound checks are the caller's responsibility.
func (m *Manager) Add(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if product.ProductID == "" {
		return ErrMissingProductID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	updated := false
	for i := range m.items {
		if m.items[i].ProductID == product.ProductID {
			m.items[i].Quantity += quantity
			updated = true
			break
		}
	}
	if !updated {
		m.items = append(m.items, LineItem{Product: product, Quantity: quantity})
	}

	if err := m.persistLocked(ctx); err != nil {
		return err
	}

	if m.notifier != nil {
		if updated {
			m.notifier.ShowSuccess(fmt.Sprintf("%s quantity updated in cart!", product.ProductName))
		} else {
			m.notifier.ShowSuccess(fmt.Sprintf("%s added to cart successfully!", product.ProductName))
		}
	}
	return nil
}

// Remove deletes the line item for productID. Removing an absent product is
// a silent no-op: no notification, no error.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrMissingProductID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.removeLocked(ctx, productID)
}

// SetQuantity overwrites the line item's quantity. A non-positive quantity
// removes the line item entirely, equivalent to Remove.
func (m *Manager) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrMissingProductID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity <= 0 {
		return m.removeLocked(ctx, productID)
	}

	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity = quantity

			if err := m.persistLocked(ctx); err != nil {
				return err
			}
			if m.notifier != nil {
				m.notifier.ShowSuccess(fmt.Sprintf("%s quantity updated to %d", m.items[i].ProductName, quantity))
			}
			return nil
		}
	}
	return nil
}

// Clear empties the cart unconditionally and always notifies.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil

	if err := m.persistLocked(ctx); err != nil {
		return err
	}
	if m.notifier != nil {
		m.notifier.ShowSuccess("Cart cleared successfully")
	}
	return nil
}

// Total returns the sum of discounted unit price times quantity across all
// line items. Pure, no side effects.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, li := range m.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Count returns the sum of quantities across all line items. Pure.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, li := range m.items {
		count += li.Quantity
	}
	return count
}

// Items returns a value copy of the line-item sequence in insertion order.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// removeLocked deletes the matching line item and notifies, naming the
// removed product. Callers must hold m.mu.
func (m *Manager) removeLocked(ctx context.Context, productID string) error {
	for i := range m.items {
		if m.items[i].ProductID == productID {
			name := m.items[i].ProductName
			m.items = append(m.items[:i], m.items[i+1:]...)

			if err := m.persistLocked(ctx); err != nil {
				return err
			}
			if m.notifier != nil {
				m.notifier.ShowSuccess(fmt.Sprintf("%s removed from cart", name))
			}
			return nil
		}
	}
	return nil
}

// persistLocked re-serializes the full cart to the store. Callers must hold
// m.mu; the store is a same-tick mirror of the in-memory state.
func (m *Manager) persistLocked(ctx context.Context) error {
	items := m.items
	if items == nil {
		items = []LineItem{}
	}
	if err := store.SetJSON(ctx, m.store, store.KeyCart, items); err != nil {
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}
