package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cbcbeauty/storefront/core/cart"
	"github.com/cbcbeauty/storefront/core/catalog"
	"github.com/cbcbeauty/storefront/core/logger"
	"github.com/cbcbeauty/storefront/core/order"
)

// Cart is the line-item source the checkout drains.
type Cart interface {
	Items() []cart.LineItem
	Total() decimal.Decimal
	Clear(ctx context.Context) error
}

// Orders creates the order record on the backend.
type Orders interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
}

// Stock reduces catalog stock for the sold items.
type Stock interface {
	ReduceStockForOrder(ctx context.Context, items []catalog.Sold) ([]catalog.Product, error)
}

// Notifier receives the checkout's user-facing messages.
type Notifier interface {
	ShowSuccess(message string) uuid.UUID
	ShowError(message string) uuid.UUID
}

// Payment is the receipt of a simulated card charge.
type Payment struct {
	TransactionID string
	CardLast4     string
	Amount        decimal.Decimal
}

// Confirmation is the result of a successful order placement.
type Confirmation struct {
	Order   order.Order
	Payment *Payment // nil for cash on delivery
}

// Service runs the checkout flow end to end.
type Service struct {
	cart     Cart
	orders   Orders
	stock    Stock
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier routes checkout notifications to the given dispatcher.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger configures structured logging for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// NewService creates a checkout service over the cart, order, and catalog
// collaborators.
func NewService(c Cart, o Orders, st Stock, opts ...Option) *Service {
	s := &Service{
		cart:   c,
		orders: o,
		stock:  st,
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder validates the form, charges the card when paying by card,
// creates the order, reduces stock for the sold items, and clears the cart.
//
// Validation failures are reported as FieldErrors before any network call.
// Card orders are created with status paid, cash-on-delivery orders with
// status pending. Stock reduction and cart clearing happen after the order
// exists on the backend; their failures are logged but do not undo the order.
func (s *Service) PlaceOrder(ctx context.Context, form Form) (Confirmation, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	if form.PaymentMethod != PaymentCard && form.PaymentMethod != PaymentCashOnDelivery {
		return Confirmation{}, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, form.PaymentMethod)
	}

	if err := form.Validate(); err != nil {
		s.showError("Please fill in all required fields")
		return Confirmation{}, err
	}

	var payment *Payment
	status := order.StatusPending
	if form.PaymentMethod == PaymentCard {
		if err := form.Card.Validate(); err != nil {
			return Confirmation{}, err
		}
		payment = s.chargeCard(form.Card)
		status = order.StatusPaid
	}

	draft := order.Order{
		Name:          form.CustomerName(),
		Address:       form.Address,
		Phone:         form.Phone,
		OrderedItems:  orderedItems(items),
		TotalAmount:   s.cart.Total(),
		PaymentMethod: form.PaymentMethod,
		Status:        status,
	}
	if payment != nil {
		payment.Amount = draft.TotalAmount
	}

	placed, err := s.orders.Create(ctx, draft)
	if err != nil {
		if form.PaymentMethod == PaymentCard {
			s.showError(backendMessage(err, "Payment failed. Please try again."))
		} else {
			s.showError(backendMessage(err, "Failed to place order. Please try again."))
		}
		return Confirmation{}, fmt.Errorf("checkout: place order: %w", err)
	}

	s.logger.Info("order placed",
		logger.Component("checkout"),
		logger.OrderID(placed.OrderID),
		slog.String("payment_method", form.PaymentMethod),
		logger.Count("items", len(items)))

	if _, err := s.stock.ReduceStockForOrder(ctx, soldItems(items)); err != nil {
		s.logger.Warn("stock reduction after order failed",
			logger.Component("checkout"),
			logger.OrderID(placed.OrderID),
			logger.Error(err))
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Warn("cart clear after order failed",
			logger.Component("checkout"),
			logger.OrderID(placed.OrderID),
			logger.Error(err))
	}

	if form.PaymentMethod == PaymentCashOnDelivery {
		s.showSuccess("Order placed successfully! You will pay on delivery.")
	} else {
		s.showSuccess("Order placed successfully!")
	}

	return Confirmation{Order: placed, Payment: payment}, nil
}

// chargeCard simulates the card charge. The card has been validated; the
// receipt carries a timestamp-based transaction reference.
func (s *Service) chargeCard(card Card) *Payment {
	return &Payment{
		TransactionID: fmt.Sprintf("txn_%d", s.now().UnixMilli()),
		CardLast4:     card.Last4(),
	}
}

func (s *Service) showSuccess(message string) {
	if s.notifier != nil {
		s.notifier.ShowSuccess(message)
	}
}

func (s *Service) showError(message string) {
	if s.notifier != nil {
		s.notifier.ShowError(message)
	}
}

func orderedItems(items []cart.LineItem) []order.Item {
	out := make([]order.Item, len(items))
	for i, li := range items {
		out[i] = order.Item{ProductID: li.ProductID, Qty: li.Quantity}
	}
	return out
}

func soldItems(items []cart.LineItem) []catalog.Sold {
	out := make([]catalog.Sold, len(items))
	for i, li := range items {
		out[i] = catalog.Sold{ProductID: li.ProductID, Quantity: li.Quantity}
	}
	return out
}

// backendMessage extracts the backend's error message when the failure came
// from a rejected request, falling back otherwise.
func backendMessage(err error, fallback string) string {
	var be interface{ BackendMessage() string }
	if errors.As(err, &be) && be.BackendMessage() != "" {
		return be.BackendMessage()
	}
	return fallback
}
