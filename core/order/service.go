package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/cbcbeauty/storefront/core/logger"
)

// ErrMissingOrderID is returned when an operation is attempted without an
// order identifier.
var ErrMissingOrderID = errors.New("order: missing order id")

// Backend is the subset of the REST client the order service needs.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

// Service exposes the order endpoints.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger configures structured logging for the service.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewService creates an order service over the given backend.
func NewService(backend Backend, opts ...ServiceOption) *Service {
	s := &Service{
		backend: backend,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create places an order and returns the backend's record, including the
// generated order identifier.
func (s *Service) Create(ctx context.Context, o Order) (Order, error) {
	if o.Status == "" {
		o.Status = StatusPending
	}

	var created Order
	if err := s.backend.Post(ctx, "/orders", o, &created); err != nil {
		return Order{}, fmt.Errorf("order: create: %w", err)
	}

	s.logger.Info("order placed",
		logger.Component("order"),
		logger.OrderID(created.OrderID),
		logger.Count("items", len(o.OrderedItems)))
	return created, nil
}

// All lists the current user's orders. The backend answers either a bare
// array or a {"data": [...]} wrapper; both shapes are accepted.
func (s *Service) All(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := s.backend.Get(ctx, "/orders", &raw); err != nil {
		return nil, fmt.Errorf("order: list: %w", err)
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}

	var wrapper struct {
		Data []Order `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("order: unexpected list response: %w", err)
	}
	return wrapper.Data, nil
}

// Get fetches one order by identifier.
func (s *Service) Get(ctx context.Context, orderID string) (Order, error) {
	if orderID == "" {
		return Order{}, ErrMissingOrderID
	}

	var o Order
	if err := s.backend.Get(ctx, "/orders/"+url.PathEscape(orderID), &o); err != nil {
		return Order{}, fmt.Errorf("order: get %s: %w", orderID, err)
	}
	return o, nil
}

// Update patches an order's status and notes. Admin only.
func (s *Service) Update(ctx context.Context, orderID string, params UpdateParams) (Order, error) {
	if orderID == "" {
		return Order{}, ErrMissingOrderID
	}

	var updated Order
	if err := s.backend.Put(ctx, "/orders/"+url.PathEscape(orderID), params, &updated); err != nil {
		return Order{}, fmt.Errorf("order: update %s: %w", orderID, err)
	}

	s.logger.Info("order updated",
		logger.Component("order"),
		logger.OrderID(orderID),
		slog.String("status", string(params.Status)))
	return updated, nil
}
