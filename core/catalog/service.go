package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cbcbeauty/storefront/core/logger"
	"github.com/cbcbeauty/storefront/pkg/async"
)

// ErrMissingProductID is returned when an operation is attempted without a
// product identifier.
var ErrMissingProductID = errors.New("catalog: missing product id")

// Backend is the subset of the REST client the catalog service needs.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Service exposes catalog and stock operations over the backend.
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

// NewService creates a catalog service over the given backend.
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

// All returns the full product catalog.
func (s *Service) All(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.backend.Get(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	return products, nil
}

// Get fetches a single product by identifier.
func (s *Service) Get(ctx context.Context, productID string) (Product, error) {
	if productID == "" {
		return Product{}, ErrMissingProductID
	}

	var product Product
	if err := s.backend.Get(ctx, "/products/"+url.PathEscape(productID), &product); err != nil {
		return Product{}, fmt.Errorf("catalog: get product %s: %w", productID, err)
	}
	return product, nil
}

// Search returns products matching the substring query.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	var products []Product
	if err := s.backend.Get(ctx, "/products/search/"+url.PathEscape(query), &products); err != nil {
		return nil, fmt.Errorf("catalog: search %q: %w", query, err)
	}
	return products, nil
}

// Create adds a product to the catalog. Admin only; the backend enforces the
// role, the client renders access-denied before ever calling this for
// non-admin sessions.
func (s *Service) Create(ctx context.Context, product Product) error {
	if err := s.backend.Post(ctx, "/products", product, nil); err != nil {
		return fmt.Errorf("catalog: create product: %w", err)
	}

	s.logger.Info("product created",
		logger.Component("catalog"),
		logger.ProductID(product.ProductID))
	return nil
}

// Update replaces a product record. Admin only.
func (s *Service) Update(ctx context.Context, productID string, product Product) error {
	if productID == "" {
		return ErrMissingProductID
	}

	if err := s.backend.Put(ctx, "/products/"+url.PathEscape(productID), product, nil); err != nil {
		return fmt.Errorf("catalog: update product %s: %w", productID, err)
	}

	s.logger.Info("product updated",
		logger.Component("catalog"),
		logger.ProductID(productID))
	return nil
}

// Delete removes a product from the catalog. Admin only.
func (s *Service) Delete(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrMissingProductID
	}

	if err := s.backend.Delete(ctx, "/products/"+url.PathEscape(productID)); err != nil {
		return fmt.Errorf("catalog: delete product %s: %w", productID, err)
	}

	s.logger.Info("product deleted",
		logger.Component("catalog"),
		logger.ProductID(productID))
	return nil
}

// UpdateStock decrements a product's stock by quantitySold, flooring at zero,
// and stamps UpdatedAt. Read-modify-write: the backend holds the only
// authoritative copy.
func (s *Service) UpdateStock(ctx context.Context, productID string, quantitySold int) (Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return Product{}, err
	}

	product.Stock = max(0, product.Stock-quantitySold)
	product.UpdatedAt = time.Now().UTC()

	if err := s.Update(ctx, productID, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Sold pairs a product identifier with the quantity taken by an order.
type Sold struct {
	ProductID string
	Quantity  int
}

// ReduceStockForOrder applies UpdateStock for every sold item in parallel and
// returns the updated products in item order. Individual failures are joined
// into a single error.
func (s *Service) ReduceStockForOrder(ctx context.Context, items []Sold) ([]Product, error) {
	futures := make([]*async.Future[Product], len(items))
	for i, item := range items {
		futures[i] = async.Async(ctx, item, func(ctx context.Context, it Sold) (Product, error) {
			return s.UpdateStock(ctx, it.ProductID, it.Quantity)
		})
	}

	products, err := async.WaitAll(futures...)
	if err != nil {
		return products, fmt.Errorf("catalog: reduce stock for order: %w", err)
	}

	s.logger.Info("stock reduced for order",
		logger.Component("catalog"),
		logger.Count("items", len(items)))
	return products, nil
}

// InStock reports whether the product has at least quantity units available.
// Backend failures report false, matching the storefront's conservative
// behavior when stock cannot be confirmed.
func (s *Service) InStock(ctx context.Context, productID string, quantity int) bool {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return false
	}
	return product.Stock >= quantity
}

// StockStatus classifies the product's availability, reporting
// StockStatusNotFound when the product cannot be fetched.
func (s *Service) StockStatus(ctx context.Context, productID string) StockStatus {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return StockStatusNotFound
	}
	return product.Availability()
}
