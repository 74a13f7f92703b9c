// Package catalog serves the product list the sales page sells from. The
// remote table is the source of truth when reachable; a cache slot and the
// built-in seed keep the register selling without it.
package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

var validate = validator.New()

// Cache is the local fallback slot for the product list.
type Cache interface {
	ReadProducts(ctx context.Context) ([]models.Product, error)
	WriteProducts(ctx context.Context, products []models.Product) error
}

// AddProductParams is the validated input for a new catalog entry.
type AddProductParams struct {
	Name        string `validate:"required"`
	Price       decimal.Decimal
	Category    enums.ProductCategory `validate:"required"`
	Description string
}

// Service is the product directory for one register session.
type Service struct {
	mu       sync.RWMutex
	products []models.Product
	repo     Repository
	cache    Cache
	logg     *logger.Logger
}

// ServiceParams configure the catalog service.
type ServiceParams struct {
	Repository Repository
	Cache      Cache
	Logger     *logger.Logger
}

// NewService builds a catalog service. Repository may be nil for an offline
// session.
func NewService(params ServiceParams) (*Service, error) {
	if params.Cache == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: cache is required")
	}
	if params.Logger == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: logger is required")
	}
	return &Service{
		repo:  params.Repository,
		cache: params.Cache,
		logg:  params.Logger,
	}, nil
}

// Load hydrates the catalog: remote table first, then the cache slot, then
// the built-in seed.
func (s *Service) Load(ctx context.Context) error {
	if s.repo != nil {
		products, err := s.repo.ListActive(ctx)
		if err == nil && len(products) > 0 {
			s.replace(ctx, products)
			return nil
		}
		if err != nil {
			s.logg.Error(ctx, "catalog: remote load failed, falling back to cache", err)
		}
	}

	products, err := s.cache.ReadProducts(ctx)
	if err != nil {
		s.logg.Error(ctx, "catalog: cached products unreadable, using seed", err)
		products = nil
	}
	if len(products) == 0 {
		products = SeedProducts()
	}
	s.replace(ctx, products)
	return nil
}

func (s *Service) replace(ctx context.Context, products []models.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	s.persist(ctx, products)
}

// snapshotLocked copies the list for use outside the lock. Callers must hold
// s.mu.
func (s *Service) snapshotLocked() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) persist(ctx context.Context, products []models.Product) {
	if err := s.cache.WriteProducts(ctx, products); err != nil {
		s.logg.Error(ctx, "catalog: failed to persist product list", err)
	}
}

// List returns the active products in catalog order.
func (s *Service) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get finds one product by id.
func (s *Service) Get(id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			return &product, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("product %q not found", id))
}

// Add validates and records a new product. The remote write is attempted
// when configured; the local list and cache are updated regardless, matching
// the history store's dual-write discipline.
func (s *Service) Add(ctx context.Context, params AddProductParams) (*models.Product, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "invalid product")
	}
	if params.Price.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "product price cannot be negative")
	}
	if !params.Category.IsValid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("unknown category %q", params.Category))
	}

	product := models.Product{
		ID:        newProductID(params.Category),
		Name:      params.Name,
		Price:     params.Price,
		Category:  params.Category,
		IsActive:  true,
		IsSpecial: params.Category == enums.ProductCategorySpecials,
	}
	if desc := strings.TrimSpace(params.Description); desc != "" {
		product.Description = &desc
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, &product); err != nil {
			s.logg.Error(ctx, "catalog: remote create failed, keeping product locally", err)
		}
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return &product, nil
}

// Remove deactivates a product. Orders that already sold it keep their
// denormalized snapshots.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if s.repo != nil {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			s.logg.Error(ctx, "catalog: remote deactivate failed, removing locally", err)
		}
	}

	s.mu.Lock()
	next := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		if product.ID == id {
			continue
		}
		next = append(next, product)
	}
	s.products = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return nil
}

func newProductID(category enums.ProductCategory) string {
	prefix := string(category)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return fmt.Sprintf("%s_%s_%04x", prefix, stamp, rand.Intn(0x10000))
}
