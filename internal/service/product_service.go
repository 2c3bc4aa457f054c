package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/apperrors"
	"stockroom/internal/audit"
	"stockroom/internal/cache"
	"stockroom/internal/command"
	"stockroom/internal/domain"
	"stockroom/internal/identity"
	"stockroom/internal/repository"
)

// DefaultRecentLimit is used when a recent-items query does not specify one.
const DefaultRecentLimit = 10

// ProductService handles all product commands and queries. Mutations persist
// first, then record an audit entry and invalidate cache prefixes; both side
// effects are best-effort and never fail the operation.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.Cache
	recorder   *audit.Recorder
	idp        identity.Provider
	logger     *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	c cache.Cache,
	recorder *audit.Recorder,
	idp identity.Provider,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		cache:      c,
		recorder:   recorder,
		idp:        idp,
		logger:     logger,
	}
}

// resolveCategory parses and looks up the category a write refers to. The
// schema carries no foreign key, so this check is the only existence guard.
func (s *ProductService) resolveCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NotFound("category", raw)
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return uuid.Nil, apperrors.NotFound("category", raw)
		}
		return uuid.Nil, fmt.Errorf("find category: %w", err)
	}
	return categoryID, nil
}

// Create allocates a new product and persists it after checking the target
// category exists.
func (s *ProductService) Create(ctx context.Context, cmd command.CreateProductCommand) (*ProductResponse, error) {
	categoryID, err := s.resolveCategory(ctx, cmd.CategoryID)
	if err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(cmd.Name, cmd.Description, cmd.Price, categoryID, cmd.ImageURL, cmd.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.recorder.Record(ctx, s.idp.Current(ctx), "create", "product", product.ID.String(), product.Name, "")
	s.invalidateProductCaches(ctx)

	resp := toProductResponse(product)
	return &resp, nil
}

// Update rewrites all mutable fields of an existing product.
func (s *ProductService) Update(ctx context.Context, cmd command.UpdateProductCommand) (*ProductResponse, error) {
	id, err := uuid.Parse(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFound("product", cmd.ID)
	}
	categoryID, err := s.resolveCategory(ctx, cmd.CategoryID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.NotFound("product", cmd.ID)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if err := product.Update(cmd.Name, cmd.Description, cmd.Price, categoryID, cmd.ImageURL, cmd.Stock); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.NotFound("product", cmd.ID)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.recorder.Record(ctx, s.idp.Current(ctx), "update", "product", product.ID.String(), product.Name, "")
	s.invalidateProductCaches(ctx)

	resp := toProductResponse(product)
	return &resp, nil
}

// Delete removes a product. The product's name is captured for the audit
// record before removal.
func (s *ProductService) Delete(ctx context.Context, cmd command.DeleteProductCommand) (*ProductResponse, error) {
	id, err := uuid.Parse(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFound("product", cmd.ID)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.NotFound("product", cmd.ID)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.NotFound("product", cmd.ID)
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}

	s.recorder.Record(ctx, s.idp.Current(ctx), "delete", "product", product.ID.String(), product.Name, "")
	s.invalidateProductCaches(ctx)

	resp := toProductResponse(product)
	return &resp, nil
}

// Get fetches a single product by id.
func (s *ProductService) Get(ctx context.Context, q command.GetProductQuery) (*ProductResponse, error) {
	id, err := uuid.Parse(q.ID)
	if err != nil {
		return nil, apperrors.NotFound("product", q.ID)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.NotFound("product", q.ID)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// List returns a page of products, served from cache when possible.
func (s *ProductService) List(ctx context.Context, q command.ListProductsQuery) (*ProductListResponse, error) {
	key := fmt.Sprintf("%slist:%d:%d", cache.ProductPrefix, q.Page, q.PageSize)

	var cached ProductListResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	products, total, err := s.products.List(ctx, q.Page, q.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	resp := &ProductListResponse{
		Products: toProductResponses(products),
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// Search matches product names case-insensitively.
func (s *ProductService) Search(ctx context.Context, q command.SearchProductsQuery) (*ProductListResponse, error) {
	products, total, err := s.products.SearchByName(ctx, q.Term, q.Page, q.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return &ProductListResponse{
		Products: toProductResponses(products),
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// LowStock returns every product below the low-stock threshold.
func (s *ProductService) LowStock(ctx context.Context, _ command.GetLowStockProductsQuery) ([]ProductResponse, error) {
	products, err := s.products.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("find low stock products: %w", err)
	}
	return toProductResponses(products), nil
}

// ByCategory returns every product in one category.
func (s *ProductService) ByCategory(ctx context.Context, q command.GetProductsByCategoryQuery) ([]ProductResponse, error) {
	categoryID, err := uuid.Parse(q.CategoryID)
	if err != nil {
		return nil, apperrors.NotFound("category", q.CategoryID)
	}

	products, err := s.products.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find products by category: %w", err)
	}
	return toProductResponses(products), nil
}

// Recent returns the most recently created products, defaulting to 10.
func (s *ProductService) Recent(ctx context.Context, q command.GetRecentProductsQuery) ([]ProductResponse, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultRecentLimit
	}

	products, err := s.products.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("find recent products: %w", err)
	}
	return toProductResponses(products), nil
}

// invalidateProductCaches clears product listings and dashboard aggregates.
// Invalidation is coarse by prefix and best-effort: failures are logged and
// the write still succeeds.
func (s *ProductService) invalidateProductCaches(ctx context.Context) {
	for _, prefix := range []string{cache.ProductPrefix, cache.DashboardPrefix} {
		if err := s.cache.RemoveByPrefix(ctx, prefix); err != nil {
			s.logger.Warn("Failed to invalidate cache prefix",
				zap.Error(err),
				zap.String("prefix", prefix),
			)
		}
	}
}

func (s *ProductService) cacheGet(ctx context.Context, key string, out any) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Debug("Cache read failed", zap.Error(err), zap.String("key", key))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Debug("Cache entry corrupt", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (s *ProductService) cacheSet(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), cache.DefaultTTL); err != nil {
		s.logger.Debug("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}
