package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/cache"
	"stockroom/internal/command"
	"stockroom/internal/repository"
)

const dashboardCacheKey = cache.DashboardPrefix + "metrics"

// DashboardService computes the aggregate inventory metrics. The aggregates
// are independent reads; they are not required to reflect one consistent
// snapshot.
type DashboardService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.Cache
	logger     *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	c cache.Cache,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		products:   products,
		categories: categories,
		cache:      c,
		logger:     logger,
	}
}

// Get returns the dashboard metrics, served from cache when possible.
// Product counts per category are keyed by category name; counts for
// categories that no longer exist are keyed by their raw id.
func (s *DashboardService) Get(ctx context.Context, _ command.GetDashboardQuery) (*DashboardResponse, error) {
	raw, ok, err := s.cache.Get(ctx, dashboardCacheKey)
	if err != nil {
		s.logger.Debug("Cache read failed", zap.Error(err), zap.String("key", dashboardCacheKey))
	} else if ok {
		var cached DashboardResponse
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	totalProducts, err := s.products.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	totalStockValue, err := s.products.TotalStockValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("total stock value: %w", err)
	}

	lowStock, err := s.products.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("find low stock products: %w", err)
	}

	countsByID, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products by category: %w", err)
	}

	byCategory, err := s.resolveCategoryNames(ctx, countsByID)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		TotalProducts:      totalProducts,
		TotalStockValue:    totalStockValue,
		LowStockCount:      len(lowStock),
		ProductsByCategory: byCategory,
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, string(encoded), cache.DefaultTTL); err != nil {
			s.logger.Debug("Cache write failed", zap.Error(err), zap.String("key", dashboardCacheKey))
		}
	}

	return resp, nil
}

func (s *DashboardService) resolveCategoryNames(ctx context.Context, counts map[uuid.UUID]int) (map[string]int, error) {
	byCategory := make(map[string]int, len(counts))
	if len(counts) == 0 {
		return byCategory, nil
	}

	ids := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}

	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find categories by IDs: %w", err)
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	for id, count := range counts {
		name, ok := names[id]
		if !ok {
			// Category was deleted without cascading; keep the count visible.
			name = id.String()
		}
		byCategory[name] = count
	}

	return byCategory, nil
}
