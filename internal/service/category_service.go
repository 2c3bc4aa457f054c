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

// CategoryService handles all category commands and queries.
type CategoryService struct {
	categories repository.CategoryRepository
	cache      cache.Cache
	recorder   *audit.Recorder
	idp        identity.Provider
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(
	categories repository.CategoryRepository,
	c cache.Cache,
	recorder *audit.Recorder,
	idp identity.Provider,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		cache:      c,
		recorder:   recorder,
		idp:        idp,
		logger:     logger,
	}
}

// Create allocates a new category. A duplicate name is reported as a
// conflict, surfaced by the unique index.
func (s *CategoryService) Create(ctx context.Context, cmd command.CreateCategoryCommand) (*CategoryResponse, error) {
	category, err := domain.NewCategory(cmd.Name, cmd.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, apperrors.Conflict("category", "name already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.recorder.Record(ctx, s.idp.Current(ctx), "create", "category", category.ID.String(), category.Name, "")
	s.invalidateCategoryCaches(ctx)

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Update rewrites name and description of an existing category.
func (s *CategoryService) Update(ctx context.Context, cmd command.UpdateCategoryCommand) (*CategoryResponse, error) {
	id, err := uuid.Parse(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFound("category", cmd.ID)
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperrors.NotFound("category", cmd.ID)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if err := category.Update(cmd.Name, cmd.Description); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperrors.NotFound("category", cmd.ID)
		}
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, apperrors.Conflict("category", "name already exists")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.recorder.Record(ctx, s.idp.Current(ctx), "update", "category", category.ID.String(), category.Name, "")
	s.invalidateCategoryCaches(ctx)

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Its name is captured for the audit record
// before removal. Products referencing the category are deliberately left
// untouched; there is no dependent-product check.
func (s *CategoryService) Delete(ctx context.Context, cmd command.DeleteCategoryCommand) (*CategoryResponse, error) {
	id, err := uuid.Parse(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFound("category", cmd.ID)
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperrors.NotFound("category", cmd.ID)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperrors.NotFound("category", cmd.ID)
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}

	s.recorder.Record(ctx, s.idp.Current(ctx), "delete", "category", category.ID.String(), category.Name, "")
	s.invalidateCategoryCaches(ctx)

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Get fetches a single category by id.
func (s *CategoryService) Get(ctx context.Context, q command.GetCategoryQuery) (*CategoryResponse, error) {
	id, err := uuid.Parse(q.ID)
	if err != nil {
		return nil, apperrors.NotFound("category", q.ID)
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperrors.NotFound("category", q.ID)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// List returns a page of categories, served from cache when possible.
func (s *CategoryService) List(ctx context.Context, q command.ListCategoriesQuery) (*CategoryListResponse, error) {
	key := fmt.Sprintf("%slist:%d:%d", cache.CategoryPrefix, q.Page, q.PageSize)

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Debug("Cache read failed", zap.Error(err), zap.String("key", key))
	} else if ok {
		var cached CategoryListResponse
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	categories, total, err := s.categories.List(ctx, q.Page, q.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	items := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, toCategoryResponse(c))
	}

	resp := &CategoryListResponse{
		Categories: items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), cache.DefaultTTL); err != nil {
			s.logger.Debug("Cache write failed", zap.Error(err), zap.String("key", key))
		}
	}

	return resp, nil
}

// invalidateCategoryCaches clears category listings plus product listings and
// dashboard aggregates, both of which embed category data. Best-effort.
func (s *CategoryService) invalidateCategoryCaches(ctx context.Context) {
	for _, prefix := range []string{cache.CategoryPrefix, cache.ProductPrefix, cache.DashboardPrefix} {
		if err := s.cache.RemoveByPrefix(ctx, prefix); err != nil {
			s.logger.Warn("Failed to invalidate cache prefix",
				zap.Error(err),
				zap.String("prefix", prefix),
			)
		}
	}
}
