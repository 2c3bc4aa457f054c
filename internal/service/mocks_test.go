package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/identity"
	"stockroom/internal/repository"
)

// mockProductRepo is an in-memory ProductRepository for service tests.
type mockProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product

	createErr error
	updateErr error
	deleteErr error
	findErr   error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, id := range ids {
		if product, ok := m.products[id]; ok {
			cp := *product
			out = append(out, &cp)
		}
	}
	return out, nil
}

// all returns every product newest first, ties broken by id descending, the
// same ordering the storage layer guarantees.
func (m *mockProductRepo) all() []*domain.Product {
	out := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		cp := *product
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (m *mockProductRepo) List(ctx context.Context, page, pageSize int) ([]*domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.all()
	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []*domain.Product{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *mockProductRepo) SearchByName(ctx context.Context, term string, page, pageSize int) ([]*domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []*domain.Product{}
	for _, product := range m.all() {
		if strings.Contains(strings.ToLower(product.Name), strings.ToLower(term)) {
			matched = append(matched, product)
		}
	}
	total := len(matched)
	start := (page - 1) * pageSize
	if start >= total {
		return []*domain.Product{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *mockProductRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, product := range m.all() {
		if product.CategoryID == categoryID {
			out = append(out, product)
		}
	}
	return out, nil
}

func (m *mockProductRepo) FindLowStock(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, product := range m.all() {
		if product.IsLowStock() {
			out = append(out, product)
		}
	}
	return out, nil
}

func (m *mockProductRepo) FindRecent(ctx context.Context, limit int) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.all()
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockProductRepo) CountAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products), nil
}

func (m *mockProductRepo) TotalStockValue(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, product := range m.products {
		total += product.StockValue()
	}
	return total, nil
}

func (m *mockProductRepo) CountByCategory(ctx context.Context) (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, product := range m.products {
		counts[product.CategoryID]++
	}
	return counts, nil
}

// mockCategoryRepo is an in-memory CategoryRepository for service tests.
type mockCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category

	createErr error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*domain.Category)}
}

// seed inserts a category directly, bypassing Create's name-uniqueness check.
func (m *mockCategoryRepo) seed(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, _ := domain.NewCategory(name, "Seeded for testing")
	m.categories[category.ID] = category
	return category.ID
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	for id, existing := range m.categories {
		if id != category.ID && existing.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *category
	return &cp, nil
}

func (m *mockCategoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Category{}
	for _, id := range ids {
		if category, ok := m.categories[id]; ok {
			cp := *category
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockCategoryRepo) List(ctx context.Context, page, pageSize int) ([]*domain.Category, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		cp := *category
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() > all[j].ID.String()
	})
	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []*domain.Category{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// mockCache is an in-memory Cache that records prefix invalidations.
type mockCache struct {
	mu            sync.Mutex
	entries       map[string]string
	removedPrefix []string
	removeErr     error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]string)}
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.entries[key]
	return val, ok, nil
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *mockCache) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *mockCache) RemoveByPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removedPrefix = append(m.removedPrefix, prefix)
	if m.removeErr != nil {
		return m.removeErr
	}
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *mockCache) removedPrefixes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.removedPrefix...)
}

// mockAuditRepo records audit entries in order of arrival.
type mockAuditRepo struct {
	mu        sync.Mutex
	entries   []*domain.AuditLog
	createErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *entry
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockAuditRepo) FindRecent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditLog, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockAuditRepo) recorded() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog{}, m.entries...)
}

// staticIdentity always reports the same acting user.
type staticIdentity struct {
	user identity.User
}

func (s staticIdentity) Current(ctx context.Context) identity.User {
	return s.user
}
