package command

// GetProductQuery fetches a single product by id.
type GetProductQuery struct {
	ID string `json:"id" validate:"required"`
}

func (GetProductQuery) Kind() string { return "product.get" }

// ListProductsQuery returns a page of products.
type ListProductsQuery struct {
	Page     int `json:"page" validate:"gt=0"`
	PageSize int `json:"page_size" validate:"gt=0,lte=100"`
}

func (ListProductsQuery) Kind() string { return "product.list" }

// SearchProductsQuery matches product names case-insensitively.
type SearchProductsQuery struct {
	Term     string `json:"term" validate:"required,min=2"`
	Page     int    `json:"page" validate:"gt=0"`
	PageSize int    `json:"page_size" validate:"gt=0,lte=100"`
}

func (SearchProductsQuery) Kind() string { return "product.search" }

// GetLowStockProductsQuery returns every product below the low-stock threshold.
type GetLowStockProductsQuery struct{}

func (GetLowStockProductsQuery) Kind() string { return "product.low_stock" }

// GetProductsByCategoryQuery returns all products in one category.
type GetProductsByCategoryQuery struct {
	CategoryID string `json:"category_id" validate:"required"`
}

func (GetProductsByCategoryQuery) Kind() string { return "product.by_category" }

// GetRecentProductsQuery returns the most recently created products.
// Limit 0 means the default of 10; no upper bound is enforced here.
type GetRecentProductsQuery struct {
	Limit int `json:"limit" validate:"gte=0"`
}

func (GetRecentProductsQuery) Kind() string { return "product.recent" }

// GetCategoryQuery fetches a single category by id.
type GetCategoryQuery struct {
	ID string `json:"id" validate:"required"`
}

func (GetCategoryQuery) Kind() string { return "category.get" }

// ListCategoriesQuery returns a page of categories.
type ListCategoriesQuery struct {
	Page     int `json:"page" validate:"gt=0"`
	PageSize int `json:"page_size" validate:"gt=0,lte=100"`
}

func (ListCategoriesQuery) Kind() string { return "category.list" }

// GetDashboardQuery returns the aggregate inventory metrics.
type GetDashboardQuery struct{}

func (GetDashboardQuery) Kind() string { return "dashboard.get" }

// GetRecentAuditLogsQuery returns the most recent audit records.
// Limit 0 means the default of 10.
type GetRecentAuditLogsQuery struct {
	Limit int `json:"limit" validate:"gte=0"`
}

func (GetRecentAuditLogsQuery) Kind() string { return "audit.recent" }
