// Package command defines the typed request objects routed through the
// dispatcher, along with the validation rules each must satisfy before its
// handler runs. Kind strings identify exactly one handler per request type.
package command

// CreateProductCommand creates a new product.
type CreateProductCommand struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=1000"`
	Price       float64 `json:"price" validate:"gt=0"`
	CategoryID  string  `json:"category_id" validate:"required"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=500"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (CreateProductCommand) Kind() string { return "product.create" }

// UpdateProductCommand rewrites all mutable fields of an existing product.
// Update rules are stricter than create: minimum lengths and upper caps.
type UpdateProductCommand struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required,min=10,max=1000"`
	Price       float64 `json:"price" validate:"gt=0,lte=1000000"`
	CategoryID  string  `json:"category_id" validate:"required"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=500"`
	Stock       int     `json:"stock" validate:"gte=0,lte=100000"`
}

func (UpdateProductCommand) Kind() string { return "product.update" }

// DeleteProductCommand removes a product by id.
type DeleteProductCommand struct {
	ID string `json:"id" validate:"required"`
}

func (DeleteProductCommand) Kind() string { return "product.delete" }

// CreateCategoryCommand creates a new category.
type CreateCategoryCommand struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

func (CreateCategoryCommand) Kind() string { return "category.create" }

// UpdateCategoryCommand rewrites name and description of an existing category.
type UpdateCategoryCommand struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

func (UpdateCategoryCommand) Kind() string { return "category.update" }

// DeleteCategoryCommand removes a category by id. Products referencing the
// category are deliberately left untouched.
type DeleteCategoryCommand struct {
	ID string `json:"id" validate:"required"`
}

func (DeleteCategoryCommand) Kind() string { return "category.delete" }
