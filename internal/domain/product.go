package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var ErrInvalidProduct = errors.New("invalid product")

const (
	productNameMaxLen = 200
	productDescMaxLen = 1000
)

// Product represents a product in the catalog. Fields are only mutated
// through NewProduct and Update so the invariants hold at all times.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct creates a product with a fresh identity and current timestamps.
func NewProduct(name, description string, price float64, categoryID uuid.UUID, imageURL string, stock int) (*Product, error) {
	if err := validateProduct(name, description, price, categoryID, stock); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update rewrites all mutable fields and refreshes UpdatedAt. CreatedAt is
// never touched. The same invariants as NewProduct are re-checked here,
// independent of any validation done upstream.
func (p *Product) Update(name, description string, price float64, categoryID uuid.UUID, imageURL string, stock int) error {
	if err := validateProduct(name, description, price, categoryID, stock); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.Price = price
	p.CategoryID = categoryID
	p.ImageURL = imageURL
	p.Stock = stock
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsLowStock reports whether the product's stock is below LowStockThreshold.
func (p *Product) IsLowStock() bool {
	return StockQuantity(p.Stock).IsLow()
}

// IsOutOfStock reports whether the product has no units left.
func (p *Product) IsOutOfStock() bool {
	return StockQuantity(p.Stock).IsOut()
}

// StockValue returns price multiplied by units on hand.
func (p *Product) StockValue() float64 {
	return p.Price * float64(p.Stock)
}

func validateProduct(name, description string, price float64, categoryID uuid.UUID, stock int) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProduct)
	}
	if utf8.RuneCountInString(name) > productNameMaxLen {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidProduct, productNameMaxLen)
	}
	if description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrInvalidProduct)
	}
	if utf8.RuneCountInString(description) > productDescMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidProduct, productDescMaxLen)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	}
	if categoryID == uuid.Nil {
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	if stock < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProduct, ErrNegativeStock)
	}
	return nil
}
