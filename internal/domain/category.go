package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var ErrInvalidCategory = errors.New("invalid category")

const (
	categoryNameMinLen = 3
	categoryNameMaxLen = 100
	categoryDescMaxLen = 500
)

// Category represents a product category. Name uniqueness is enforced by a
// unique index at the storage layer, not here.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewCategory creates a category with a fresh identity and current timestamps.
func NewCategory(name, description string) (*Category, error) {
	if err := validateCategory(name, description); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update rewrites name and description and refreshes UpdatedAt. CreatedAt is
// never touched.
func (c *Category) Update(name, description string) error {
	if err := validateCategory(name, description); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func validateCategory(name, description string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < categoryNameMinLen || nameLen > categoryNameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrInvalidCategory, categoryNameMinLen, categoryNameMaxLen)
	}
	if description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrInvalidCategory)
	}
	if utf8.RuneCountInString(description) > categoryDescMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidCategory, categoryDescMaxLen)
	}
	return nil
}
