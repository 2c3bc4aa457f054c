package domain

import "errors"

// LowStockThreshold is the stock level below which a product is flagged low-stock.
const LowStockThreshold = 10

var (
	ErrNegativeStock = errors.New("stock quantity cannot be negative")
)

// StockQuantity represents a non-negative count of units on hand.
type StockQuantity int

// NewStockQuantity creates a StockQuantity, rejecting negative values.
func NewStockQuantity(units int) (StockQuantity, error) {
	if units < 0 {
		return 0, ErrNegativeStock
	}
	return StockQuantity(units), nil
}

// IsLow reports whether the quantity is below the low-stock threshold.
func (q StockQuantity) IsLow() bool {
	return int(q) < LowStockThreshold
}

// IsOut reports whether no units are left.
func (q StockQuantity) IsOut() bool {
	return q == 0
}

// Add returns the quantity increased by units.
func (q StockQuantity) Add(units int) (StockQuantity, error) {
	return NewStockQuantity(int(q) + units)
}

// Subtract returns the quantity decreased by units. It fails rather than
// going negative.
func (q StockQuantity) Subtract(units int) (StockQuantity, error) {
	return NewStockQuantity(int(q) - units)
}

// Units returns the raw unit count.
func (q StockQuantity) Units() int {
	return int(q)
}
