package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact decimal arithmetic for prices
)

// LowStockThreshold is the quantity below which an item counts as low stock.
const LowStockThreshold = 5

// Item Model
type Item struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                   // Primary key
	Name        string          `gorm:"size:100;not null" json:"name"`          // Item name
	Description string          `json:"description"`                            // Item description
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // Unit price, decimal-exact
	Quantity    int             `gorm:"not null" json:"quantity"`               // Units in stock
	CategoryID  uint            `json:"category_id"`                            // Foreign key to Category
	Category    Category        `gorm:"foreignKey:CategoryID" json:"category"`  // Category the item belongs to
	SupplierID  uint            `json:"supplier_id"`                            // Foreign key to Supplier
	Supplier    Supplier        `gorm:"foreignKey:SupplierID" json:"supplier"`  // Supplier of the item
	CreatedByID uint            `json:"created_by_id"`                          // Foreign key to Admin
	CreatedBy   Admin           `gorm:"foreignKey:CreatedByID" json:"-"`        // Admin who created the item
	CreatedAt   time.Time       `json:"created_at"`                             // Timestamp of creation
	UpdatedAt   time.Time       `json:"updated_at"`                             // Timestamp of last update
}

// TotalValue returns the stock value of the item (price times quantity).
func (i Item) TotalValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))) // Multiply before any rounding
}
