package stats

import (
	"errors"                           // Sentinel errors
	"inventory_system/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact decimal arithmetic
	"gorm.io/gorm"                  // GORM ORM library
)

// ErrCategoryNotFound is returned when a requested category id does not exist
var ErrCategoryNotFound = errors.New("category not found")

// DashboardSummary holds the global inventory statistics
type DashboardSummary struct {
	TotalItems      int64           `json:"total_items"`       // Number of items
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Sum of price*quantity, zero when empty
	TotalCategories int64           `json:"total_categories"`  // Number of categories
	TotalSuppliers  int64           `json:"total_suppliers"`   // Number of suppliers
}

// Dashboard computes the global summary over the current store contents
func Dashboard(db *gorm.DB) (*DashboardSummary, error) {
	var summary DashboardSummary
	// Count items
	if err := db.Model(&domain.Item{}).Count(&summary.TotalItems).Error; err != nil {
		return nil, err
	}
	// Sum the product column directly so no per-item rounding happens before summation
	var total decimal.NullDecimal
	row := db.Model(&domain.Item{}).Select("SUM(price * quantity)").Row()
	if err := row.Scan(&total); err != nil {
		return nil, err
	}
	// An empty item table yields SQL NULL; the dashboard reports zero instead
	if total.Valid {
		summary.TotalStockValue = total.Decimal
	}
	// Count categories
	if err := db.Model(&domain.Category{}).Count(&summary.TotalCategories).Error; err != nil {
		return nil, err
	}
	// Count suppliers
	if err := db.Model(&domain.Supplier{}).Count(&summary.TotalSuppliers).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// ItemStats holds collection-level aggregates over all items
type ItemStats struct {
	TotalStock *int64              `json:"total_stock"` // Sum of quantities, null when no items
	TotalValue decimal.NullDecimal `json:"total_value"` // Sum of price*quantity, null when no items
	AvgPrice   decimal.NullDecimal `json:"avg_price"`   // Mean price, null when no items
}

// ItemView is an item annotated with its pre-computed stock value
type ItemView struct {
	domain.Item
	TotalValue decimal.Decimal `json:"total_value"` // price * quantity for this item
}

// ItemListResult bundles the item collection, its statistics and the low stock sublist
type ItemListResult struct {
	Items    []ItemView    `json:"items"`           // All items with per-item total value
	Stats    ItemStats     `json:"stats"`           // Collection aggregates
	LowStock []domain.Item `json:"low_stock_items"` // Items below the low stock threshold
}

// ItemList returns all items with per-item values, collection statistics and the low stock sublist
func ItemList(db *gorm.DB) (*ItemListResult, error) {
	var items []domain.Item
	// Fetch all items with their category and supplier
	if err := db.Preload("Category").Preload("Supplier").Find(&items).Error; err != nil {
		return nil, err
	}
	result := &ItemListResult{Items: make([]ItemView, len(items))}
	// Annotate each item with its stock value
	for i, item := range items {
		result.Items[i] = ItemView{Item: item, TotalValue: item.TotalValue()}
	}
	// Collection aggregates in SQL over the raw product column
	row := db.Model(&domain.Item{}).
		Select("SUM(quantity), SUM(price * quantity), AVG(price)").
		Row()
	if err := row.Scan(&result.Stats.TotalStock, &result.Stats.TotalValue, &result.Stats.AvgPrice); err != nil {
		return nil, err
	}
	// Items below the low stock threshold
	if err := db.Where("quantity < ?", domain.LowStockThreshold).Find(&result.LowStock).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// CategorySummary is a category annotated with aggregates over its items
type CategorySummary struct {
	ID          uint                `json:"id"`          // Category ID
	Name        string              `json:"name"`        // Category name
	Description string              `json:"description"` // Category description
	ItemCount   int64               `json:"item_count"`  // Number of items in the category
	TotalValue  decimal.NullDecimal `json:"total_value"` // Stock value of those items, null when none
	AvgPrice    decimal.NullDecimal `json:"avg_price"`   // Mean item price, null when none
}

// CategorySummaries returns every category with its item count, stock value and average price
func CategorySummaries(db *gorm.DB) ([]CategorySummary, error) {
	var summaries []CategorySummary
	// LEFT JOIN keeps zero-item categories with count 0 and NULL aggregates
	err := db.Model(&domain.Category{}).
		Select("categories.id, categories.name, categories.description, " +
			"COUNT(items.id) AS item_count, " +
			"SUM(items.price * items.quantity) AS total_value, " +
			"AVG(items.price) AS avg_price").
		Joins("LEFT JOIN items ON items.category_id = categories.id").
		Group("categories.id").
		Order("categories.id").
		Scan(&summaries).Error
	return summaries, err
}

// SupplierSummary is a supplier annotated with aggregates over its items
type SupplierSummary struct {
	ID          uint                `json:"id"`           // Supplier ID
	Name        string              `json:"name"`         // Supplier name
	ContactInfo string              `json:"contact_info"` // Supplier contact details
	ItemCount   int64               `json:"item_count"`   // Number of items from the supplier
	TotalValue  decimal.NullDecimal `json:"total_value"`  // Stock value of those items, null when none
}

// SupplierSummaries returns every supplier with its item count and stock value
func SupplierSummaries(db *gorm.DB) ([]SupplierSummary, error) {
	var summaries []SupplierSummary
	// LEFT JOIN keeps suppliers without items
	err := db.Model(&domain.Supplier{}).
		Select("suppliers.id, suppliers.name, suppliers.contact_info, " +
			"COUNT(items.id) AS item_count, " +
			"SUM(items.price * items.quantity) AS total_value").
		Joins("LEFT JOIN items ON items.supplier_id = suppliers.id").
		Group("suppliers.id").
		Order("suppliers.id").
		Scan(&summaries).Error
	return summaries, err
}

// ItemsByCategory returns a category and all of its items, failing when the category does not exist
func ItemsByCategory(db *gorm.DB, categoryID uint) (*domain.Category, []domain.Item, error) {
	var category domain.Category
	// The category must exist
	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound // Unknown category id
		}
		return nil, nil, err
	}
	var items []domain.Item
	// Fetch the category's items with their supplier
	if err := db.Preload("Supplier").Where("category_id = ?", categoryID).Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &category, items, nil
}
