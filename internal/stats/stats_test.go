package stats

import (
	"errors"
	"path/filepath"
	"testing"

	"inventory_system/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Admin{}, &domain.Category{}, &domain.Supplier{}, &domain.Item{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedCatalog inserts one admin, two categories and one supplier.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustCreate(t, db, &domain.Admin{Username: "alice", Password: "hash", Email: "alice@example.com"})
	mustCreate(t, db, &domain.Category{Name: "Beverages", Description: "Drinks", CreatedByID: 1})
	mustCreate(t, db, &domain.Category{Name: "Snacks", Description: "Packaged snacks", CreatedByID: 1})
	mustCreate(t, db, &domain.Supplier{Name: "Acme Foods", ContactInfo: "acme@example.com", CreatedByID: 1})
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func newItem(name, price string, quantity int, categoryID, supplierID uint) *domain.Item {
	return &domain.Item{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
		CategoryID:  categoryID,
		SupplierID:  supplierID,
		CreatedByID: 1,
	}
}

func wantDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestDashboard(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	mustCreate(t, db, newItem("Cola", "10.00", 3, 1, 1))
	mustCreate(t, db, newItem("Chips", "5.50", 0, 2, 1))

	summary, err := Dashboard(db)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if summary.TotalItems != 2 {
		t.Errorf("total items = %d, want 2", summary.TotalItems)
	}
	wantDecimal(t, "total stock value", summary.TotalStockValue, "30.00")
	if summary.TotalCategories != 2 {
		t.Errorf("total categories = %d, want 2", summary.TotalCategories)
	}
	if summary.TotalSuppliers != 1 {
		t.Errorf("total suppliers = %d, want 1", summary.TotalSuppliers)
	}
}

func TestDashboardEmptyStore(t *testing.T) {
	db := setupDB(t)

	summary, err := Dashboard(db)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	// Zero, not null, with no items
	wantDecimal(t, "total stock value", summary.TotalStockValue, "0")
	if summary.TotalItems != 0 {
		t.Errorf("total items = %d, want 0", summary.TotalItems)
	}
}

func TestItemList(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	mustCreate(t, db, newItem("Cola", "10.00", 3, 1, 1))
	mustCreate(t, db, newItem("Chips", "5.50", 0, 2, 1))

	result, err := ItemList(db)
	if err != nil {
		t.Fatalf("item list: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	// Per-item total value is price times quantity
	wantDecimal(t, "cola total value", result.Items[0].TotalValue, "30.00")
	wantDecimal(t, "chips total value", result.Items[1].TotalValue, "0")
	// Associations are loaded for rendering
	if result.Items[0].Category.Name != "Beverages" {
		t.Errorf("cola category = %q, want Beverages", result.Items[0].Category.Name)
	}

	if result.Stats.TotalStock == nil || *result.Stats.TotalStock != 3 {
		t.Errorf("total stock = %v, want 3", result.Stats.TotalStock)
	}
	if !result.Stats.TotalValue.Valid {
		t.Fatal("total value is null with items present")
	}
	wantDecimal(t, "total value", result.Stats.TotalValue.Decimal, "30.00")
	if !result.Stats.AvgPrice.Valid {
		t.Fatal("avg price is null with items present")
	}
	wantDecimal(t, "avg price", result.Stats.AvgPrice.Decimal, "7.75")

	// Only the zero-quantity item is below the threshold
	if len(result.LowStock) != 1 || result.LowStock[0].Name != "Chips" {
		t.Errorf("low stock = %+v, want only Chips", result.LowStock)
	}
}

func TestItemListEmptyStore(t *testing.T) {
	db := setupDB(t)

	result, err := ItemList(db)
	if err != nil {
		t.Fatalf("item list: %v", err)
	}
	if len(result.Items) != 0 || len(result.LowStock) != 0 {
		t.Errorf("expected empty lists, got %d items and %d low stock", len(result.Items), len(result.LowStock))
	}
	// No rows to aggregate: null, not zero
	if result.Stats.TotalStock != nil {
		t.Errorf("total stock = %v, want null", *result.Stats.TotalStock)
	}
	if result.Stats.AvgPrice.Valid {
		t.Errorf("avg price = %s, want null", result.Stats.AvgPrice.Decimal)
	}
}

func TestCategorySummaries(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	mustCreate(t, db, newItem("Cola", "10", 2, 1, 1))
	mustCreate(t, db, newItem("Juice", "20", 1, 1, 1))

	summaries, err := CategorySummaries(db)
	if err != nil {
		t.Fatalf("category summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(summaries))
	}

	beverages := summaries[0]
	if beverages.ItemCount != 2 {
		t.Errorf("beverages item count = %d, want 2", beverages.ItemCount)
	}
	if !beverages.TotalValue.Valid {
		t.Fatal("beverages total value is null")
	}
	wantDecimal(t, "beverages total value", beverages.TotalValue.Decimal, "40")
	if !beverages.AvgPrice.Valid {
		t.Fatal("beverages avg price is null")
	}
	wantDecimal(t, "beverages avg price", beverages.AvgPrice.Decimal, "15")

	// A category without items keeps count 0 and null aggregates
	snacks := summaries[1]
	if snacks.ItemCount != 0 {
		t.Errorf("snacks item count = %d, want 0", snacks.ItemCount)
	}
	if snacks.TotalValue.Valid {
		t.Errorf("snacks total value = %s, want null", snacks.TotalValue.Decimal)
	}
	if snacks.AvgPrice.Valid {
		t.Errorf("snacks avg price = %s, want null", snacks.AvgPrice.Decimal)
	}
}

func TestSupplierSummaries(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	mustCreate(t, db, &domain.Supplier{Name: "Idle Imports", ContactInfo: "idle@example.com", CreatedByID: 1})
	mustCreate(t, db, newItem("Cola", "10.00", 3, 1, 1))
	mustCreate(t, db, newItem("Chips", "5.50", 2, 2, 1))

	summaries, err := SupplierSummaries(db)
	if err != nil {
		t.Fatalf("supplier summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(summaries))
	}
	acme := summaries[0]
	if acme.ItemCount != 2 {
		t.Errorf("acme item count = %d, want 2", acme.ItemCount)
	}
	wantDecimal(t, "acme total value", acme.TotalValue.Decimal, "41.00")

	idle := summaries[1]
	if idle.ItemCount != 0 {
		t.Errorf("idle item count = %d, want 0", idle.ItemCount)
	}
	if idle.TotalValue.Valid {
		t.Errorf("idle total value = %s, want null", idle.TotalValue.Decimal)
	}
}

func TestItemsByCategory(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	mustCreate(t, db, newItem("Cola", "10.00", 3, 1, 1))
	mustCreate(t, db, newItem("Chips", "5.50", 2, 2, 1))

	category, items, err := ItemsByCategory(db, 1)
	if err != nil {
		t.Fatalf("items by category: %v", err)
	}
	if category.Name != "Beverages" {
		t.Errorf("category = %q, want Beverages", category.Name)
	}
	if len(items) != 1 || items[0].Name != "Cola" {
		t.Errorf("items = %+v, want only Cola", items)
	}
}

func TestItemsByCategoryNotFound(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)

	_, _, err := ItemsByCategory(db, 999)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}
