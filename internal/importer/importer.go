package importer

import (
	"inventory_system/internal/domain" // Importing domain models
	"path/filepath"                    // CSV source paths
	"strconv"                          // Quantity parsing
	"strings"                          // Field cleanup
	"time"                             // Timestamp fields

	"github.com/shopspring/decimal" // Exact decimal parsing for prices
	"github.com/sirupsen/logrus"    // Logging library
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/gorm"                  // GORM ORM library
)

// StageReport summarizes one entity stage of an import run
type StageReport struct {
	Stage    string // Entity name of the stage
	Imported int    // Rows inserted
	Skipped  int    // Rows dropped by validation
}

// Run executes the four import stages in dependency order: admins, categories,
// suppliers, items. Each later stage validates its foreign keys against rows
// committed by an earlier one, so the order is significant. Row-level validation
// failures are skipped and reported; infrastructure failures abort the run.
func Run(db *gorm.DB, dir string) ([]StageReport, error) {
	var reports []StageReport
	stages := []struct {
		file string
		fn   func(*gorm.DB, string) (StageReport, error)
	}{
		{"admins.csv", importAdmins},         // Admins first, everything references them
		{"categories.csv", importCategories}, // Categories reference admins
		{"suppliers.csv", importSuppliers},   // Suppliers reference admins
		{"items.csv", importItems},           // Items reference categories and suppliers
	}
	for _, stage := range stages {
		report, err := stage.fn(db, filepath.Join(dir, stage.file)) // Run the stage
		if err != nil {
			return reports, err // Infrastructure failure unwinds the whole run
		}
		reports = append(reports, report)
		// Log the stage outcome
		logrus.WithFields(logrus.Fields{
			"stage":    report.Stage,
			"imported": report.Imported,
			"skipped":  report.Skipped,
		}).Info("Stage imported successfully")
	}
	return reports, nil
}

// resetTable clears the table and restarts its identity sequence so ids are
// stable across repeated runs with identical input
func resetTable(tx *gorm.DB, model any, table string) error {
	// Clear all existing rows
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
		return err
	}
	// Restart the auto-increment counter, per dialect
	switch tx.Dialector.Name() {
	case "mysql":
		return tx.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1").Error
	case "sqlite":
		return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
	}
	return nil
}

// tableIDs returns the set of ids currently in the model's table
func tableIDs(tx *gorm.DB, model any) (map[uint]bool, error) {
	var ids []uint
	if err := tx.Model(model).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// importAdmins loads admins.csv, hashing passwords and dropping duplicate usernames
func importAdmins(db *gorm.DB, path string) (StageReport, error) {
	report := StageReport{Stage: "admins"}
	rows, err := readRows(path) // Read the full source before touching the table
	if err != nil {
		return report, err
	}
	// Reset, validate and insert inside one transaction so a failure
	// leaves the previously committed rows intact
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := resetTable(tx, &domain.Admin{}, "admins"); err != nil {
			return err
		}
		seen := make(map[string]bool) // Usernames inserted earlier in this run
		var batch []domain.Admin
		for _, row := range rows {
			username := strings.TrimSpace(row["username"])
			// Skip duplicates within the run; the table was just cleared
			if seen[username] {
				report.Skipped++
				continue
			}
			createdAt, updatedAt, err := rowTimestamps(row)
			if err != nil {
				report.Skipped++
				logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Warn("Skipping admin row")
				continue
			}
			// Raw CSV passwords are never persisted verbatim
			hash, err := bcrypt.GenerateFromPassword([]byte(row["password"]), bcrypt.DefaultCost)
			if err != nil {
				return err // Hashing failure is not a data problem
			}
			seen[username] = true
			batch = append(batch, domain.Admin{
				Username:  username,     // Unique username
				Password:  string(hash), // One-way salted hash
				Email:     row["email"], // Contact email
				CreatedAt: createdAt,    // Timestamp from the source
				UpdatedAt: updatedAt,    // Timestamp from the source
			})
		}
		return insertBatch(tx, &batch, &report)
	})
	return report, err
}

// importCategories loads categories.csv, dropping rows whose admin does not exist
func importCategories(db *gorm.DB, path string) (StageReport, error) {
	report := StageReport{Stage: "categories"}
	rows, err := readRows(path)
	if err != nil {
		return report, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := resetTable(tx, &domain.Category{}, "categories"); err != nil {
			return err
		}
		adminIDs, err := tableIDs(tx, &domain.Admin{}) // Admins committed by the previous stage
		if err != nil {
			return err
		}
		var batch []domain.Category
		for _, row := range rows {
			name := strings.TrimSpace(row["name"])
			createdBy, err := parseID(row["created_by_id"])
			if err == nil && !adminIDs[createdBy] {
				// Referenced admin is missing: drop the row, keep the run going
				report.Skipped++
				logrus.WithFields(logrus.Fields{"category": name, "created_by_id": createdBy}).Warn("Admin not found, skipping category")
				continue
			}
			createdAt, updatedAt, tsErr := rowTimestamps(row)
			if err != nil || tsErr != nil {
				report.Skipped++
				logrus.WithFields(logrus.Fields{"category": name}).Warn("Skipping malformed category row")
				continue
			}
			batch = append(batch, domain.Category{
				Name:        name,               // Category name
				Description: row["description"], // Category description
				CreatedByID: createdBy,          // Validated admin reference
				CreatedAt:   createdAt,          // Timestamp from the source
				UpdatedAt:   updatedAt,          // Timestamp from the source
			})
		}
		return insertBatch(tx, &batch, &report)
	})
	return report, err
}

// importSuppliers loads suppliers.csv, dropping rows whose admin does not exist
func importSuppliers(db *gorm.DB, path string) (StageReport, error) {
	report := StageReport{Stage: "suppliers"}
	rows, err := readRows(path)
	if err != nil {
		return report, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := resetTable(tx, &domain.Supplier{}, "suppliers"); err != nil {
			return err
		}
		adminIDs, err := tableIDs(tx, &domain.Admin{})
		if err != nil {
			return err
		}
		var batch []domain.Supplier
		for _, row := range rows {
			name := strings.TrimSpace(row["name"])
			createdBy, err := parseID(row["created_by_id"])
			if err == nil && !adminIDs[createdBy] {
				report.Skipped++
				logrus.WithFields(logrus.Fields{"supplier": name, "created_by_id": createdBy}).Warn("Admin not found, skipping supplier")
				continue
			}
			createdAt, updatedAt, tsErr := rowTimestamps(row)
			if err != nil || tsErr != nil {
				report.Skipped++
				logrus.WithFields(logrus.Fields{"supplier": name}).Warn("Skipping malformed supplier row")
				continue
			}
			batch = append(batch, domain.Supplier{
				Name:        name,                // Supplier name
				ContactInfo: row["contact_info"], // Supplier contact details
				CreatedByID: createdBy,           // Validated admin reference
				CreatedAt:   createdAt,           // Timestamp from the source
				UpdatedAt:   updatedAt,           // Timestamp from the source
			})
		}
		return insertBatch(tx, &batch, &report)
	})
	return report, err
}

// importItems loads items.csv, dropping rows whose category or supplier does not exist
func importItems(db *gorm.DB, path string) (StageReport, error) {
	report := StageReport{Stage: "items"}
	rows, err := readRows(path)
	if err != nil {
		return report, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := resetTable(tx, &domain.Item{}, "items"); err != nil {
			return err
		}
		categoryIDs, err := tableIDs(tx, &domain.Category{}) // Categories committed earlier in the run
		if err != nil {
			return err
		}
		supplierIDs, err := tableIDs(tx, &domain.Supplier{}) // Suppliers committed earlier in the run
		if err != nil {
			return err
		}
		var batch []domain.Item
		for _, row := range rows {
			name := strings.TrimSpace(row["name"])
			item, missing, err := buildItem(row, categoryIDs, supplierIDs)
			if missing != "" {
				// Referenced category or supplier is missing: drop the row
				report.Skipped++
				logrus.WithFields(logrus.Fields{"item": name, "missing": missing}).Warn("Category or supplier not found, skipping item")
				continue
			}
			if err != nil {
				// Malformed numeric or timestamp field: drop the row
				report.Skipped++
				logrus.WithFields(logrus.Fields{"item": name, "error": err.Error()}).Warn("Skipping malformed item row")
				continue
			}
			batch = append(batch, item)
		}
		return insertBatch(tx, &batch, &report)
	})
	return report, err
}

// buildItem parses one items.csv row. The missing return names the absent
// reference when the row fails the existence check.
func buildItem(row map[string]string, categoryIDs, supplierIDs map[uint]bool) (domain.Item, string, error) {
	var item domain.Item
	categoryID, err := parseID(row["category_id"])
	if err != nil {
		return item, "", err
	}
	supplierID, err := parseID(row["supplier_id"])
	if err != nil {
		return item, "", err
	}
	// Both references must exist in the already populated tables
	if !categoryIDs[categoryID] {
		return item, "category " + row["category_id"], nil
	}
	if !supplierIDs[supplierID] {
		return item, "supplier " + row["supplier_id"], nil
	}
	createdBy, err := parseID(row["created_by_id"])
	if err != nil {
		return item, "", err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row["price"]))
	if err != nil || price.IsNegative() {
		return item, "", errParse("price", row["price"])
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(row["quantity"]))
	if err != nil || quantity < 0 {
		return item, "", errParse("quantity", row["quantity"])
	}
	createdAt, updatedAt, err := rowTimestamps(row)
	if err != nil {
		return item, "", err
	}
	item = domain.Item{
		Name:        strings.TrimSpace(row["name"]), // Item name
		Description: row["description"],             // Item description
		Price:       price,                          // Non-negative decimal price
		Quantity:    quantity,                       // Non-negative quantity
		CategoryID:  categoryID,                     // Validated category reference
		SupplierID:  supplierID,                     // Validated supplier reference
		CreatedByID: createdBy,                      // Admin reference
		CreatedAt:   createdAt,                      // Timestamp from the source
		UpdatedAt:   updatedAt,                      // Timestamp from the source
	}
	return item, "", nil
}

// rowTimestamps parses the created_at and updated_at columns of a row
func rowTimestamps(row map[string]string) (createdAt, updatedAt time.Time, err error) {
	createdAt, err = parseTimestamp(row["created_at"])
	if err != nil {
		return
	}
	updatedAt, err = parseTimestamp(row["updated_at"])
	return
}

// insertBatch performs the single batched insert that ends a stage
func insertBatch[T any](tx *gorm.DB, batch *[]T, report *StageReport) error {
	if len(*batch) > 0 {
		if err := tx.Create(batch).Error; err != nil {
			return err // Insert failure rolls the stage back
		}
	}
	report.Imported = len(*batch)
	return nil
}
