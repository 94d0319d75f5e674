package main

import (
	"inventory_system/internal/config"   // Custom package for configuration
	"inventory_system/internal/importer" // Custom package for the bulk importer

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for the offline bulk import batch job
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Run all import stages in dependency order against the CSV directory
	reports, err := importer.Run(db, cfg.CSVDir)
	if err != nil {
		logrus.Fatalf("import failed: %v", err) // Infrastructure failures abort the run
	}
	// Summarize the run
	for _, report := range reports {
		logrus.WithFields(logrus.Fields{
			"stage":    report.Stage,    // Entity stage
			"imported": report.Imported, // Rows inserted
			"skipped":  report.Skipped,  // Rows dropped by validation
		}).Info("Import stage summary")
	}
	logrus.Info("Data import process completed.") // Log completion
}
