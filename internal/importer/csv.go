package importer

import (
	"encoding/csv" // CSV parsing
	"fmt"          // Error wrapping
	"io"           // EOF detection
	"os"           // File access
	"strconv"      // Numeric parsing
	"strings"      // Header cleanup
	"time"         // Timestamp parsing
)

// Accepted layouts for the canonical timestamp columns
var timestampLayouts = []string{
	time.RFC3339,          // 2006-01-02T15:04:05Z07:00
	"2006-01-02 15:04:05", // Space-separated date-time
	"2006-01-02T15:04:05", // ISO date-time without zone
	"2006-01-02",          // Bare date
}

// readRows reads a CSV source into header-keyed records.
// A source that cannot be opened or parsed is an infrastructure failure and aborts the run.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path) // Open the CSV source
	if err != nil {
		return nil, fmt.Errorf("open csv source: %w", err) // Fatal: no stage can proceed without its source
	}
	defer f.Close()
	reader := csv.NewReader(f)
	header, err := reader.Read() // First record is the header
	if err != nil {
		return nil, fmt.Errorf("read csv header %s: %w", path, err)
	}
	// Normalize header names once
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	var rows []map[string]string
	for {
		record, err := reader.Read() // Read the next record
		if err == io.EOF {
			break // End of source
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %s: %w", path, err) // Structurally malformed source is fatal
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i] // Key each field by its header name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseTimestamp parses a timestamp column against the accepted layouts
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil // First matching layout wins
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// errParse describes a malformed typed field within a row
func errParse(field, value string) error {
	return fmt.Errorf("invalid %s %q", field, value)
}

// parseID parses a foreign key column into an id
func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return uint(id), nil
}
