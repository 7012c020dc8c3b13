package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Table is a rendered slice of the grid: column headers plus the cell text
// and raw values of each row
type Table struct {
	IDs     []string
	Headers []string
	Cells   [][]string
	Values  [][]any
}

// FileName returns a fresh export path in dir, e.g. lazygrid-1a2b3c4d.csv
func FileName(dir, ext string) string {
	id := uuid.New().String()[:8]
	return filepath.Join(dir, fmt.Sprintf("lazygrid-%s.%s", id, ext))
}

// ExportToCSV writes the headers and rendered cells to a CSV file
func ExportToCSV(t Table, path string) (err error) {
	// Create the file
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV file: %w", cerr)
		}
	}()

	writer := csv.NewWriter(file)

	// Write header
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range t.Cells {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return nil
}

// ExportToJSON writes one object per row, keyed by column ID, with the raw
// cell values
func ExportToJSON(t Table, path string) error {
	rows := make([]map[string]any, 0, len(t.Values))
	for _, values := range t.Values {
		obj := make(map[string]any, len(t.IDs))
		for i, id := range t.IDs {
			if i < len(values) {
				obj[id] = values[i]
			}
		}
		rows = append(rows, obj)
	}

	// Marshal to JSON with pretty printing
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows to JSON: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
