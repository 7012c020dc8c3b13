package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleTable() Table {
	return Table{
		IDs:     []string{"name", "age"},
		Headers: []string{"Name", "Age"},
		Cells: [][]string{
			{"Ann, \"the\" first", "31"},
			{"Bob", ""},
		},
		Values: [][]any{
			{"Ann, \"the\" first", int64(31)},
			{"Bob", nil},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "test.csv")

	if err := ExportToCSV(sampleTable(), csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0][0] != "Name" || records[0][1] != "Age" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][0] != "Ann, \"the\" first" {
		t.Errorf("Expected quoted cell to round-trip, got %q", records[1][0])
	}
	if records[2][1] != "" {
		t.Errorf("Expected empty cell, got %q", records[2][1])
	}
}

func TestExportToJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "test.json")

	if err := ExportToJSON(sampleTable(), jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	info, err := os.Stat(jsonPath)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected file permissions 0644, got %o", info.Mode().Perm())
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0]["age"] != float64(31) {
		t.Errorf("Expected raw numeric age, got %v", rows[0]["age"])
	}
	if v, ok := rows[1]["age"]; !ok || v != nil {
		t.Errorf("Expected explicit null age, got %v", v)
	}
}

func TestFileName(t *testing.T) {
	a := FileName("/tmp", "csv")
	b := FileName("/tmp", "csv")

	if a == b {
		t.Error("Expected unique file names")
	}
	if !strings.HasPrefix(filepath.Base(a), "lazygrid-") || !strings.HasSuffix(a, ".csv") {
		t.Errorf("Unexpected file name: %s", a)
	}
}

func TestExportToCSV_ReportsWriteFailure(t *testing.T) {
	// /dev/full accepts the open and fails every write with ENOSPC
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	if err := ExportToCSV(sampleTable(), "/dev/full"); err == nil {
		t.Fatal("expected ExportToCSV to fail on a full device")
	}
}
