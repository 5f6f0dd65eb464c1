package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/legb78/scan2front/internal/errs"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-10", "2024-01-10", true},
		{"2024-01-10T12:30:00Z", "2024-01-10", true},
		{"2024-01-10 12:30:00", "2024-01-10", true},
		{"10/01/2024", "2024-01-10", true},
		{"", "", false},
		{"not a date", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format(time.DateOnly) != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format(time.DateOnly), tt.want)
		}
	}
}

func TestLoadLoyalty(t *testing.T) {
	path := writeFile(t, "loyalty.json", `[
		{"client_id": "C001", "nom": "Marie", "points_cumules": 1800},
		{"client_id": "C002", "nom": "Jean", "points_cumules": 200}
	]`)

	records, err := LoadLoyalty(path)
	if err != nil {
		t.Fatalf("LoadLoyalty failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ClientID != "C001" || records[1].TotalPoints != 200 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestLoadLoyaltyErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not an array", `{"client_id": "C001"}`},
		{"empty array", `[]`},
		{"missing client id", `[{"nom": "Marie"}]`},
		{"invalid json", `[{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "loyalty.json", tt.content)
			_, err := LoadLoyalty(path)
			var de *errs.DataError
			if !errors.As(err, &de) {
				t.Errorf("LoadLoyalty error = %v, want a DataError", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLoyalty(filepath.Join(t.TempDir(), "absent.json"))
		var de *errs.DataError
		if !errors.As(err, &de) {
			t.Errorf("LoadLoyalty error = %v, want a DataError", err)
		}
	})
}

func TestLoadPurchasesDropsUnidentified(t *testing.T) {
	path := writeFile(t, "purchases.json", `[
		{"Client_ID": "C001", "Total_Achat (€)": 50},
		{"Total_Achat (€)": 99},
		{"Client_ID": "C002", "Total_Achat (€)": 20}
	]`)

	records, err := LoadPurchases(path)
	if err != nil {
		t.Fatalf("LoadPurchases failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 after dropping the unidentified record", len(records))
	}
	if records[0].ClientID != "C001" || records[1].ClientID != "C002" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestLoadPurchasesNoUsableRecords(t *testing.T) {
	path := writeFile(t, "purchases.json", `[{"Total_Achat (€)": 99}]`)
	_, err := LoadPurchases(path)
	var de *errs.DataError
	if !errors.As(err, &de) {
		t.Errorf("LoadPurchases error = %v, want a DataError", err)
	}
}
