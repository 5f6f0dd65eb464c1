// Package dataset loads the two JSON input files and merges them into the
// normalized per-customer table every downstream stage consumes. The loyalty
// file is authoritative for the customer universe; purchases are aggregated
// onto it with left-join semantics.
package dataset

import (
	"encoding/json"
	"os"
	"time"

	"github.com/legb78/scan2front/internal/errs"
	"github.com/legb78/scan2front/internal/logger"
	"github.com/legb78/scan2front/internal/models"
)

// dateLayouts are tried in order when parsing purchase and loyalty dates.
// Records whose dates match none of them are treated as undated, not as
// epoch-zero.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate parses a wire date string. The boolean is false when the value is
// empty or matches no known layout.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadLoyalty reads and decodes the loyalty JSON array. An unreadable file,
// a non-array payload, or an empty customer universe is a DataError: without
// loyalty records there is no population to analyze.
func LoadLoyalty(path string) ([]models.LoyaltyRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.DataWrap(err, "cannot read loyalty file %s", path)
	}
	var records []models.LoyaltyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errs.DataWrap(err, "loyalty file %s is not a valid JSON array", path)
	}
	if len(records) == 0 {
		return nil, errs.Dataf("loyalty file %s contains no records", path)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, errs.DataWrap(err, "loyalty record %d is invalid", i)
		}
	}
	logger.Debug("Loaded %d loyalty records from %s", len(records), path)
	return records, nil
}

// LoadPurchases reads and decodes the purchases JSON array. Purchases without
// a client identifier are dropped with a warning; a file where nothing decodes
// to a usable record is a DataError.
func LoadPurchases(path string) ([]models.PurchaseRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.DataWrap(err, "cannot read purchases file %s", path)
	}
	var records []models.PurchaseRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errs.DataWrap(err, "purchases file %s is not a valid JSON array", path)
	}
	usable := records[:0]
	dropped := 0
	for _, rec := range records {
		if rec.ClientID == "" {
			dropped++
			continue
		}
		usable = append(usable, rec)
	}
	if dropped > 0 {
		logger.Warn("Dropped %d purchase records without a client identifier", dropped)
	}
	if len(usable) == 0 {
		return nil, errs.Dataf("purchases file %s contains no usable records", path)
	}
	logger.Debug("Loaded %d purchase records from %s", len(usable), path)
	return usable, nil
}
