package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ReportRow is one line of the purchase-forecast report, keyed by the
// composite location|SKU key. Rows are recomputed from scratch whenever
// either source dataset changes and are never mutated incrementally.
type ReportRow struct {
	ID          ItemKey         `json:"id"`
	Campground  string          `json:"campground"`
	Department  string          `json:"department"`
	SKU         string          `json:"sku"`
	Item        string          `json:"item"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	QtySold     decimal.Decimal `json:"qtySold"` // trailing 12 months
	InStock     decimal.Decimal `json:"inStock"`
	Forecast    decimal.Decimal `json:"forecast"`
	Purchase    decimal.Decimal `json:"purchase"`
}

// SplitDescription decomposes a raw description field of the form
// "Item_Vendor_Description" (optionally prefixed with a leading
// underscore, which is stripped first). Missing segments default to the
// empty string; segments beyond the second are re-joined into the
// description so no content is lost.
func SplitDescription(raw string) (item, vendor, description string) {
	raw = strings.TrimPrefix(raw, "_")
	parts := strings.Split(raw, "_")
	if len(parts) > 0 {
		item = parts[0]
	}
	if len(parts) > 1 {
		vendor = parts[1]
	}
	if len(parts) > 2 {
		description = strings.Join(parts[2:], "_")
	}
	return item, vendor, description
}
