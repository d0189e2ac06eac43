package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// KeySeparator joins location and SKU into a composite item key.
const KeySeparator = "|"

// ItemKey identifies an item at a location, e.g. "MGC|123".
// Keys are compared as canonical strings, never numerically.
type ItemKey string

// CanonicalSKU strips leading zeros so "00123" and "123" compare equal.
// An all-zero SKU canonicalizes to "0" rather than the empty string.
func CanonicalSKU(sku string) string {
	sku = strings.TrimSpace(sku)
	trimmed := strings.TrimLeft(sku, "0")
	if trimmed == "" && sku != "" {
		return "0"
	}
	return trimmed
}

// MakeItemKey builds the composite aggregation key from a location code
// and a raw SKU.
func MakeItemKey(location, sku string) ItemKey {
	return ItemKey(location + KeySeparator + CanonicalSKU(sku))
}

// Split returns the location and SKU halves of the key. A key with no
// separator yields the whole string as location and an empty SKU.
func (k ItemKey) Split() (location, sku string) {
	s := string(k)
	i := strings.Index(s, KeySeparator)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+len(KeySeparator):]
}

// SalesRecord is one normalized point-of-sale history row.
type SalesRecord struct {
	Location    string          `json:"location"`
	SKU         string          `json:"sku"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Department  string          `json:"department"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// Key returns the composite aggregation key for the record.
func (r SalesRecord) Key() ItemKey {
	return MakeItemKey(r.Location, r.SKU)
}

// InventoryRecord is one normalized inventory count row.
type InventoryRecord struct {
	Location    string          `json:"location"`
	SKU         string          `json:"sku"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Department  string          `json:"department"`
	Count       decimal.Decimal `json:"count"`
}

// Key returns the composite aggregation key for the record.
func (r InventoryRecord) Key() ItemKey {
	return MakeItemKey(r.Location, r.SKU)
}
