// Package testing provides fixture builders shared by tests across the
// module.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdlane/campstock/pkg/domain/entities"
)

// Sales builds a sales record with sensible fixture defaults.
func Sales(location, sku string, date time.Time, qty int64) entities.SalesRecord {
	return entities.SalesRecord{
		Location:    location,
		SKU:         entities.CanonicalSKU(sku),
		Date:        date,
		Description: "Item_Vendor_Desc",
		Department:  "Camp Store",
		Quantity:    decimal.NewFromInt(qty),
	}
}

// SalesWithDescription builds a sales record with an explicit raw
// description field.
func SalesWithDescription(location, sku string, date time.Time, qty int64, description string) entities.SalesRecord {
	r := Sales(location, sku, date, qty)
	r.Description = description
	return r
}

// Inventory builds an inventory count record.
func Inventory(location, sku string, date time.Time, count int64) entities.InventoryRecord {
	return entities.InventoryRecord{
		Location:    location,
		SKU:         entities.CanonicalSKU(sku),
		Date:        date,
		Description: "Item_Vendor_Desc",
		Department:  "Camp Store",
		Count:       decimal.NewFromInt(count),
	}
}

// Date is shorthand for a UTC midnight timestamp.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
