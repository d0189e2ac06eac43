package repositories

import (
	"context"

	"github.com/mdlane/campstock/pkg/domain/entities"
)

// Dataset names used by persistent stores.
const (
	DatasetSales     = "sales"
	DatasetInventory = "inventory"
)

// DatasetRepository stores the two source datasets. Every save is an
// all-or-nothing replacement of the named dataset; load after a
// matching save returns records deep-equal to what was saved.
type DatasetRepository interface {
	SaveSales(ctx context.Context, records []entities.SalesRecord) error
	LoadSales(ctx context.Context) ([]entities.SalesRecord, error)
	SaveInventory(ctx context.Context, records []entities.InventoryRecord) error
	LoadInventory(ctx context.Context) ([]entities.InventoryRecord, error)
	Clear(ctx context.Context) error
}
