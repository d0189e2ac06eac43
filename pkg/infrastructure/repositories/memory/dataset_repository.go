package memory

import (
	"context"

	"github.com/mdlane/campstock/pkg/domain/entities"
	"github.com/mdlane/campstock/pkg/domain/repositories"
)

// DatasetRepository keeps the two source datasets in process memory.
type DatasetRepository struct {
	sales     []entities.SalesRecord
	inventory []entities.InventoryRecord
}

// NewDatasetRepository creates an empty in-memory dataset repository.
func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{}
}

// Verify interface compliance
var _ repositories.DatasetRepository = (*DatasetRepository)(nil)

// SaveSales replaces the sales dataset wholesale.
func (r *DatasetRepository) SaveSales(ctx context.Context, records []entities.SalesRecord) error {
	r.sales = append([]entities.SalesRecord(nil), records...)
	return nil
}

// LoadSales returns a copy of the sales dataset.
func (r *DatasetRepository) LoadSales(ctx context.Context) ([]entities.SalesRecord, error) {
	return append([]entities.SalesRecord(nil), r.sales...), nil
}

// SaveInventory replaces the inventory dataset wholesale.
func (r *DatasetRepository) SaveInventory(ctx context.Context, records []entities.InventoryRecord) error {
	r.inventory = append([]entities.InventoryRecord(nil), records...)
	return nil
}

// LoadInventory returns a copy of the inventory dataset.
func (r *DatasetRepository) LoadInventory(ctx context.Context) ([]entities.InventoryRecord, error) {
	return append([]entities.InventoryRecord(nil), r.inventory...), nil
}

// Clear drops both datasets.
func (r *DatasetRepository) Clear(ctx context.Context) error {
	r.sales = nil
	r.inventory = nil
	return nil
}
