package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdlane/campstock/pkg/domain/entities"
)

func TestDatasetRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDatasetRepository()

	records := []entities.SalesRecord{
		{
			Location:   "MGC",
			SKU:        "123",
			Date:       time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			Department: "Camp Store",
			Quantity:   decimal.NewFromInt(50),
		},
	}

	if err := repo.SaveSales(ctx, records); err != nil {
		t.Fatalf("SaveSales failed: %v", err)
	}

	loaded, err := repo.LoadSales(ctx)
	if err != nil {
		t.Fatalf("LoadSales failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].SKU != "123" || !loaded[0].Quantity.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unexpected loaded records %+v", loaded)
	}
}

func TestDatasetRepository_SaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewDatasetRepository()

	first := []entities.SalesRecord{{Location: "MGC", SKU: "1"}, {Location: "MGC", SKU: "2"}}
	second := []entities.SalesRecord{{Location: "TLH", SKU: "9"}}

	repo.SaveSales(ctx, first)
	repo.SaveSales(ctx, second)

	loaded, _ := repo.LoadSales(ctx)
	if len(loaded) != 1 || loaded[0].Location != "TLH" {
		t.Errorf("expected second save to replace the first, got %+v", loaded)
	}
}

func TestDatasetRepository_LoadIsIsolatedCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewDatasetRepository()
	repo.SaveInventory(ctx, []entities.InventoryRecord{{Location: "MGC", SKU: "1"}})

	loaded, _ := repo.LoadInventory(ctx)
	loaded[0].Location = "XXX"

	again, _ := repo.LoadInventory(ctx)
	if again[0].Location != "MGC" {
		t.Errorf("mutating a loaded slice leaked into the repository")
	}
}

func TestDatasetRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewDatasetRepository()
	repo.SaveSales(ctx, []entities.SalesRecord{{Location: "MGC", SKU: "1"}})
	repo.SaveInventory(ctx, []entities.InventoryRecord{{Location: "MGC", SKU: "1"}})

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	sales, _ := repo.LoadSales(ctx)
	inventory, _ := repo.LoadInventory(ctx)
	if len(sales) != 0 || len(inventory) != 0 {
		t.Errorf("expected empty datasets after Clear, got %d sales, %d inventory", len(sales), len(inventory))
	}
}

func TestSettingsRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository()

	if _, ok, _ := repo.Get(ctx, "filters"); ok {
		t.Fatal("expected missing key before Set")
	}

	repo.Set(ctx, "filters", `{"department":"Gear"}`)
	v, ok, err := repo.Get(ctx, "filters")
	if err != nil || !ok || v != `{"department":"Gear"}` {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}

	repo.Delete(ctx, "filters")
	if _, ok, _ := repo.Get(ctx, "filters"); ok {
		t.Error("expected key gone after Delete")
	}
}
