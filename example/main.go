// Example of using campstock as a library: build records in memory,
// run the forecast engine, and snapshot a summary.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdlane/campstock/pkg/application/services"
	"github.com/mdlane/campstock/pkg/domain/entities"
	"github.com/mdlane/campstock/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	sales := []entities.SalesRecord{
		{
			Location:    "MGC",
			SKU:         "123",
			Date:        time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
			Description: "Firewood_Acme_Bundle of 10",
			Department:  "Camp Store",
			Quantity:    decimal.NewFromInt(50),
		},
		{
			Location:    "MGC",
			SKU:         "123",
			Date:        time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			Description: "Firewood_Acme_Bundle of 10",
			Department:  "Camp Store",
			Quantity:    decimal.NewFromInt(50),
		},
	}
	inventory := []entities.InventoryRecord{
		{
			Location: "MGC",
			SKU:      "123",
			Date:     time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			Count:    decimal.NewFromInt(20),
		},
	}

	engine := services.NewForecastService(services.ForecastConfig{})
	rows := engine.BuildReport(ctx, sales, inventory)

	for _, row := range rows {
		fmt.Printf("%s: sold %s, stock %s, forecast %s, purchase %s\n",
			row.ID, row.QtySold, row.InStock, row.Forecast, row.Purchase)
	}

	summaries := services.NewSummaryService(memory.NewSettingsRepository(), nil)
	group, err := summaries.Create(ctx, "June restock", rows)
	if err != nil {
		log.Fatalf("failed to create summary: %v", err)
	}
	fmt.Printf("summary %q: %d items, purchase total %s\n",
		group.Name, group.LineItems, group.TotalPurchase)
}
