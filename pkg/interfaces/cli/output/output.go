// Package output renders report rows and summary groups for the CLI.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mdlane/campstock/pkg/domain/entities"
	"github.com/mdlane/campstock/pkg/infrastructure/spreadsheet"
)

// Config holds configuration for output generation.
type Config struct {
	Format    string // text, json, csv, xlsx
	OutputDir string
	Verbose   bool
}

// ReportHeader is the column set of a rendered report.
var ReportHeader = []string{
	"Campground", "Department", "SKU", "Item", "Vendor", "Description",
	"QTY Sold", "In Stock", "Forecast", "Purchase",
}

// ReportRows flattens report rows to header+data cells, sorted by
// campground then SKU. Sorting is a presentation concern; the engine
// leaves row order unspecified.
func ReportRows(rows []entities.ReportRow) [][]string {
	sorted := make([]entities.ReportRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Campground != sorted[j].Campground {
			return sorted[i].Campground < sorted[j].Campground
		}
		return sorted[i].SKU < sorted[j].SKU
	})

	out := [][]string{ReportHeader}
	for _, r := range sorted {
		out = append(out, []string{
			r.Campground, r.Department, r.SKU, r.Item, r.Vendor, r.Description,
			r.QtySold.String(), r.InStock.String(), r.Forecast.String(), r.Purchase.String(),
		})
	}
	return out
}

// RenderReport writes the report in the configured format. File
// formats go to OutputDir (default "."); text goes to stdout.
func RenderReport(rows []entities.ReportRow, config Config) error {
	switch config.Format {
	case "", "text":
		return renderText(rows)
	case "json":
		return renderJSON(rows, config)
	case "csv":
		return writeCSV(config.path("report.csv"), ReportRows(rows))
	case "xlsx":
		return spreadsheet.WriteFile(config.path("report.xlsx"), ReportRows(rows))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func (c Config) path(name string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

func renderText(rows []entities.ReportRow) error {
	table := ReportRows(rows)

	fmt.Printf("Purchase Forecast (%d items)\n", len(rows))
	fmt.Printf("%-6s %-14s %-10s %-20s %-14s %10s %10s %10s %10s\n",
		"Camp", "Department", "SKU", "Item", "Vendor", "QTY Sold", "In Stock", "Forecast", "Purchase")

	totalStock, totalForecast, totalPurchase := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range table[1:] {
		fmt.Printf("%-6s %-14s %-10s %-20s %-14s %10s %10s %10s %10s\n",
			r[0], truncate(r[1], 14), r[2], truncate(r[3], 20), truncate(r[4], 14), r[6], r[7], r[8], r[9])
	}
	for _, r := range rows {
		totalStock = totalStock.Add(r.InStock)
		totalForecast = totalForecast.Add(r.Forecast)
		totalPurchase = totalPurchase.Add(r.Purchase)
	}
	fmt.Printf("\nTotals: in stock %s, forecast %s, purchase %s\n",
		totalStock, totalForecast, totalPurchase)
	return nil
}

func renderJSON(rows []entities.ReportRow, config Config) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(config.path("report.json"), data, 0o644)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteRows writes generic rows as CSV text or an XLSX workbook based
// on the path extension.
func WriteRows(path string, rows [][]string) error {
	if filepath.Ext(path) == ".xlsx" {
		return spreadsheet.WriteFile(path, rows)
	}
	return writeCSV(path, rows)
}

// RenderSummaries prints the summary collection as a text table.
func RenderSummaries(groups []entities.SummaryGroup) {
	fmt.Printf("Summaries (%d)\n", len(groups))
	fmt.Printf("%-20s %-22s %-14s %10s %10s %10s %10s\n",
		"ID", "Name", "Date", "Items", "Sold", "Forecast", "Purchase")
	for _, g := range groups {
		fmt.Printf("%-20d %-22s %-14s %10d %10s %10s %10s\n",
			g.ID, truncate(g.Name, 22), g.Date, g.LineItems,
			g.TotalSold, g.TotalForecast, g.TotalPurchase)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
