package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdlane/campstock/pkg/domain/entities"
)

// IncludePolicy decides which composite keys produce a report row.
type IncludePolicy string

const (
	// IncludePurchaseOrStock keeps a key iff purchase > 0 or on-hand
	// > 0. This is the original behavior; whether zero-demand items
	// with stock belong in the report is a disputed judgment call, so
	// the policy stays configurable.
	IncludePurchaseOrStock IncludePolicy = "purchase-or-stock"
	// IncludeAll keeps every key in the union of demand and inventory.
	IncludeAll IncludePolicy = "all"
)

// ForecastConfig tunes one engine run.
type ForecastConfig struct {
	// SeasonStart and SeasonEnd bound the seasonal demand window,
	// inclusive. Zero values default to April and October.
	SeasonStart time.Month
	SeasonEnd   time.Month
	Include     IncludePolicy
	// OnProgress, when set, is called once per engine stage. It
	// replaces the original UI's yield-one-tick trick and carries no
	// correctness weight.
	OnProgress func(stage string)
}

// ForecastService computes the purchase-forecast report from the two
// normalized record streams. It performs no I/O, tolerates missing
// optional fields, and is deterministic given its inputs.
type ForecastService struct {
	config ForecastConfig
}

// NewForecastService creates an engine with defaults filled in.
func NewForecastService(config ForecastConfig) *ForecastService {
	if config.SeasonStart == 0 {
		config.SeasonStart = time.April
	}
	if config.SeasonEnd == 0 {
		config.SeasonEnd = time.October
	}
	if config.Include == "" {
		config.Include = IncludePurchaseOrStock
	}
	return &ForecastService{config: config}
}

// demandEntry accumulates seasonal demand per key. Metadata is
// first-seen: the first record for a key fixes description, department,
// location and SKU; later matches only add quantity.
type demandEntry struct {
	location    string
	sku         string
	description string
	department  string
	quantity    decimal.Decimal
}

// invEntry holds the most recent count per key (latest-count-wins).
type invEntry struct {
	description string
	department  string
	count       decimal.Decimal
}

// BuildReport runs the join/aggregate/derive pipeline:
//
//  1. seasonal filter over sales (calendar month in the season window)
//  2. demand aggregation by composite key, first-seen metadata
//  3. season-year divisor = distinct seasonal years, floored at 1
//  4. trailing-12-month sales anchored at the max sales date
//  5. latest-count-wins inventory aggregation
//  6. key union, derived values, inclusion policy
//
// Row order follows first appearance (demand keys, then
// inventory-only keys by recency); callers sort for presentation.
func (s *ForecastService) BuildReport(
	ctx context.Context,
	sales []entities.SalesRecord,
	inventory []entities.InventoryRecord,
) []entities.ReportRow {
	s.progress("seasonal-demand")

	demand := make(map[entities.ItemKey]*demandEntry)
	var demandOrder []entities.ItemKey
	seasonYears := make(map[int]bool)

	for _, r := range sales {
		if !s.inSeason(r.Date.Month()) {
			continue
		}
		seasonYears[r.Date.Year()] = true
		key := r.Key()
		entry, ok := demand[key]
		if !ok {
			entry = &demandEntry{
				location:    r.Location,
				sku:         r.SKU,
				description: r.Description,
				department:  r.Department,
			}
			demand[key] = entry
			demandOrder = append(demandOrder, key)
		}
		entry.quantity = entry.quantity.Add(r.Quantity)
	}

	divisor := int64(len(seasonYears))
	if divisor < 1 {
		divisor = 1
	}

	s.progress("trailing-sales")

	var lastDate time.Time
	for _, r := range sales {
		if r.Date.After(lastDate) {
			lastDate = r.Date
		}
	}
	cutoff := lastDate.AddDate(-1, 0, 0)

	trailing := make(map[entities.ItemKey]decimal.Decimal)
	for _, r := range sales {
		if r.Date.Before(cutoff) {
			continue
		}
		trailing[r.Key()] = trailing[r.Key()].Add(r.Quantity)
	}

	s.progress("inventory")

	latest := make([]entities.InventoryRecord, len(inventory))
	copy(latest, inventory)
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].Date.After(latest[j].Date)
	})

	onHand := make(map[entities.ItemKey]*invEntry)
	var invOrder []entities.ItemKey
	for _, r := range latest {
		key := r.Key()
		if _, ok := onHand[key]; ok {
			continue // older count for the same key
		}
		onHand[key] = &invEntry{
			description: r.Description,
			department:  r.Department,
			count:       r.Count,
		}
		invOrder = append(invOrder, key)
	}

	s.progress("derive")

	keys := demandOrder
	for _, key := range invOrder {
		if _, ok := demand[key]; !ok {
			keys = append(keys, key)
		}
	}

	var rows []entities.ReportRow
	for _, key := range keys {
		d := demand[key]
		inv := onHand[key]

		forecast := decimal.Zero
		if d != nil {
			forecast = d.quantity.Div(decimal.NewFromInt(divisor)).Floor()
		}

		stock := decimal.Zero
		if inv != nil {
			stock = inv.count
		}

		purchase := forecast.Sub(stock)
		if purchase.IsNegative() {
			purchase = decimal.Zero
		}

		if !s.include(purchase, stock) {
			continue
		}

		// Metadata comes from the demand side when present, else from
		// the inventory side with the key reconstructed.
		var location, sku, description, department string
		if d != nil {
			location, sku = d.location, d.sku
			description, department = d.description, d.department
		} else {
			location, sku = key.Split()
			description, department = inv.description, inv.department
		}

		item, vendor, desc := entities.SplitDescription(description)
		rows = append(rows, entities.ReportRow{
			ID:          key,
			Campground:  location,
			Department:  department,
			SKU:         sku,
			Item:        item,
			Vendor:      vendor,
			Description: desc,
			QtySold:     trailing[key],
			InStock:     stock,
			Forecast:    forecast,
			Purchase:    purchase,
		})
	}

	return rows
}

func (s *ForecastService) inSeason(m time.Month) bool {
	return m >= s.config.SeasonStart && m <= s.config.SeasonEnd
}

func (s *ForecastService) include(purchase, stock decimal.Decimal) bool {
	if s.config.Include == IncludeAll {
		return true
	}
	return purchase.IsPositive() || stock.IsPositive()
}

func (s *ForecastService) progress(stage string) {
	if s.config.OnProgress != nil {
		s.config.OnProgress(stage)
	}
}
