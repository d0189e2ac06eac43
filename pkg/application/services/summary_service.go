package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mdlane/campstock/pkg/domain/entities"
	"github.com/mdlane/campstock/pkg/domain/repositories"
)

// SummariesSettingKey is the settings-store key holding the summary
// collection as JSON.
const SummariesSettingKey = "summaries"

// ErrSchemaMismatch is returned when an imported file has no
// summary-name column. Nothing is imported in that case.
var ErrSchemaMismatch = errors.New("no summary name column found")

// Export column sets (see the import fragments below before renaming
// any of these).
var (
	SummaryTableHeader = []string{
		"Summary Name", "Date", "Line Items",
		"Total Sold (12mo)", "Total In Stock", "Total Forecast", "Total Purchase",
	}
	SummaryBackupHeader = []string{
		"Summary Name", "Summary Date", "SKU", "Item", "Vendor", "Description",
		"QTY Sold", "In Stock", "Forecast", "Purchase", "Campground", "Department",
	}
)

// SummaryService owns the summary-group collection: snapshot creation,
// deletion, persistence through the settings store, and the
// export/import codec.
type SummaryService struct {
	settings repositories.SettingsRepository
	log      *logrus.Logger
}

// NewSummaryService creates a summary service over the given settings
// store.
func NewSummaryService(settings repositories.SettingsRepository, log *logrus.Logger) *SummaryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SummaryService{settings: settings, log: log}
}

// List loads the persisted summary collection, oldest first.
func (s *SummaryService) List(ctx context.Context) ([]entities.SummaryGroup, error) {
	raw, ok, err := s.settings.Get(ctx, SummariesSettingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load summaries: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var groups []entities.SummaryGroup
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, fmt.Errorf("failed to decode stored summaries: %w", err)
	}
	return groups, nil
}

func (s *SummaryService) persist(ctx context.Context, groups []entities.SummaryGroup) error {
	raw, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode summaries: %w", err)
	}
	if err := s.settings.Set(ctx, SummariesSettingKey, string(raw)); err != nil {
		return fmt.Errorf("failed to store summaries: %w", err)
	}
	return nil
}

// Create snapshots the selected report rows into a new named summary
// and persists the grown collection. An empty name auto-generates
// "Summary N". An empty selection fails with ErrEmptySelection and
// changes nothing.
func (s *SummaryService) Create(ctx context.Context, name string, selection []entities.ReportRow) (*entities.SummaryGroup, error) {
	groups, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = fmt.Sprintf("Summary %d", len(groups)+1)
	}

	group, err := entities.NewSummaryGroup(name, selection)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, append(groups, *group)); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"summary": group.Name,
		"items":   group.LineItems,
	}).Info("summary created")
	return group, nil
}

// Delete removes the summary with the given id.
func (s *SummaryService) Delete(ctx context.Context, id snowflake.ID) error {
	groups, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := groups[:0]
	for _, g := range groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(groups) {
		return fmt.Errorf("summary %d not found", id)
	}
	return s.persist(ctx, kept)
}

// Import decodes summary rows (from a CSV or spreadsheet source) and
// appends the resulting groups to the existing collection. The import
// is additive and all-or-nothing: a schema mismatch imports nothing.
func (s *SummaryService) Import(ctx context.Context, rows [][]string) (int, error) {
	decoded, err := DecodeSummaryRows(rows)
	if err != nil {
		return 0, err
	}

	groups, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.persist(ctx, append(groups, decoded...)); err != nil {
		return 0, err
	}

	s.log.WithField("groups", len(decoded)).Info("summaries imported")
	return len(decoded), nil
}

// SummaryTableRows flattens groups to the aggregate-only table shape:
// one row per group, totals only. This shape is for reporting and does
// not reconstruct line items on import.
func SummaryTableRows(groups []entities.SummaryGroup) [][]string {
	rows := [][]string{SummaryTableHeader}
	for _, g := range groups {
		rows = append(rows, []string{
			g.Name,
			g.Date,
			strconv.Itoa(g.LineItems),
			g.TotalSold.String(),
			g.TotalStock.String(),
			g.TotalForecast.String(),
			g.TotalPurchase.String(),
		})
	}
	return rows
}

// SummaryBackupRows flattens groups to the backup shape: one row per
// (group, item) pair with the parent's name and date repeated. This is
// the shape that round-trips through Import.
func SummaryBackupRows(groups []entities.SummaryGroup) [][]string {
	rows := [][]string{SummaryBackupHeader}
	for _, g := range groups {
		for _, item := range g.Items {
			rows = append(rows, []string{
				g.Name,
				g.Date,
				item.SKU,
				item.Item,
				item.Vendor,
				item.Description,
				item.QtySold.String(),
				item.InStock.String(),
				item.Forecast.String(),
				item.Purchase.String(),
				item.Campground,
				item.Department,
			})
		}
	}
	return rows
}

// Import column lookup fragments. Matching is case-insensitive
// substring against the raw header, so "Total Sold (12mo)" satisfies
// "sold" and "Line Items" satisfies "item".
type summaryColumns struct {
	name, date, sku, campground     int
	sold, stock, forecast, purchase int
	item, vendor, description, dept int
	qtySold, inStock                int
}

func findColumn(headers []string, fragment string) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), fragment) {
			return i
		}
	}
	return -1
}

func resolveSummaryColumns(headers []string) summaryColumns {
	return summaryColumns{
		name:        findColumn(headers, "summary name"),
		date:        findColumn(headers, "date"),
		sku:         findColumn(headers, "sku"),
		campground:  findColumn(headers, "campground"),
		sold:        findColumn(headers, "sold"),
		stock:       findColumn(headers, "stock"),
		forecast:    findColumn(headers, "forecast"),
		purchase:    findColumn(headers, "purchase"),
		item:        findColumn(headers, "item"),
		vendor:      findColumn(headers, "vendor"),
		description: findColumn(headers, "description"),
		dept:        findColumn(headers, "department"),
		qtySold:     findColumn(headers, "qty sold"),
		inStock:     findColumn(headers, "in stock"),
	}
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func decodeAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecodeSummaryRows reconstructs summary groups from generic
// header+data rows in either export shape.
//
// A "sku" column marks the detailed backup shape: every row becomes a
// line item (composite id campground|sku) of the group named in its
// summary-name cell, groups ordered by first appearance, and all four
// totals recomputed from the reconstructed items — totals columns are
// never trusted when line items are present. Without a "sku" column
// the input is the legacy aggregate shape: totals and the line-item
// count are taken verbatim and the item list stays empty.
func DecodeSummaryRows(rows [][]string) ([]entities.SummaryGroup, error) {
	if len(rows) == 0 {
		return nil, ErrSchemaMismatch
	}

	cols := resolveSummaryColumns(rows[0])
	if cols.name < 0 {
		return nil, ErrSchemaMismatch
	}

	detailed := cols.sku >= 0
	byName := make(map[string]*entities.SummaryGroup)
	var order []string

	for _, row := range rows[1:] {
		name := cellAt(row, cols.name)
		if name == "" {
			continue
		}

		group, ok := byName[name]
		if !ok {
			group = &entities.SummaryGroup{
				ID:   entities.NewSummaryID(),
				Name: name,
				Date: cellAt(row, cols.date),
			}
			byName[name] = group
			order = append(order, name)
		}

		if detailed {
			campground := cellAt(row, cols.campground)
			sku := entities.CanonicalSKU(cellAt(row, cols.sku))
			group.Items = append(group.Items, entities.ReportRow{
				ID:          entities.MakeItemKey(campground, sku),
				Campground:  campground,
				Department:  cellAt(row, cols.dept),
				SKU:         sku,
				Item:        cellAt(row, cols.item),
				Vendor:      cellAt(row, cols.vendor),
				Description: cellAt(row, cols.description),
				QtySold:     decodeAmount(cellAt(row, cols.qtySold)),
				InStock:     decodeAmount(cellAt(row, cols.inStock)),
				Forecast:    decodeAmount(cellAt(row, cols.forecast)),
				Purchase:    decodeAmount(cellAt(row, cols.purchase)),
			})
			continue
		}

		// Legacy aggregate shape: one row per group.
		group.TotalSold = decodeAmount(cellAt(row, cols.sold))
		group.TotalStock = decodeAmount(cellAt(row, cols.stock))
		group.TotalForecast = decodeAmount(cellAt(row, cols.forecast))
		group.TotalPurchase = decodeAmount(cellAt(row, cols.purchase))
		if n, err := strconv.Atoi(strings.TrimSpace(cellAt(row, cols.item))); err == nil {
			group.LineItems = n
		}
	}

	groups := make([]entities.SummaryGroup, 0, len(order))
	for _, name := range order {
		group := byName[name]
		if detailed {
			group.RecomputeTotals()
		}
		groups = append(groups, *group)
	}
	return groups, nil
}
