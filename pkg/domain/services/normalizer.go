// Package services holds domain-level services: the schema normalizer
// that turns parsed CSV rows into typed records.
package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdlane/campstock/pkg/domain/entities"
)

// DefaultExcludedLocations lists facility codes whose records are
// dropped entirely (closed property, kept out of every report).
var DefaultExcludedLocations = []string{"ALG"}

// DefaultDepartment is used when a row has no department value.
const DefaultDepartment = "Unknown"

// Target fields resolved from a header row.
const (
	fieldLocation    = "location"
	fieldDate        = "date"
	fieldSKU         = "sku"
	fieldDescription = "description"
	fieldQuantity    = "quantity"
	fieldDepartment  = "department"
)

// columnRule matches one target field against a normalized header name
// (lower-cased, non-alphanumerics stripped).
type columnRule struct {
	field string
	match func(h string) bool
}

func contains(sub string) func(string) bool {
	return func(h string) bool { return strings.Contains(h, sub) }
}

// Column resolution tables. Matching is fuzzy and order-independent:
// the first header satisfying a field's predicate wins for that field.
var salesRules = []columnRule{
	{fieldLocation, contains("property")},
	{fieldDate, func(h string) bool {
		return strings.Contains(h, "salesdate") && !strings.Contains(h, "last")
	}},
	{fieldSKU, contains("sku")},
	{fieldDescription, func(h string) bool {
		return strings.Contains(h, "originaltitle") || strings.Contains(h, "itemname")
	}},
	{fieldQuantity, func(h string) bool {
		return strings.Contains(h, "qtysold") || strings.Contains(h, "quantity")
	}},
	{fieldDepartment, contains("department")},
}

var inventoryRules = []columnRule{
	{fieldLocation, contains("property")},
	{fieldDate, func(h string) bool {
		return strings.Contains(h, "counttimestamp") ||
			(strings.Contains(h, "date") && !strings.Contains(h, "sales"))
	}},
	{fieldSKU, contains("sku")},
	{fieldDescription, contains("itemname")},
	{fieldQuantity, func(h string) bool {
		return strings.Contains(h, "countedqty") || h == "count" ||
			(strings.Contains(h, "qty") && strings.Contains(h, "count"))
	}},
	{fieldDepartment, contains("department")},
}

// normalizeHeader lower-cases a header and strips everything outside
// [a-z0-9], so "Sales Date" and "sales_date" resolve identically.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveColumns maps each target field to the index of the first
// header matching its rule, or -1 when no header matches.
func resolveColumns(headers []string, rules []columnRule) map[string]int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	indexes := make(map[string]int, len(rules))
	for _, rule := range rules {
		indexes[rule.field] = -1
		for i, h := range normalized {
			if rule.match(h) {
				indexes[rule.field] = i
				break
			}
		}
	}
	return indexes
}

// Date layouts tried in order; the first parse wins.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06",
	"Jan 2, 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount strips thousands-separator commas and parses the value,
// defaulting to zero on failure (ParseFailure is never fatal).
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Stats reports what the normalizer dropped. ShortRows counts rows
// with fewer cells than the header, which is also the post-repair
// validation signal for the inventory rejoin heuristic.
type Stats struct {
	Total     int
	Kept      int
	ShortRows int
	BadKeys   int
	BadDates  int
	Excluded  int
}

// Normalizer decodes parsed rows into typed records for either input
// schema.
type Normalizer struct {
	excluded map[string]bool
}

// NewNormalizer creates a normalizer; a nil location list uses
// DefaultExcludedLocations.
func NewNormalizer(excludedLocations []string) *Normalizer {
	if excludedLocations == nil {
		excludedLocations = DefaultExcludedLocations
	}
	excluded := make(map[string]bool, len(excludedLocations))
	for _, loc := range excludedLocations {
		excluded[loc] = true
	}
	return &Normalizer{excluded: excluded}
}

// NormalizeSales decodes sales-schema rows. The first row is the
// header.
func (n *Normalizer) NormalizeSales(rows [][]string) ([]entities.SalesRecord, Stats) {
	var records []entities.SalesRecord
	stats := n.normalize(rows, salesRules, func(f recordFields) {
		records = append(records, entities.SalesRecord{
			Location:    f.location,
			SKU:         f.sku,
			Date:        f.date,
			Description: f.description,
			Department:  f.department,
			Quantity:    f.amount,
		})
	})
	return records, stats
}

// NormalizeInventory decodes inventory-schema rows. The first row is
// the header.
func (n *Normalizer) NormalizeInventory(rows [][]string) ([]entities.InventoryRecord, Stats) {
	var records []entities.InventoryRecord
	stats := n.normalize(rows, inventoryRules, func(f recordFields) {
		records = append(records, entities.InventoryRecord{
			Location:    f.location,
			SKU:         f.sku,
			Date:        f.date,
			Description: f.description,
			Department:  f.department,
			Count:       f.amount,
		})
	})
	return records, stats
}

type recordFields struct {
	location    string
	sku         string
	date        time.Time
	description string
	department  string
	amount      decimal.Decimal
}

func (n *Normalizer) normalize(rows [][]string, rules []columnRule, emit func(recordFields)) Stats {
	var stats Stats
	if len(rows) < 2 {
		return stats
	}

	headers := rows[0]
	indexes := resolveColumns(headers, rules)
	cell := func(row []string, field string) string {
		i := indexes[field]
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for _, row := range rows[1:] {
		stats.Total++

		// Defensive against the repair heuristic under/over-merging.
		if len(row) < len(headers) {
			stats.ShortRows++
			continue
		}

		location := cell(row, fieldLocation)
		sku := entities.CanonicalSKU(cell(row, fieldSKU))
		if location == "" || sku == "" {
			stats.BadKeys++
			continue
		}
		if n.excluded[location] {
			stats.Excluded++
			continue
		}

		date, ok := parseDate(cell(row, fieldDate))
		if !ok {
			stats.BadDates++
			continue
		}

		department := cell(row, fieldDepartment)
		if department == "" {
			department = DefaultDepartment
		}

		emit(recordFields{
			location:    location,
			sku:         sku,
			date:        date,
			description: cell(row, fieldDescription),
			department:  department,
			amount:      parseAmount(cell(row, fieldQuantity)),
		})
		stats.Kept++
	}
	return stats
}
