package entities

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ErrEmptySelection is returned when a summary is created from zero
// selected report rows.
var ErrEmptySelection = errors.New("summary requires at least one selected row")

// SummaryDateLayout is the display form of a summary's creation date.
const SummaryDateLayout = "Jan 2, 2006"

var summaryNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	summaryNode = node
}

// NewSummaryID returns a fresh time-ordered summary id.
func NewSummaryID() snowflake.ID {
	return summaryNode.Generate()
}

// SummaryGroup is a named, frozen subset of report rows captured at a
// point in time. It owns copies of the row values: later changes to the
// live report never alter a saved summary.
type SummaryGroup struct {
	ID            snowflake.ID    `json:"id"`
	Name          string          `json:"name"`
	Date          string          `json:"date"`
	LineItems     int             `json:"lineItems"`
	TotalSold     decimal.Decimal `json:"totalSold"`
	TotalStock    decimal.Decimal `json:"totalStock"`
	TotalForecast decimal.Decimal `json:"totalForecast"`
	TotalPurchase decimal.Decimal `json:"totalPurchase"`
	Items         []ReportRow     `json:"items"`
}

// NewSummaryGroup snapshots the selected rows into a summary. The ids
// are time-ordered, so later summaries always sort after earlier ones.
func NewSummaryGroup(name string, selection []ReportRow) (*SummaryGroup, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	items := make([]ReportRow, len(selection))
	copy(items, selection)

	g := &SummaryGroup{
		ID:    summaryNode.Generate(),
		Name:  name,
		Date:  time.Now().Format(SummaryDateLayout),
		Items: items,
	}
	g.RecomputeTotals()
	return g, nil
}

// RecomputeTotals rebuilds the aggregate totals and line-item count
// from the owned items. Totals columns in an import are never trusted
// when line items are present.
func (g *SummaryGroup) RecomputeTotals() {
	g.LineItems = len(g.Items)
	g.TotalSold = decimal.Zero
	g.TotalStock = decimal.Zero
	g.TotalForecast = decimal.Zero
	g.TotalPurchase = decimal.Zero
	for _, item := range g.Items {
		g.TotalSold = g.TotalSold.Add(item.QtySold)
		g.TotalStock = g.TotalStock.Add(item.InStock)
		g.TotalForecast = g.TotalForecast.Add(item.Forecast)
		g.TotalPurchase = g.TotalPurchase.Add(item.Purchase)
	}
}
