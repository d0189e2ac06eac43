package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"

	"github.com/mdlane/campstock/pkg/application/services"
	"github.com/mdlane/campstock/pkg/domain/entities"
	domainservices "github.com/mdlane/campstock/pkg/domain/services"
	"github.com/mdlane/campstock/pkg/infrastructure/config"
	"github.com/mdlane/campstock/pkg/infrastructure/logging"
	"github.com/mdlane/campstock/pkg/infrastructure/repositories/sqlite"
	"github.com/mdlane/campstock/pkg/infrastructure/spreadsheet"
	"github.com/mdlane/campstock/pkg/infrastructure/tabular"
	"github.com/mdlane/campstock/pkg/interfaces/cli/output"
)

// Config holds configuration for the forecast command.
type Config struct {
	ConfigFile    string
	SalesFile     string
	InventoryFile string
	DBPath        string
	Format        string
	OutputDir     string
	Filter        string
	CreateSummary string
	ListSummaries bool
	DeleteSummary int64
	ExportPath    string
	ExportShape   string
	ImportPath    string
	Verbose       bool
	Help          bool
}

// ForecastCommand wires ingestion, the forecast engine and summary
// management behind the CLI flags.
type ForecastCommand struct {
	config Config
}

// NewForecastCommand creates a command with the given configuration.
func NewForecastCommand(config Config) *ForecastCommand {
	return &ForecastCommand{config: config}
}

// Execute runs the command.
func (c *ForecastCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}
	if c.config.DBPath != "" {
		cfg.Storage.Path = c.config.DBPath
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	normalizer := domainservices.NewNormalizer(cfg.ExcludedLocations)
	ingest := services.NewIngestService(store, normalizer, log)
	summaries := services.NewSummaryService(store, log)

	if err := c.ingestFiles(ctx, ingest); err != nil {
		return err
	}

	if err := c.runSummaryOps(ctx, summaries); err != nil {
		return err
	}
	if c.summaryOpsOnly() {
		return nil
	}

	rows, err := c.buildReport(ctx, store, cfg, log)
	if err != nil {
		return err
	}

	// Filter state round-trips through the settings store as JSON,
	// like every other piece of UI state.
	if c.config.Filter != "" {
		if data, err := json.Marshal(c.config.Filter); err == nil {
			if err := store.Set(ctx, "filters", string(data)); err != nil {
				log.WithError(err).Warn("failed to persist filter state")
			}
		}
	}

	if c.config.CreateSummary != "" {
		group, err := summaries.Create(ctx, c.config.CreateSummary, rows)
		if err != nil {
			return fmt.Errorf("failed to create summary: %w", err)
		}
		fmt.Printf("Created summary %q with %d items\n", group.Name, group.LineItems)
		return nil
	}

	return output.RenderReport(rows, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

func (c *ForecastCommand) ingestFiles(ctx context.Context, ingest *services.IngestService) error {
	if c.config.SalesFile != "" {
		text, err := os.ReadFile(c.config.SalesFile)
		if err != nil {
			return fmt.Errorf("failed to read sales file: %w", err)
		}
		n, err := ingest.IngestSales(ctx, string(text))
		if err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Printf("Loaded %d sales records from %s\n", n, c.config.SalesFile)
		}
	}

	if c.config.InventoryFile != "" {
		text, err := os.ReadFile(c.config.InventoryFile)
		if err != nil {
			return fmt.Errorf("failed to read inventory file: %w", err)
		}
		n, err := ingest.IngestInventory(ctx, string(text))
		if err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Printf("Loaded %d inventory records from %s\n", n, c.config.InventoryFile)
		}
	}
	return nil
}

func (c *ForecastCommand) buildReport(ctx context.Context, store *sqlite.Store, cfg config.Config, log *logrus.Logger) ([]entities.ReportRow, error) {
	sales, err := store.LoadSales(ctx)
	if err != nil {
		return nil, err
	}
	inventory, err := store.LoadInventory(ctx)
	if err != nil {
		return nil, err
	}

	engine := services.NewForecastService(services.ForecastConfig{
		SeasonStart: cfg.Season.StartMonth,
		SeasonEnd:   cfg.Season.EndMonth,
		Include:     services.IncludePolicy(cfg.Report.Include),
		OnProgress: func(stage string) {
			log.WithField("stage", stage).Debug("forecast progress")
		},
	})

	rows := engine.BuildReport(ctx, sales, inventory)
	return c.filterRows(rows), nil
}

// filterRows applies the CLI substring filter across the text columns,
// mirroring the original UI's filter sidebar.
func (c *ForecastCommand) filterRows(rows []entities.ReportRow) []entities.ReportRow {
	needle := strings.ToLower(strings.TrimSpace(c.config.Filter))
	if needle == "" {
		return rows
	}

	var kept []entities.ReportRow
	for _, r := range rows {
		haystack := strings.ToLower(strings.Join([]string{
			r.Campground, r.Department, r.SKU, r.Item, r.Vendor, r.Description,
		}, " "))
		if strings.Contains(haystack, needle) {
			kept = append(kept, r)
		}
	}
	return kept
}

func (c *ForecastCommand) summaryOpsOnly() bool {
	return c.config.ListSummaries || c.config.DeleteSummary != 0 ||
		c.config.ExportPath != "" || c.config.ImportPath != ""
}

func (c *ForecastCommand) runSummaryOps(ctx context.Context, summaries *services.SummaryService) error {
	if c.config.ImportPath != "" {
		rows, err := readRows(c.config.ImportPath)
		if err != nil {
			return err
		}
		n, err := summaries.Import(ctx, rows)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported %d summaries from %s\n", n, c.config.ImportPath)
	}

	if c.config.DeleteSummary != 0 {
		if err := summaries.Delete(ctx, snowflake.ID(c.config.DeleteSummary)); err != nil {
			return err
		}
		fmt.Printf("Deleted summary %d\n", c.config.DeleteSummary)
	}

	if c.config.ExportPath != "" {
		groups, err := summaries.List(ctx)
		if err != nil {
			return err
		}
		rows := services.SummaryBackupRows(groups)
		if c.config.ExportShape == "table" {
			rows = services.SummaryTableRows(groups)
		}
		if err := output.WriteRows(c.config.ExportPath, rows); err != nil {
			return err
		}
		fmt.Printf("Exported %d summaries to %s\n", len(groups), c.config.ExportPath)
	}

	if c.config.ListSummaries {
		groups, err := summaries.List(ctx)
		if err != nil {
			return err
		}
		output.RenderSummaries(groups)
	}
	return nil
}

// readRows loads generic rows from a CSV or XLSX file by extension.
func readRows(path string) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return spreadsheet.Read(f)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return tabular.Parse(string(text)), nil
}

func (c *ForecastCommand) showHelp() {
	fmt.Println(`campstock - campground inventory demand forecasting

Usage:
  campstock [flags]

Data loading:
  -sales FILE        Ingest a sales history CSV (replaces the dataset)
  -inventory FILE    Ingest an inventory count CSV (replaces the dataset)
  -db FILE           SQLite database path (default from config)
  -config FILE       YAML configuration file

Report:
  -format FORMAT     Output format: text, json, csv, xlsx (default text)
  -output DIR        Output directory for file formats
  -filter TEXT       Keep rows whose text columns contain TEXT

Summaries:
  -create-summary NAME   Snapshot the current (filtered) report
  -list-summaries        List stored summaries
  -delete-summary ID     Delete a summary by id
  -export FILE           Export summaries (.csv or .xlsx)
  -export-shape SHAPE    Export shape: backup (default) or table
  -import FILE           Import summaries from a backup or table export

Other:
  -verbose           Verbose output
  -help              Show this help`)
}
