package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mdlane/campstock/pkg/infrastructure/config"
	"github.com/mdlane/campstock/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		salesFile     = flag.String("sales", "", "Path to a sales history CSV to ingest")
		inventoryFile = flag.String("inventory", "", "Path to an inventory count CSV to ingest")
		dbPath        = flag.String("db", "", "SQLite database path (overrides config)")
		configFile    = flag.String("config", "", "Path to YAML configuration file")
		format        = flag.String("format", "text", "Output format: text, json, csv, xlsx")
		outputDir     = flag.String("output", "", "Output directory for file formats")
		filter        = flag.String("filter", "", "Keep report rows containing this text")
		createSummary = flag.String("create-summary", "", "Snapshot the current report under this name")
		listSummaries = flag.Bool("list-summaries", false, "List stored summaries")
		deleteSummary = flag.Int64("delete-summary", 0, "Delete the summary with this id")
		exportPath    = flag.String("export", "", "Export summaries to this file (.csv or .xlsx)")
		exportShape   = flag.String("export-shape", "backup", "Export shape: backup or table")
		importPath    = flag.String("import", "", "Import summaries from this file")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()
	config.LoadEnv()

	cmd := commands.NewForecastCommand(commands.Config{
		ConfigFile:    *configFile,
		SalesFile:     *salesFile,
		InventoryFile: *inventoryFile,
		DBPath:        *dbPath,
		Format:        *format,
		OutputDir:     *outputDir,
		Filter:        *filter,
		CreateSummary: *createSummary,
		ListSummaries: *listSummaries,
		DeleteSummary: *deleteSummary,
		ExportPath:    *exportPath,
		ExportShape:   *exportShape,
		ImportPath:    *importPath,
		Verbose:       *verbose,
		Help:          *help,
	})

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
