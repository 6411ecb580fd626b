package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sohia/remote-work-tracker/internal/config"
	"github.com/sohia/remote-work-tracker/internal/export"
	"github.com/sohia/remote-work-tracker/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored job postings to CSV",
	Long:  "Export stored job postings to CSV files. Exactly one mode may be selected: --all, --category, a date range, --summary, or --analytics. With no mode the command prints usage and exits successfully.",
	RunE:  runExport,
}

var (
	exportAll        bool
	exportCategory   string
	exportStartDate  string
	exportEndDate    string
	exportSummary    bool
	exportAnalytics  bool
	exportOutput     string
	exportDB         string
	exportOutputDir  string
	exportConfigPath string
)

// exportDefaults are the built-in settings layered under config file values
// and flags.
var exportDefaults = config.Config{
	DatabaseURL: "remote_jobs.db",
	OutputDir:   "exports",
}

func init() {
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every stored job")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Export jobs in this exact category")
	exportCmd.Flags().StringVar(&exportStartDate, "start-date", "", "Range start, YYYY-MM-DD (requires --end-date)")
	exportCmd.Flags().StringVar(&exportEndDate, "end-date", "", "Range end, YYYY-MM-DD, inclusive (requires --start-date)")
	exportCmd.Flags().BoolVar(&exportSummary, "summary", false, "Export aggregate market statistics")
	exportCmd.Flags().BoolVar(&exportAnalytics, "analytics", false, "Export jobs with derived calendar and salary columns")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output filename (default is timestamped)")
	exportCmd.Flags().StringVar(&exportDB, "db", exportDefaults.DatabaseURL, "SQLite path or PostgreSQL connection URL")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", exportDefaults.OutputDir, "Directory for CSV files")
	exportCmd.Flags().StringVarP(&exportConfigPath, "config", "c", "", "Path to JSON config file")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := applyExportConfig(cmd); err != nil {
		return err
	}

	dateRange := exportStartDate != "" || exportEndDate != ""
	modes := 0
	for _, selected := range []bool{exportAll, exportCategory != "", dateRange, exportSummary, exportAnalytics} {
		if selected {
			modes++
		}
	}
	if modes == 0 {
		return cmd.Help()
	}
	if modes > 1 {
		return fmt.Errorf("select exactly one of --all, --category, --start-date/--end-date, --summary, or --analytics")
	}
	if dateRange && (exportStartDate == "" || exportEndDate == "") {
		return fmt.Errorf("--start-date and --end-date must be provided together")
	}

	ctx := cmd.Context()

	st := store.Open(exportDB)
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare database: %w", err)
	}

	exporter, err := export.New(st, exportOutputDir)
	if err != nil {
		return err
	}

	var result *export.Result
	switch {
	case exportAll:
		result, err = exporter.All(ctx, exportOutput)
	case exportCategory != "":
		result, err = exporter.ByCategory(ctx, exportCategory, exportOutput)
	case dateRange:
		result, err = exporter.ByDateRange(ctx, exportStartDate, exportEndDate, exportOutput)
	case exportSummary:
		result, err = exporter.Summary(ctx, exportOutput)
	case exportAnalytics:
		result, err = exporter.Analytics(ctx, exportOutput)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if result == nil {
		fmt.Fprintln(os.Stdout, "No matching jobs to export")
		return nil
	}

	fmt.Fprintf(os.Stdout, "Exported %d rows to %s\n", result.Rows, result.Path)
	return nil
}

func applyExportConfig(cmd *cobra.Command) error {
	if exportConfigPath == "" {
		return nil
	}

	cfg, err := config.LoadConfig(exportConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	merged := cfg.MergeWithDefaults(exportDefaults)

	if !cmd.Flags().Changed("db") {
		exportDB = merged.DatabaseURL
	}
	if !cmd.Flags().Changed("output-dir") {
		exportOutputDir = merged.OutputDir
	}
	return nil
}
