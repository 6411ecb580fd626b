package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sohia/remote-work-tracker/internal/collect"
	"github.com/sohia/remote-work-tracker/internal/config"
	"github.com/sohia/remote-work-tracker/internal/fetch"
	"github.com/sohia/remote-work-tracker/internal/normalize"
	"github.com/sohia/remote-work-tracker/internal/observability"
	"github.com/sohia/remote-work-tracker/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Collect job postings from a source and store them",
	Long:  "Collect job postings from a job board (or a previously captured batch file), normalize them to the canonical schema, and insert them into the database. Records already present are skipped.",
	RunE:  runIngest,
}

var (
	ingestSource         string
	ingestDB             string
	ingestConfigPath     string
	ingestBatchFile      string
	ingestDump           string
	ingestLimit          int
	ingestPages          int
	ingestDelayMS        int
	ingestTimeoutSeconds int
	ingestRemotiveURL    string
	ingestBoardURL       string
	ingestUseBrowser     bool
	ingestVerbose        bool
)

// ingestDefaults are the built-in settings layered under config file values
// and flags.
var ingestDefaults = config.Config{
	DatabaseURL:           "remote_jobs.db",
	RemotiveBaseURL:       collect.DefaultRemotiveBaseURL,
	ListingPages:          1,
	RequestTimeoutSeconds: int(fetch.DefaultTimeout / time.Second),
	PolitenessDelayMillis: int(collect.DefaultPolitenessDelay / time.Millisecond),
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestSource, "source", "s", "", "Source to collect from: remotive, weworkremotely, or file")
	ingestCmd.Flags().StringVar(&ingestDB, "db", ingestDefaults.DatabaseURL, "SQLite path or PostgreSQL connection URL")
	ingestCmd.Flags().StringVarP(&ingestConfigPath, "config", "c", "", "Path to JSON config file")
	ingestCmd.Flags().StringVarP(&ingestBatchFile, "file", "f", "", "Raw batch file to replay (required for --source file)")
	ingestCmd.Flags().StringVar(&ingestDump, "dump", "", "Write the collected raw batch to this file instead of inserting")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "Maximum jobs per Remotive category (0 = no cap)")
	ingestCmd.Flags().IntVar(&ingestPages, "pages", ingestDefaults.ListingPages, "WeWorkRemotely listing pages to crawl")
	ingestCmd.Flags().IntVar(&ingestDelayMS, "delay-ms", ingestDefaults.PolitenessDelayMillis, "Pause between requests to the same source, in milliseconds")
	ingestCmd.Flags().IntVar(&ingestTimeoutSeconds, "timeout-seconds", ingestDefaults.RequestTimeoutSeconds, "HTTP timeout per request, in seconds")
	ingestCmd.Flags().StringVar(&ingestRemotiveURL, "remotive-url", ingestDefaults.RemotiveBaseURL, "Remotive API base URL")
	ingestCmd.Flags().StringVar(&ingestBoardURL, "board-url", collect.DefaultWeWorkRemotelyBaseURL, "WeWorkRemotely base URL")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Retry thin pages through a headless browser")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	ingestCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestVerbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := applyIngestConfig(cmd); err != nil {
		return err
	}

	runID := uuid.New().String()
	logger := slog.With("run_id", runID, "source", ingestSource)
	ctx := cmd.Context()

	collector, err := buildCollector()
	if err != nil {
		return err
	}

	logger.Info("collecting", "collector", collector.Name())
	raw, err := collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect from %s: %w", collector.Name(), err)
	}
	logger.Info("collected raw records", "count", len(raw))

	printer := observability.NewPrinter(os.Stdout)
	if ingestVerbose {
		printer.PrintCollectedBatch(collector.Name(), raw)
	}

	if ingestDump != "" {
		if err := collect.WriteBatch(ingestDump, raw); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d raw records to %s\n", len(raw), ingestDump)
		return nil
	}

	records := normalize.Batch(raw)
	valid := records[:0]
	for i := range records {
		if err := records[i].Validate(); err != nil {
			logger.Warn("dropping invalid record", "source_url", records[i].SourceURL, "err", err)
			continue
		}
		valid = append(valid, records[i])
	}

	st := store.Open(ingestDB)
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare database: %w", err)
	}

	report, err := st.InsertBatch(ctx, valid)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	logger.Info("ingest complete",
		"attempted", report.Attempted,
		"inserted", report.Inserted,
		"skipped", report.Skipped)

	if ingestVerbose {
		printer.PrintInsertReport(collector.Name(), report)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Ingested from %s\n", collector.Name())
	fmt.Fprintf(os.Stdout, "  Attempted: %d\n", report.Attempted)
	fmt.Fprintf(os.Stdout, "  Inserted:  %d\n", report.Inserted)
	fmt.Fprintf(os.Stdout, "  Skipped:   %d (already stored)\n", report.Skipped)

	return nil
}

// applyIngestConfig layers config file values, filled out with the built-in
// defaults, under every flag the user did not set explicitly. Flags always win.
func applyIngestConfig(cmd *cobra.Command) error {
	if ingestConfigPath == "" {
		return nil
	}

	cfg, err := config.LoadConfig(ingestConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	merged := cfg.MergeWithDefaults(ingestDefaults)

	if !cmd.Flags().Changed("db") {
		ingestDB = merged.DatabaseURL
	}
	if !cmd.Flags().Changed("remotive-url") {
		ingestRemotiveURL = merged.RemotiveBaseURL
	}
	if !cmd.Flags().Changed("limit") {
		ingestLimit = merged.RemotiveLimit
	}
	if !cmd.Flags().Changed("pages") {
		ingestPages = merged.ListingPages
	}
	if !cmd.Flags().Changed("delay-ms") {
		ingestDelayMS = merged.PolitenessDelayMillis
	}
	if !cmd.Flags().Changed("timeout-seconds") {
		ingestTimeoutSeconds = merged.RequestTimeoutSeconds
	}
	if !cmd.Flags().Changed("use-browser") && merged.UseBrowser {
		ingestUseBrowser = true
	}
	if !cmd.Flags().Changed("verbose") && merged.Verbose {
		ingestVerbose = true
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	return nil
}

func buildCollector() (collect.Collector, error) {
	delay := time.Duration(ingestDelayMS) * time.Millisecond
	timeout := time.Duration(ingestTimeoutSeconds) * time.Second

	switch ingestSource {
	case "remotive":
		return collect.NewRemotive(ingestRemotiveURL, ingestLimit, delay, timeout), nil
	case "weworkremotely":
		return collect.NewWeWorkRemotely(ingestBoardURL, ingestPages, delay, timeout, ingestUseBrowser), nil
	case "file":
		if ingestBatchFile == "" {
			return nil, fmt.Errorf("--file is required with --source file")
		}
		return collect.NewFile(ingestBatchFile), nil
	default:
		return nil, fmt.Errorf("unknown source %q: expected remotive, weworkremotely, or file", ingestSource)
	}
}
