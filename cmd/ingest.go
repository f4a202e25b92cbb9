package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"swim-admin/core/config"
	"swim-admin/core/database"
	"swim-admin/core/logger"
	"swim-admin/feature/event"
	"swim-admin/feature/ingest"
	"swim-admin/feature/ingest/parser"
	"swim-admin/feature/ingest/validate"
	"swim-admin/feature/roster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestDialect  string
	ingestPreview  string
	seagYear       int
	seagCity       string
	seagMeetName   string
	seagFirstMonth int
	seagFirstDay   int
)

// ingestCmd ingests result files from the local filesystem, bypassing the
// HTTP surface. Useful for backfills and for reviewing files offline.
var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest result spreadsheets from disk",
	Long: `Runs the ingestion pipeline over local files. By default each file is
committed; with --preview the annotated review spreadsheet for a single
file is written to the given path instead and nothing is persisted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dialect, err := parser.ParseDialect(ingestDialect)
		if err != nil {
			return err
		}
		var seag *parser.SEAGMeta
		if dialect == parser.DialectSEAG {
			seag = &parser.SEAGMeta{
				Year:     seagYear,
				City:     seagCity,
				MeetName: seagMeetName,
				Month:    seagFirstMonth,
				Day:      seagFirstDay,
			}
			if err := seag.Validate(); err != nil {
				return err
			}
		}

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logg, err := logger.New(&logger.Config{Level: "info", Format: "console"})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		eventService := event.NewService(db, logg)
		rosterService := roster.NewService(db, logg)
		snapshots := roster.NewSnapshotProvider(rosterService,
			time.Duration(cfg.Ingest.RosterCacheSeconds)*time.Second)
		service := ingest.NewService(db, eventService, snapshots, nil, "", cfg.Ingest, logg)

		ctx := context.Background()

		if ingestPreview != "" {
			if len(args) != 1 {
				return fmt.Errorf("--preview works on exactly one file")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rendered, summary, err := service.Preview(ctx, dialect, seag, args[0], data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(ingestPreview, rendered, 0o644); err != nil {
				return err
			}
			logg.Info("Preview written",
				zap.String("path", ingestPreview),
				zap.Int("total", summary.Total),
				zap.Int("matched", summary.Matched),
				zap.Int("unmatched", summary.Unmatched))
			return nil
		}

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				logg.Error("Failed to read file", zap.String("file", path), zap.Error(err))
				continue
			}
			outcome, report, err := service.Commit(ctx, dialect, seag, path, data)
			if err != nil {
				logg.Error("File ingestion failed", zap.String("file", path), zap.Error(err))
				continue
			}
			logg.Info("File ingested",
				zap.String("file", path),
				zap.Uint("meet_id", outcome.MeetID),
				zap.Int("created", outcome.ResultsCreated),
				zap.Int("updated", outcome.ResultsUpdated),
				zap.Int("skipped", outcome.RowsSkipped))
			for _, cat := range validate.Categories() {
				if n := report.Count(cat); n > 0 {
					logg.Warn("Issues found", zap.String("category", string(cat)), zap.Int("count", n))
				}
			}
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDialect, "dialect", "", "source dialect (swimrankings or seag)")
	ingestCmd.Flags().StringVar(&ingestPreview, "preview", "", "write the annotated preview to this path instead of committing")
	ingestCmd.Flags().IntVar(&seagYear, "year", 0, "meet year (seag)")
	ingestCmd.Flags().StringVar(&seagCity, "meet-city", "", "meet city (seag)")
	ingestCmd.Flags().StringVar(&seagMeetName, "meet-name", "", "meet name (seag)")
	ingestCmd.Flags().IntVar(&seagFirstMonth, "first-day-month", 0, "month of the first competition day (seag)")
	ingestCmd.Flags().IntVar(&seagFirstDay, "first-day-day", 0, "day of the first competition day (seag)")
	_ = ingestCmd.MarkFlagRequired("dialect")
	RootCmd.AddCommand(ingestCmd)
}
