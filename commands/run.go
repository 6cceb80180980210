package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/raushankrgupta/shoe-price-tracker/config"
	"github.com/raushankrgupta/shoe-price-tracker/pipeline"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers"
	"github.com/raushankrgupta/shoe-price-tracker/storage"
	"github.com/raushankrgupta/shoe-price-tracker/utils"
)

var dryRun *bool

func init() {
	dryRun = runCmd.Flags().Bool("dry-run", false, "Scrape and print the combined rows without writing to the database.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--dry-run]",
	Short: "Scrapes both sources and appends one batch to the shoes table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd, *dryRun)
	},
}

func runScrape(cmd *cobra.Command, dry bool) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	p.DryRun = dry

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if dry {
		utils.RenderRecords(cmd.OutOrStdout(), result.Records)
		return nil
	}
	log.Printf("[Run] %s appended %d rows to %s\n", result.RunID, result.Written, cfg.TableName)
	return nil
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	sources, err := scrapers.NewScrapers(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrapers: %w", err)
	}

	var creds utils.CredentialProvider
	if cfg.DatabaseURL != "" {
		creds = utils.StaticConnString(cfg.DatabaseURL)
	} else {
		creds, err = utils.NewSecretsManagerProvider(ctx, cfg.AWSRegion, cfg.SecretName)
		if err != nil {
			return nil, fmt.Errorf("failed to create secrets client: %w", err)
		}
	}

	p := pipeline.New(creds, sources, sinkOpener(cfg))

	if cfg.SnapshotBucket != "" {
		archiver, err := utils.NewSnapshotArchiver(ctx, cfg.AWSRegion, cfg.SnapshotBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to create snapshot archiver: %w", err)
		}
		p.Archiver = archiver
	}
	if cfg.ReportEnabled() {
		p.Reporter = utils.NewRunReporter(cfg.SendgridAPIKey, cfg.ReportFrom, cfg.ReportTo)
	}
	return p, nil
}

// sinkOpener connects Postgres and, when configured, the Mongo mirror.
func sinkOpener(cfg *config.Config) pipeline.SinkOpener {
	return func(ctx context.Context, connString string) (storage.Sink, error) {
		pg, err := storage.NewPostgresSink(ctx, connString, cfg.TableName)
		if err != nil {
			return nil, err
		}
		if cfg.MongoURI == "" {
			return pg, nil
		}

		mirror, err := storage.NewMongoSink(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.TableName)
		if err != nil {
			_ = pg.Close(ctx)
			return nil, err
		}
		return storage.MultiSink{pg, mirror}, nil
	}
}
