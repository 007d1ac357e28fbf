package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/trustpath/internal/config"
	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/logging"
	"github.com/vanshika/trustpath/internal/repository"
	"github.com/vanshika/trustpath/internal/service"
)

var errEmptyDataset = errors.New("dataset contains no users")

func newIngestCmd() *cobra.Command {
	var (
		datasetPath string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Write a dataset file into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := logging.New(cfg.Logging).With("component", "ingest")

			ds, err := dataset.Load(datasetPath)
			if err != nil {
				return err
			}
			if len(ds.Users) == 0 {
				return fmt.Errorf("%w: %s", errEmptyDataset, datasetPath)
			}

			graphClient, err := buildGraphClient(ctx, logger, cfg)
			if err != nil {
				return fmt.Errorf("create graph client: %w", err)
			}
			defer func() {
				if err := graphClient.Close(ctx); err != nil {
					logger.Warn("closing graph client failed", "error", err)
				}
			}()

			ingestor := service.NewBulkIngestor(repository.New(graphClient), workers, logger)

			start := time.Now()
			logger.Info("ingesting dataset",
				"path", datasetPath,
				"users", len(ds.Users),
				"contacts", len(ds.Contacts),
				"teams", len(ds.Teams),
				"workers", workers,
			)
			if err := ingestor.Ingest(ctx, ds); err != nil {
				return fmt.Errorf("ingest %s: %w", datasetPath, err)
			}
			logger.Info("ingestion complete", "duration", time.Since(start).String())
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "data/network.yaml", "dataset file (YAML or JSON)")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent writers")
	return cmd
}
