package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/trustpath/internal/config"
	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/logging"
	"github.com/vanshika/trustpath/internal/repository"
	"github.com/vanshika/trustpath/internal/service"
)

func newPathsCmd() *cobra.Command {
	var (
		datasetPath string
		query       service.PathQuery
	)

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Rank introduction paths against a dataset file without a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if (query.TargetID == "") == (query.Description == "") {
				return errors.New("exactly one of --target and --query is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := logging.New(cfg.Logging).With("component", "paths")

			ds, err := dataset.Load(datasetPath)
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return fmt.Errorf("invalid dataset %s: %w", datasetPath, err)
			}

			store := repository.NewMemoryStore()
			if err := dataset.Apply(ctx, ds, store); err != nil {
				return fmt.Errorf("load dataset into memory: %w", err)
			}
			svc := newIntroductionService(store, cfg, logger)

			var result any
			if query.TargetID != "" {
				result, err = svc.FindPaths(ctx, query)
			} else {
				result, err = svc.SearchPaths(ctx, query)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&datasetPath, "dataset", "data/network.yaml", "dataset file (YAML or JSON)")
	flags.StringVar(&query.UserID, "user", "", "id of the user asking for an introduction")
	flags.StringVar(&query.TargetID, "target", "", "target node id")
	flags.StringVar(&query.Description, "query", "", "free-text description of the target")
	flags.IntVar(&query.MaxHops, "max-hops", 0, "maximum path length (0 uses the configured default)")
	flags.IntVar(&query.TopK, "top-k", 0, "number of paths to return (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
