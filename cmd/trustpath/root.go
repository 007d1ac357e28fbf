package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanshika/trustpath/internal/config"
	"github.com/vanshika/trustpath/internal/graph"
	"github.com/vanshika/trustpath/internal/network"
	"github.com/vanshika/trustpath/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trustpath",
		Short: "Find the strongest introduction paths through your network",
		Long: `trustpath builds a per-user acquaintance graph from personal contacts
and team-shared contacts, then ranks introduction paths by their weakest link.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newIngestCmd(),
		newDatagenCmd(),
		newPathsCmd(),
	)
	return root
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}

func searchOptions(cfg config.PathsConfig) network.SearchOptions {
	return network.SearchOptions{
		MaxHops:         cfg.MaxHops,
		TopK:            cfg.TopK,
		CandidateFactor: cfg.CandidateFactor,
	}
}

func serviceLimits(cfg config.PathsConfig) service.Limits {
	return service.Limits{
		MaxHops:         cfg.MaxHops,
		TopK:            cfg.TopK,
		CandidateFactor: cfg.CandidateFactor,
		HopLimit:        cfg.HopLimit,
		ResultLimit:     cfg.ResultLimit,
	}
}

func newIntroductionService(store network.Store, cfg config.Config, logger *slog.Logger) *service.IntroductionService {
	engine := network.NewEngine(store, searchOptions(cfg.Paths),
		network.WithFetchConcurrency(cfg.Paths.FetchConcurrency),
		network.WithLogger(logger.With("component", "engine")),
	)
	return service.NewIntroductionService(engine, serviceLimits(cfg.Paths), logger.With("component", "service"))
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
