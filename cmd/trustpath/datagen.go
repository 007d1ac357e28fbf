package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/generator"
)

func newDatagenCmd() *cobra.Command {
	cfg := generator.DefaultConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Generate a synthetic acquaintance network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.AcquaintanceRatio = clampProbability(cfg.AcquaintanceRatio)
			cfg.ShareChance = clampProbability(cfg.ShareChance)

			ds, err := generator.New(cfg).Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			if err := dataset.Write(ds, out); err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d users, %d contacts, %d teams and %d shares into %s\n",
				len(ds.Users), len(ds.Contacts), len(ds.Teams), len(ds.Shares), out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.NumUsers, "users", cfg.NumUsers, "number of users to generate")
	flags.IntVar(&cfg.ContactsPerUser, "contacts-per-user", cfg.ContactsPerUser, "contacts owned by each user")
	flags.Float64Var(&cfg.AcquaintanceRatio, "acquaintance-ratio", cfg.AcquaintanceRatio, "probability a contact knows another contact of the same owner")
	flags.IntVar(&cfg.NumTeams, "teams", cfg.NumTeams, "number of teams")
	flags.IntVar(&cfg.TeamSize, "team-size", cfg.TeamSize, "members per team")
	flags.Float64Var(&cfg.ShareChance, "share-chance", cfg.ShareChance, "probability a member shares a contact with a team")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for deterministic generation")
	flags.StringVar(&out, "out", "data/network.yaml", "output file; .json writes JSON, anything else YAML")
	return cmd
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
