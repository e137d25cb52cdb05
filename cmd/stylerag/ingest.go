package main

import (
	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest the rule corpus into the vector index",
		Long: `Flatten every JSON rule book in the corpus directory, embed each
fragment, and upsert the batch into the vector collection. If the
collection already exists the ingest is skipped; use --force to drop and
rebuild it after a corpus change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			if force {
				return svc.Reindex(cmd.Context())
			}
			return svc.Initialize(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "drop the collection and rebuild from the corpus")
	return cmd
}
