package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var limit int
	var source string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Retrieve rule fragments relevant to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			if err := svc.Initialize(cmd.Context()); err != nil {
				return err
			}
			query := strings.Join(args, " ")
			var context string
			if source != "" {
				context, err = svc.RetrieveFromSource(cmd.Context(), query, source, limit)
			} else {
				context, err = svc.RetrieveRelevantRules(cmd.Context(), query, limit)
			}
			if err != nil {
				return err
			}
			if context == "" {
				context = "No matching rules.\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), context)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of fragments to retrieve")
	cmd.Flags().StringVar(&source, "source", "", "restrict retrieval to one rule book filename")
	return cmd
}
