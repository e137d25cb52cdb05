package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vichi100/style-api-server/internal/domain"
)

func scoreCmd() *cobra.Command {
	var top, bottom, mood string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an outfit against the rule corpus",
		Long: `Score an outfit described as free-text top/bottom descriptors, with an
optional target occasion. Prints the score result as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if top == "" && bottom == "" {
				return fmt.Errorf("at least one of --top or --bottom is required")
			}
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
			var topItem, bottomItem *domain.OutfitItem
			if top != "" {
				topItem = &domain.OutfitItem{Tags: top}
			}
			if bottom != "" {
				bottomItem = &domain.OutfitItem{Tags: bottom}
			}
			result, err := svc.ScoreOutfitSemantic(cmd.Context(), topItem, bottomItem, mood)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&top, "top", "", "top descriptor, e.g. \"oversized cotton t-shirt\"")
	cmd.Flags().StringVar(&bottom, "bottom", "", "bottom descriptor, e.g. \"black denim jeans\"")
	cmd.Flags().StringVar(&mood, "mood", "", "target occasion, e.g. \"formal gala\"")
	return cmd
}
