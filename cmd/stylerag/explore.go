package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vichi100/style-api-server/internal/tui"
)

func exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Interactively explore the rule index",
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			summary := fmt.Sprintf("corpus=%s  collection=%s  embedder=%s", cfg.Corpus.Dir, cfg.VectorStore.Collection, cfg.Embedder.Type)
			m := tui.New(svc, summary)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}
