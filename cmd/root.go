package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholarly-group/screening-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "screening-cli",
	Short: "Automated literature screening pipeline",
	Long:  "Screens batches of paper titles and abstracts: extracts metadata, generates screening criteria, evaluates every paper against them, and ranks the most relevant papers for full-text review.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
