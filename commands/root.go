package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "shoescrape",
	Short:        "shoescrape records skate shoe prices from CCS and Tactics.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd, false)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
