package main

import (
	"os"

	"github.com/jsvensson/swatch/internal/lsp"
	"github.com/spf13/cobra"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagVerbose int
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "swatch-lsp",
	Short:   "Language server for .swatch palette files (stdio)",
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return lsp.NewServer(version, flagVerbose).Run()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (logs go to stderr)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
