package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twquant",
	Short: "台股個股健診引擎",
	Long: `twquant - 台股個股健診 CLI

抓取日線價量、三大法人買賣超與個股新聞，
計算均線 / 乖離 / 量能指標並給出綜合評分。

Usage:
  go run ./cmd/twquant [command]

Examples:
  go run ./cmd/twquant api
  go run ./cmd/twquant diagnose 2330
  go run ./cmd/twquant news 2330 --limit 3`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
