package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scholarly/cmd/handlers"
	"scholarly/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scholarly",
	Short: "Scholarly analyzes literature collections for themes and research gaps",
	Long: `Scholarly ingests bibliographic source records plus a research question and
produces a structured organization of the sources (themes, methodologies,
timeline) and a ranked list of research gap opportunities.`,
}

// Execute adds all child commands to the root command and runs it. Called by
// main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scholarly.yaml)")

	rootCmd.AddCommand(handlers.NewAnalyzeCmd())
	rootCmd.AddCommand(handlers.NewOrganizeCmd())
	rootCmd.AddCommand(handlers.NewProgressCmd())
	rootCmd.AddCommand(handlers.NewStoreCmd())
}

// initConfig loads configuration before any command runs.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
}
