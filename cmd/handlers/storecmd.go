package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scholarly/internal/config"
	"scholarly/internal/logger"
	"scholarly/internal/store"
)

// NewStoreCmd creates the artifact store management command.
func NewStoreCmd() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the persisted analysis artifacts",
	}

	storeCmd.AddCommand(newStoreStatsCmd())
	storeCmd.AddCommand(newStoreClearCmd())
	return storeCmd
}

func newStoreStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runStoreStats(); err != nil {
				logger.Error("Failed to get store stats", err)
				os.Exit(1)
			}
		},
	}
}

func newStoreClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all persisted analyses and organizations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runStoreClear(); err != nil {
				logger.Error("Failed to clear store", err)
				os.Exit(1)
			}
		},
	}
}

func runStoreStats() error {
	st, err := store.NewStore(config.Get().Store.Directory)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		return err
	}

	fmt.Printf("Analyses:      %d\n", stats.AnalysisCount)
	fmt.Printf("Organizations: %d\n", stats.OrganizationCount)
	fmt.Printf("Size:          %d bytes\n", stats.Size)
	if !stats.LastUpdated.IsZero() {
		fmt.Printf("Last updated:  %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runStoreClear() error {
	st, err := store.NewStore(config.Get().Store.Directory)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Println("Store cleared.")
	return nil
}
