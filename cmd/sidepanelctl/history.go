package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sidepanel/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local chat history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print recent exchanges, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		exchanges, err := store.Recent(limit)
		if err != nil {
			return err
		}
		return printResult(cmd, exchanges)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded exchange",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d exchanges\n", n)
		return nil
	},
}

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	svc, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	path, err := svc.Get().HistoryFile()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func init() {
	historyListCmd.Flags().Int("limit", history.DefaultLimit, "Maximum number of exchanges")

	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
