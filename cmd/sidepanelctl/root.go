package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sidepanel/internal/config"
	"sidepanel/internal/output"
)

var rootCmd = &cobra.Command{
	Use:           "sidepanelctl",
	Short:         "Inspect and prepare the sidepanel overlay",
	Long:          "A companion CLI for the sidepanel overlay: manage its config file, preview placement and validate hotkeys.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml or json")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.sidepanel/config.json)")
}

// outputFormat reads the root --format flag
func outputFormat(cmd *cobra.Command) (output.Format, error) {
	format, _ := cmd.Root().PersistentFlags().GetString("format")
	return output.ParseFormat(format)
}

// loadConfig opens the config service named by --config
func loadConfig(cmd *cobra.Command) (*config.Service, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path == "" {
		return config.New()
	}
	return config.NewAt(path)
}

// printResult writes v to the command's stdout in the selected format
func printResult(cmd *cobra.Command, v interface{}) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), format, v)
}
