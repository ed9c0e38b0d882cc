package main

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"sidepanel/internal/shortcut"
)

// HotkeyResult is the output of hotkey parse
type HotkeyResult struct {
	Accelerator string   `yaml:"accelerator" json:"accelerator"`
	Modifiers   []string `yaml:"modifiers" json:"modifiers"`
	Key         string   `yaml:"key" json:"key"`
	Supported   bool     `yaml:"supported" json:"supported"`
}

var hotkeyCmd = &cobra.Command{
	Use:   "hotkey",
	Short: "Work with global hotkey accelerators",
}

var hotkeyParseCmd = &cobra.Command{
	Use:   "parse [accelerator]",
	Short: "Validate an accelerator and print its canonical form",
	Long: `Validate an accelerator such as ctrl+shift+alt+o.

With no argument the configured hotkey is parsed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accel := ""
		if len(args) == 1 {
			accel = args[0]
		} else {
			svc, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			accel = svc.Get().Hotkey
		}

		combo, err := shortcut.Parse(accel)
		if err != nil {
			return err
		}
		return printResult(cmd, describeCombo(combo))
	},
}

func describeCombo(c shortcut.Combo) HotkeyResult {
	return HotkeyResult{
		Accelerator: c.String(),
		Modifiers:   lo.Map(c.Modifiers, func(m shortcut.Modifier, _ int) string { return m.String() }),
		Key:         c.Key,
		Supported:   shortcut.Supported(),
	}
}

func init() {
	hotkeyCmd.AddCommand(hotkeyParseCmd)
	rootCmd.AddCommand(hotkeyCmd)
}
