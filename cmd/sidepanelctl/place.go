package main

import (
	"github.com/spf13/cobra"

	"sidepanel/internal/geometry"
	"sidepanel/internal/overlay"
)

// PlacementResult is the output of the place command
type PlacementResult struct {
	Monitor   geometry.Rect  `yaml:"monitor" json:"monitor"`
	Expanded  PanelPlacement `yaml:"expanded" json:"expanded"`
	Collapsed PanelPlacement `yaml:"collapsed" json:"collapsed"`
}

// PanelPlacement is the size and snapped position for one panel state
type PanelPlacement struct {
	Input    string         `yaml:"input" json:"input"`
	Size     geometry.Size  `yaml:"size" json:"size"`
	Position geometry.Point `yaml:"position" json:"position"`
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Compute where the panel lands on a monitor in each state",
	Long: `Compute the snapped top-right position of the panel for both states.

Monitor and window default to the configured fallback monitor and expanded size.`,
	Example: `  sidepanelctl place
  sidepanelctl place --monitor 1920,0,2560,1440 --window 320x1000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg := svc.Get()

		monitor := cfg.Fallback()
		if s, _ := cmd.Flags().GetString("monitor"); s != "" {
			if monitor, err = geometry.ParseRect(s); err != nil {
				return err
			}
		}

		window := cfg.ExpandedSize()
		if s, _ := cmd.Flags().GetString("window"); s != "" {
			if window, err = geometry.ParseSize(s); err != nil {
				return err
			}
		}

		return printResult(cmd, computePlacement(monitor, window))
	},
}

func computePlacement(monitor geometry.Rect, window geometry.Size) PlacementResult {
	placement := func(state overlay.State, size geometry.Size) PanelPlacement {
		return PanelPlacement{
			Input:    state.InputLabel(),
			Size:     size,
			Position: geometry.SnapTopRight(monitor, size),
		}
	}

	collapsed := geometry.Size{Width: 0, Height: window.Height}
	return PlacementResult{
		Monitor:   monitor,
		Expanded:  placement(overlay.Expanded, window),
		Collapsed: placement(overlay.Collapsed, collapsed),
	}
}

func init() {
	placeCmd.Flags().String("monitor", "", "Monitor rectangle as X,Y,W,H")
	placeCmd.Flags().String("window", "", "Expanded window size as W,H or WxH")
	rootCmd.AddCommand(placeCmd)
}
