//go:build windows

package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"sidepanel/internal/overlay"
	"sidepanel/internal/platform/win32"
)

// newLocator finds the panel by title through user32
func newLocator(ctx context.Context, title string, log logger.Logger) (overlay.Locator, func()) {
	return win32.Locator(title), func() {}
}
