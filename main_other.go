//go:build !windows && !linux

package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"sidepanel/internal/overlay"
	"sidepanel/internal/platform/webview"
)

// newLocator uses the Wails runtime; click-through is a no-op here
func newLocator(ctx context.Context, title string, log logger.Logger) (overlay.Locator, func()) {
	return webview.Locator(ctx), func() {}
}
