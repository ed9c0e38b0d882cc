//go:build linux

package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"sidepanel/internal/overlay"
	"sidepanel/internal/platform/webview"
	"sidepanel/internal/platform/x11"
)

// newLocator prefers X11 so click-through works; Wayland-only sessions fall
// back to the Wails runtime
func newLocator(ctx context.Context, title string, log logger.Logger) (overlay.Locator, func()) {
	conn, err := x11.Connect()
	if err != nil {
		log.Warning(fmt.Sprintf("X11 unavailable, click-through disabled: %v", err))
		return webview.Locator(ctx), func() {}
	}
	return conn.Locator(title), conn.Close
}
