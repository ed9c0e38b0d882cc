package shortcut

import (
	"os"
	"runtime"
)

// Supported reports whether global shortcuts can be registered in this
// session. On Linux registration goes through the X server, so a display is
// required; Wayland-only sessions have no global grab.
func Supported() bool {
	return supportedOn(runtime.GOOS, os.Getenv)
}

func supportedOn(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	case "linux":
		return getenv("DISPLAY") != ""
	default:
		return false
	}
}
