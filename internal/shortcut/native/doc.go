// Package native claims global shortcuts from the operating system. It is
// kept apart from package shortcut so that parsing, the CLI and the panel
// logic never load a native hotkey backend.
//
// Linux grabs keys on the X root window through xgb. Windows and macOS use
// golang.design/x/hotkey.
package native
