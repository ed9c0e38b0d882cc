// Command sidepanelctl inspects the panel configuration and previews window
// placement without starting the UI.
package main

func main() {
	Execute()
}
