// Command wired routes, renders and interactively edits wire scenes.
package main

import "wired/cmd/wired/cmd"

func main() {
	cmd.Execute()
}
