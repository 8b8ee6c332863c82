package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"wired/sceneio"
	"wired/terminal"
)

var viewReadOnly bool

var viewCmd = &cobra.Command{
	Use:   "view <scene-file>",
	Short: "Edit a scene in the terminal with live re-routing",
	Long: `Open a scene in an interactive terminal view. Select a component with
Tab, move it with the arrow keys and watch every wire re-route.

Keys:
  Tab / Shift-Tab  select component
  arrows           move selection one grid step
  u / U            undo / redo a move
  r                re-route everything
  s                save back to the scene file
  q, Esc           quit

Examples:
  wired view board.wired
  wired view --read-only board.json`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewReadOnly, "read-only", false, "disable saving")
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	l, err := load(cmd, path)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}

	v := terminal.NewViewer(screen, l.router, filepath.Base(path))
	if !viewReadOnly {
		v.Save = func() error {
			return sceneio.Save(path, sceneio.FromScene(l.scene, l.settings))
		}
	}
	return v.Run()
}
