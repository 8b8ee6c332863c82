package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"wired/reroute"
	"wired/scene"
	"wired/sceneio"
)

var (
	// Global flags
	verbose   bool
	clearance float64
	gridStep  float64
	maxDepth  int
)

var rootCmd = &cobra.Command{
	Use:   "wired",
	Short: "Orthogonal wire router for schematic scenes",
	Long: `Route wires between component pins around obstacles, draw hops where
wires cross, and render or edit the result.

Scenes are JSON documents (*.json) or the text format:

  set clearance 20
  component U1 "Buffer" at 40,40 size 80x60 {
      pin OUT right 80,30
  }
  wire w1 U1.OUT -> U2.IN

Examples:
  wired route board.wired                  # Print every routed wire
  wired render board.wired -f svg -o a.svg # Draw the scene as SVG
  wired view board.wired                   # Drag components in the terminal`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log routing decisions to stderr")
	rootCmd.PersistentFlags().Float64Var(&clearance, "clearance", 0, "gap kept around obstacles (overrides the scene)")
	rootCmd.PersistentFlags().Float64Var(&gridStep, "grid-step", 0, "exploration grid step (overrides the scene)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "detour and exploration budget (overrides the scene)")
}

func logger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "wired: ", 0)
}

// loaded is a scene file ready to route.
type loaded struct {
	scene    *scene.Scene
	settings sceneio.Settings
	router   *reroute.Router
}

// load reads a scene file, applies flag overrides and routes every wire.
func load(cmd *cobra.Command, path string) (*loaded, error) {
	doc, err := sceneio.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := doc.Scene()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	st := doc.Settings()
	flags := cmd.Flags()
	if flags.Changed("clearance") {
		st.Planner.Clearance = clearance
	}
	if flags.Changed("grid-step") {
		st.Planner.GridStep = gridStep
	}
	if flags.Changed("max-depth") {
		st.Planner.MaxDepth = maxDepth
	}

	lg := logger()
	lg.Printf("loaded %s: %d components, %d wires", path, len(s.Components()), len(s.Wires()))
	r := reroute.New(s, st.Planner, reroute.WithLogger(lg))
	return &loaded{scene: s, settings: st, router: r}, nil
}
