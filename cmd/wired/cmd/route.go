package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wired/core"
	"wired/reroute"
)

var routeJSON bool

var routeCmd = &cobra.Command{
	Use:   "route <scene-file>",
	Short: "Route every wire and print the paths",
	Long: `Route every wire of a scene and print its strategy, whether it is
clear of obstacles, its corner points and the hops it draws.

Examples:
  wired route board.wired
  wired route --json board.json
  wired route --clearance 10 -v board.wired`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "print the routes as JSON")
}

func runRoute(cmd *cobra.Command, args []string) error {
	l, err := load(cmd, args[0])
	if err != nil {
		return err
	}
	report := newRouteReport(l.router)
	if routeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return report.write(cmd.OutOrStdout())
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type bumpJSON struct {
	Over        string    `json:"over"`
	Point       pointJSON `json:"point"`
	Orientation string    `json:"orientation"`
	Segment     int       `json:"segment"`
}

type wireJSON struct {
	ID       string      `json:"id"`
	Strategy string      `json:"strategy,omitempty"`
	Clear    bool        `json:"clear"`
	Points   []pointJSON `json:"points,omitempty"`
	Bumps    []bumpJSON  `json:"bumps,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type routeReport struct {
	Wires []wireJSON `json:"wires"`
	Bumps int        `json:"bumps"`
}

func toPointJSON(p core.Point) pointJSON {
	return pointJSON{X: p.X, Y: p.Y}
}

func newRouteReport(r *reroute.Router) routeReport {
	rep := routeReport{Wires: []wireJSON{}, Bumps: len(r.Bumps())}
	for _, w := range r.Scene().Wires() {
		out := wireJSON{ID: w.ID}
		route, ok := r.Route(w.ID)
		if !ok {
			if err := r.Err(w.ID); err != nil {
				out.Error = err.Error()
			}
			rep.Wires = append(rep.Wires, out)
			continue
		}
		out.Strategy = route.Strategy.String()
		out.Clear = route.Clear
		drawn, _ := r.DrawnPath(w.ID)
		for _, p := range drawn.Points() {
			out.Points = append(out.Points, toPointJSON(p))
		}
		for _, b := range r.BumpsFor(w.ID) {
			out.Bumps = append(out.Bumps, bumpJSON{
				Over:        b.Other,
				Point:       toPointJSON(b.Point),
				Orientation: b.Orientation.String(),
				Segment:     b.Segment,
			})
		}
		rep.Wires = append(rep.Wires, out)
	}
	return rep
}

func (rep routeReport) write(w io.Writer) error {
	for _, wr := range rep.Wires {
		if wr.Error != "" {
			if _, err := fmt.Fprintf(w, "%s: error: %s\n", wr.ID, wr.Error); err != nil {
				return err
			}
			continue
		}
		state := "clear"
		if !wr.Clear {
			state = "BLOCKED"
		}
		pts := make([]string, len(wr.Points))
		for i, p := range wr.Points {
			pts[i] = core.Pt(p.X, p.Y).String()
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s %s\n", wr.ID, wr.Strategy, state, strings.Join(pts, " ")); err != nil {
			return err
		}
		for _, b := range wr.Bumps {
			if _, err := fmt.Fprintf(w, "  hop over %s at %s (%s, segment %d)\n",
				b.Over, core.Pt(b.Point.X, b.Point.Y), b.Orientation, b.Segment); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d wires, %d bumps\n", len(rep.Wires), rep.Bumps)
	return err
}
