package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wired/render"
)

var (
	renderFormat    string
	renderOutput    string
	renderScale     float64
	renderTheme     string
	renderDistinct  bool
	renderASCIIOnly bool
)

var renderCmd = &cobra.Command{
	Use:   "render <scene-file>",
	Short: "Draw a routed scene as text, SVG or PNG",
	Long: `Route a scene and draw it. Crossings are drawn as hops on the wire
that owns them; wires that could not avoid every obstacle are dashed (SVG)
or drawn in the blocked colour.

The format defaults to the extension of --output, or ascii on stdout.

Examples:
  wired render board.wired
  wired render board.wired -o board.svg
  wired render board.wired -f png --scale 2 --theme dark -o board.png`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	names := make([]string, 0, 3)
	for _, f := range render.AvailableFormats() {
		names = append(names, string(f))
	}
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "",
		"output format ("+strings.Join(names, ", ")+")")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"output file (default stdout)")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 1,
		"output units per scene unit (svg, png)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "light",
		"colour theme (light, dark)")
	renderCmd.Flags().BoolVar(&renderDistinct, "distinct", false,
		"give every wire its own colour")
	renderCmd.Flags().BoolVar(&renderASCIIOnly, "ascii-only", false,
		"use +-| instead of box-drawing characters")
}

// outputFormat picks the format from the flag, then the output extension.
func outputFormat(flag, output string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return render.ParseFormat(ext)
	}
	return render.FormatASCII, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(renderFormat, renderOutput)
	if err != nil {
		return err
	}
	theme, err := render.ThemeByName(renderTheme)
	if err != nil {
		return err
	}
	theme.Distinct = renderDistinct

	l, err := load(cmd, args[0])
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.Scale = renderScale
	opts.Theme = theme
	opts.Unicode = !renderASCIIOnly
	if l.settings.BumpRadius > 0 {
		opts.BumpRadius = l.settings.BumpRadius
	}
	r, err := render.NewRenderer(format, opts)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		return draw(r, cmd.OutOrStdout(), l)
	}
	f, err := os.Create(renderOutput)
	if err != nil {
		return err
	}
	if err := draw(r, f, l); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", renderOutput, r.FormatName())
	}
	return nil
}

func draw(r render.Renderer, w io.Writer, l *loaded) error {
	if err := r.Render(w, l.router.Frame()); err != nil {
		return fmt.Errorf("render %s: %w", r.FormatName(), err)
	}
	return nil
}
