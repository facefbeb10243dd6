package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	sourceOpts
	ids         string   // comma-separated track ids
	output      string   // output file (single id and format), base path, or "-" for stdout
	formats     []string // output formats
	view        string   // "tree" or "nodelink"
	noHighlight bool     // keep every label opaque
}

// drawCommand creates the draw command, which writes the lineage tree of one
// or more tracks to disk.
func (c *CLI) drawCommand() *cobra.Command {
	var formatsStr string
	opts := drawOpts{view: viewTree}

	cmd := &cobra.Command{
		Use:   "draw <tracks>",
		Short: "Draw the lineage tree containing a track",
		Long: `Draw extracts the lineage tree that contains each requested track, lays it
out as a dendrogram and writes it in the requested formats.

The tracks file is JSON or CSV, local or http(s).`,
		Example: `  arbor draw cells.json --id 7
  arbor draw cells.csv --id 7,12 -f svg,json -o out/lineage
  arbor draw cells.json --id 7 --view nodelink -f dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := errors.ValidateFormats(opts.formats, supportedFormats); err != nil {
				return err
			}
			if err := validateView(opts.view); err != nil {
				return err
			}
			return runDraw(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.ids, "id", "", "track id(s) to draw (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single id/format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(supportedFormats, ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view: tree (default), nodelink")
	cmd.Flags().BoolVar(&opts.noHighlight, "no-highlight", false, "do not dim labels of other tracks")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// runDraw loads the tracks and writes one artifact per id and format.
func runDraw(ctx context.Context, src string, opts *drawOpts) error {
	ids, err := parseTrackIDs(opts.ids)
	if err != nil {
		return err
	}
	if opts.output == "-" && (len(ids) > 1 || len(opts.formats) > 1) {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes a single id and format")
	}

	ws, err := opts.load(ctx, src)
	if err != nil {
		return err
	}

	quiet := opts.output == "-"
	var failed error
	for _, id := range ids {
		err := drawOne(ctx, ws, id, ids, opts, quiet)
		if err == nil {
			continue
		}
		if len(ids) == 1 {
			return err
		}
		// Keep drawing the remaining ids; report the first failure at the end.
		printError("Track %d: %s", id, errors.UserMessage(err))
		if failed == nil {
			failed = err
		}
	}
	if failed != nil {
		return failed
	}
	if !quiet && len(ids) == 1 && opts.view == viewTree && !slices.Contains(opts.formats, formatText) {
		fmt.Println()
		printNextStep("Preview in the terminal", fmt.Sprintf("%s draw %s --id %d -f txt -o -", appName, src, ids[0]))
	}
	return nil
}

func drawOne(ctx context.Context, ws *workspace, id int64, ids []int64, opts *drawOpts, quiet bool) error {
	logger := loggerFromContext(ctx)

	d, err := ws.draw(ctx, id, !opts.noHighlight)
	if err != nil {
		return err
	}
	logger.Infof("Drew tree of track %d (root %d)", id, d.root())

	single := len(ids) == 1 && len(opts.formats) == 1
	var written []string
	for _, format := range opts.formats {
		data, err := renderWithSpinner(ctx, d, format, opts.view, quiet)
		if err != nil {
			return fmt.Errorf("track %d/%s: %w", id, format, err)
		}

		path := outputPath(opts.output, ws.source, id, format, single, len(ids) > 1)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		logger.Debugf("Wrote %d bytes to %s", len(data), path)
		written = append(written, path)
	}

	if quiet {
		return nil
	}
	tree := d.plotter.Tree()
	printSuccess("Tree of track %s", StyleNumber.Render(fmt.Sprint(id)))
	printTreeStats(tree.Root, len(tree.Nodes), len(tree.Edges))
	if len(tree.Nodes) == 1 {
		printWarning("Track %d has no parents or children", id)
	}
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// renderWithSpinner renders a format, showing a spinner for the formats
// that shell out to external tools.
func renderWithSpinner(ctx context.Context, d *drawing, format, view string, quiet bool) ([]byte, error) {
	slow := format == formatPDF || format == formatPNG || (view == viewNodeLink && format == formatSVG)
	if !slow || quiet {
		return d.render(ctx, format, view)
	}
	return withSpinner(ctx, os.Stderr, "Rendering "+strings.ToUpper(format)+"...", func() ([]byte, error) {
		return d.render(ctx, format, view)
	})
}

// outputPath names the artifact for id and format. A single artifact goes to
// output as given; otherwise names are built from a base path, with the
// track id appended when several ids are drawn.
func outputPath(output, source string, id int64, format string, single, multiID bool) string {
	if single && output != "" {
		return output
	}
	base := basePath(output, source)
	if multiID || output == "" {
		return fmt.Sprintf("%s_%d.%s", base, id, format)
	}
	return base + "." + format
}

// openOutput opens path for writing; "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	return f, nil
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return out.Close()
}

// nopCloser wraps a writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
