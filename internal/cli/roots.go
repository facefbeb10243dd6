package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/lineage"
)

// rootsOpts holds the command-line flags for the roots command.
type rootsOpts struct {
	sourceOpts
	limit int // rows shown, 0 for all
}

// rootsCommand creates the roots command, which lists every lineage tree.
func (c *CLI) rootsCommand() *cobra.Command {
	var opts rootsOpts

	cmd := &cobra.Command{
		Use:   "roots <tracks>",
		Short: "List the lineage trees in a tracks file",
		Example: `  arbor roots cells.json
  arbor roots https://example.org/cells.csv --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoots(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "show at most n trees (largest first)")

	return cmd
}

// treeSummary describes one lineage tree.
type treeSummary struct {
	Root        int64
	Tracks      int
	Generations int
	Leaves      int
	Time        lineage.TimeRange
}

// summarizeRoots extracts every tree rooted in the graph and returns them
// largest first, ties broken by root id.
func summarizeRoots(ws *workspace) ([]treeSummary, error) {
	roots, fwd := lineage.Invert(ws.tracks.Graph())
	opts := ws.cfg.ExtractOptions()

	out := make([]treeSummary, 0, len(roots))
	for _, r := range roots {
		_, nodes, err := lineage.Extract(fwd, roots, ws.tracks, r, opts)
		if err != nil {
			return nil, err
		}
		s := treeSummary{Root: r, Tracks: len(nodes), Time: nodes[0].Time}
		for _, n := range nodes {
			s.Generations = max(s.Generations, n.Generation)
			s.Time.Min = min(s.Time.Min, n.Time.Min)
			s.Time.Max = max(s.Time.Max, n.Time.Max)
			if n.IsLeaf() {
				s.Leaves++
			}
		}
		out = append(out, s)
	}

	sortSummaries(out)
	return out, nil
}

func sortSummaries(s []treeSummary) {
	slices.SortStableFunc(s, func(a, b treeSummary) int { return cmp.Compare(b.Tracks, a.Tracks) })
}

// countTracked returns how many track ids take part in some lineage edge.
func countTracked(g lineage.RawGraph) int {
	seen := make(map[int64]bool)
	for child, parents := range g {
		seen[child] = true
		for _, p := range parents {
			seen[p] = true
		}
	}
	return len(seen)
}

func runRoots(ctx context.Context, src string, opts *rootsOpts) error {
	ws, err := opts.load(ctx, src)
	if err != nil {
		return err
	}

	summaries, err := summarizeRoots(ws)
	if err != nil {
		return err
	}

	isolated := ws.tracks.Len() - countTracked(ws.tracks.Graph())
	if len(summaries) == 0 {
		printInfo("No lineage trees; %s without parents or children", pluralize(isolated, "track"))
		return nil
	}

	shown := summaries
	if opts.limit > 0 && opts.limit < len(shown) {
		shown = shown[:opts.limit]
	}

	fmt.Println(rootsTable(shown))
	fmt.Println()
	printSuccess("%s · %s without lineage", pluralize(len(summaries), "tree"), pluralize(isolated, "isolated track"))
	if len(shown) < len(summaries) {
		printInfo("Showing %d of %d", len(shown), len(summaries))
	}
	printNextStep("Draw a tree", fmt.Sprintf("%s draw %s --id %d", appName, src, shown[0].Root))
	return nil
}

func rootsTable(rows []treeSummary) string {
	data := make([][]string, len(rows))
	for i, s := range rows {
		data[i] = []string{
			strconv.FormatInt(s.Root, 10),
			strconv.Itoa(s.Tracks),
			strconv.Itoa(s.Generations),
			strconv.Itoa(s.Leaves),
			fmt.Sprintf("%d-%d", s.Time.Min, s.Time.Max),
			strconv.FormatInt(s.Time.Span(), 10),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Root", "Tracks", "Generations", "Leaves", "Frames", "Span").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleNumber
			case col >= 4:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}
