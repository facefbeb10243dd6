package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/lineage/layout"
	"github.com/matzehuels/arbor/pkg/tracks"
)

// flagValues lists the fixed values offered for shell completion of each
// enumerated flag. The completion command itself is cobra's default.
func flagValues() map[string][]string {
	return map[string][]string{
		"axis":     {layout.AxisGeneration.String(), layout.AxisTime.String()},
		"colormap": tracks.ColourMapNames(),
		"format":   supportedFormats,
		"view":     {viewTree, viewNodeLink},
	}
}

// registerCompletions attaches value completion to every enumerated flag
// cmd defines.
func registerCompletions(cmd *cobra.Command) {
	for flag, values := range flagValues() {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
