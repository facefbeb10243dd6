// Package cli implements the arbor command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tracks"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "arbor"

	// defaultPNGScale is the resolution multiplier for PNG output.
	defaultPNGScale = 2.0
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetLogFormat switches the logger to the named output format.
func (c *CLI) SetLogFormat(format string) error {
	f, err := parseLogFormatter(format)
	if err != nil {
		return err
	}
	c.Logger.SetFormatter(f)
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Arbor draws lineage trees from tracking data",
		Long:         `Arbor reconstructs lineage trees (cell divisions, merges) from a parent-pointer track graph and renders them as dendrograms.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetDrawHooks(newLogHooks(c.Logger))
			observability.SetRenderHooks(newLogHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.rootsCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())

	for _, cmd := range root.Commands() {
		registerCompletions(cmd)
	}

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// sourceOpts are the flags shared by every command that loads tracks.
type sourceOpts struct {
	config   string // TOML config path
	axis     string // overrides [layout] axis
	colormap string // overrides [style] colormap
	strict   bool   // overrides [layout] strict
	validate bool   // check that every graph id has points
}

func (o *sourceOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&o.axis, "axis", "", "vertical axis: generation (default), time")
	cmd.Flags().StringVar(&o.colormap, "colormap", "", "track colour map: "+strings.Join(tracks.ColourMapNames(), ", "))
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail when a track belongs to more than one tree")
	cmd.Flags().BoolVar(&o.validate, "validate", false, "check that every track in the graph has points")
}

// workspace is a loaded track set plus the configuration used to draw it.
// It is read-only after loading and shared by concurrent requests.
type workspace struct {
	source string
	cfg    config.Config
	tracks *tracks.Tracks
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (o *sourceOpts) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return config.Config{}, err
		}
	}
	if o.axis != "" {
		cfg.Layout.Axis = o.axis
	}
	if o.colormap != "" {
		cfg.Style.Colormap = o.colormap
	}
	if o.strict {
		cfg.Layout.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// load reads the configuration and the tracks at src.
func (o *sourceOpts) load(ctx context.Context, src string) (*workspace, error) {
	logger := loggerFromContext(ctx)

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cm, err := cfg.ColourMap()
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	t, err := tracks.Open(ctx, src, tracks.WithColourMap(cm))
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + pluralize(t.Len(), "track") + " from " + src)

	if o.validate {
		if err := lineage.Validate(t.Graph(), t); err != nil {
			return nil, err
		}
		logger.Debug("Graph validated", "edges", len(t.Graph()))
	}
	return &workspace{source: src, cfg: cfg, tracks: t}, nil
}

// parseTrackIDs parses comma-separated track ids.
func parseTrackIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one track id is required")
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := errors.ParseTrackID(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
