// Package config loads Arbor's TOML configuration.
//
// A configuration file has two tables. [layout] controls geometry, [style]
// controls colours and stroke widths:
//
//	[layout]
//	axis = "time"
//	time_scale = 0.1
//
//	[style]
//	colormap = "viridis"
//	background = "#000000"
//
// Keys left out keep their [Default] values. Unknown keys are rejected so a
// typo does not silently fall back to a default.
package config

import (
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
	"github.com/matzehuels/arbor/pkg/plotter"
	"github.com/matzehuels/arbor/pkg/render/tree/sink"
	"github.com/matzehuels/arbor/pkg/tracks"
)

// Config is the full configuration.
type Config struct {
	Layout Layout `toml:"layout"`
	Style  Style  `toml:"style"`
}

// Layout holds the [layout] table.
type Layout struct {
	Axis           string  `toml:"axis" validate:"required,axis"`
	SlotWidth      float64 `toml:"slot_width" validate:"gt=0"`
	RowHeight      float64 `toml:"row_height" validate:"gt=0"`
	ExtentFraction float64 `toml:"extent_fraction" validate:"gte=0,lte=1"`
	TimeScale      float64 `toml:"time_scale" validate:"gt=0"`
	LabelOffset    float64 `toml:"label_offset" validate:"gte=0"`

	// Strict rejects queries whose track appears under more than one root.
	Strict bool `toml:"strict"`
}

// Style holds the [style] table.
type Style struct {
	EdgeWidth      float64 `toml:"edge_width" validate:"gt=0"`
	Colormap       string  `toml:"colormap" validate:"required,colormap"`
	DefaultColour  string  `toml:"default_colour" validate:"required,colour"`
	LabelColour    string  `toml:"label_colour" validate:"required,colour"`
	HighlightAlpha float64 `toml:"highlight_alpha" validate:"gte=0,lte=1"`
	DimAlpha       float64 `toml:"dim_alpha" validate:"gte=0,lte=1"`
	Background     string  `toml:"background" validate:"omitempty,colour"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			Axis:           layout.AxisGeneration.String(),
			SlotWidth:      1,
			RowHeight:      1,
			ExtentFraction: 0.6,
			TimeScale:      1,
			LabelOffset:    0.1,
		},
		Style: Style{
			EdgeWidth:      2,
			Colormap:       tracks.Turbo.Name,
			DefaultColour:  layout.DefaultEdgeColour.Hex(),
			LabelColour:    layout.DefaultLabelColour.Hex(),
			HighlightAlpha: 1,
			DimAlpha:       0.25,
			Background:     "#262930",
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Decode parses TOML text into cfg, which should hold the defaults, and
// validates the result.
func Decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInternal, err, "validate config")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(msgs, "; "))
}

// LayoutOptions converts the configuration to layout options.
// The configuration must be valid.
func (c Config) LayoutOptions() layout.Options {
	axis, _ := layout.ParseAxis(c.Layout.Axis)
	edge, _ := layout.ParseColour(c.Style.DefaultColour)
	label, _ := layout.ParseColour(c.Style.LabelColour)
	return layout.Options{
		Axis:           axis,
		SlotWidth:      c.Layout.SlotWidth,
		RowHeight:      c.Layout.RowHeight,
		ExtentFraction: c.Layout.ExtentFraction,
		TimeScale:      c.Layout.TimeScale,
		LabelOffset:    c.Layout.LabelOffset,
		EdgeColour:     edge,
		LabelColour:    label,
	}
}

// HighlightOptions returns the label alpha values.
func (c Config) HighlightOptions() layout.HighlightOptions {
	return layout.HighlightOptions{Opaque: c.Style.HighlightAlpha, Dimmed: c.Style.DimAlpha}
}

// ExtractOptions returns the subtree extraction options.
func (c Config) ExtractOptions() lineage.ExtractOptions {
	return lineage.ExtractOptions{Strict: c.Layout.Strict}
}

// PlotterOptions bundles the options a plotter needs.
func (c Config) PlotterOptions() plotter.Options {
	return plotter.Options{
		Layout:    c.LayoutOptions(),
		Highlight: c.HighlightOptions(),
		Extract:   c.ExtractOptions(),
	}
}

// ColourMap returns the configured track colour map.
func (c Config) ColourMap() (tracks.ColourMap, error) {
	return tracks.LookupColourMap(c.Style.Colormap)
}

// SVGOptions returns canvas options for the configured style.
func (c Config) SVGOptions() []sink.SVGOption {
	opts := []sink.SVGOption{sink.WithEdgeWidth(c.Style.EdgeWidth)}
	if c.Style.Background != "" {
		bg, _ := layout.ParseColour(c.Style.Background)
		opts = append(opts, sink.WithBackground(bg))
	}
	return opts
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("axis", func(fl validator.FieldLevel) bool {
		_, err := layout.ParseAxis(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("colour", func(fl validator.FieldLevel) bool {
		_, err := layout.ParseColour(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("colormap", func(fl validator.FieldLevel) bool {
		_, err := tracks.LookupColourMap(fl.Field().String())
		return err == nil
	})
}

// describe turns a field error into "layout.slot_width must be > 0".
func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be > " + fe.Param()
	case "gte":
		return field + " must be >= " + fe.Param()
	case "lte":
		return field + " must be <= " + fe.Param()
	case "axis":
		return field + " must be generation or time"
	case "colour":
		return field + " must be a hex colour like #aabbcc"
	case "colormap":
		return field + " must be one of " + strings.Join(tracks.ColourMapNames(), ", ")
	}
	return field + " failed " + fe.Tag()
}
