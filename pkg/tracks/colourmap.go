package tracks

import (
	"math"
	"slices"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

// ColourMap maps a value in [0, 1] to a colour by blending between evenly
// spaced stops.
type ColourMap struct {
	Name  string
	stops []layout.Colour
}

// Built-in colour maps.
var (
	Turbo   = mustColourMap("turbo", "#30123b", "#4686fb", "#1ae4b6", "#a2fc3c", "#fabb39", "#e4460a", "#7a0403")
	Viridis = mustColourMap("viridis", "#440154", "#3b528b", "#21918c", "#5ec962", "#fde725")
	Plasma  = mustColourMap("plasma", "#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921")
	Gray    = mustColourMap("gray", "#000000", "#ffffff")
)

var colourMaps = map[string]ColourMap{
	Turbo.Name:   Turbo,
	Viridis.Name: Viridis,
	Plasma.Name:  Plasma,
	Gray.Name:    Gray,
}

// NewColourMap builds a colour map from hex stops. At least one stop is
// required.
func NewColourMap(name string, hex ...string) (ColourMap, error) {
	if len(hex) == 0 {
		return ColourMap{}, errors.New(errors.ErrCodeInvalidInput, "colour map %q has no stops", name)
	}
	cm := ColourMap{Name: name, stops: make([]layout.Colour, 0, len(hex))}
	for _, h := range hex {
		c, err := layout.ParseColour(h)
		if err != nil {
			return ColourMap{}, err
		}
		cm.stops = append(cm.stops, c)
	}
	return cm, nil
}

func mustColourMap(name string, hex ...string) ColourMap {
	cm, err := NewColourMap(name, hex...)
	if err != nil {
		panic(err)
	}
	return cm
}

// LookupColourMap returns the built-in colour map with the given name.
func LookupColourMap(name string) (ColourMap, error) {
	cm, ok := colourMaps[name]
	if !ok {
		return ColourMap{}, errors.New(errors.ErrCodeInvalidInput, "unknown colour map %q (want one of %v)", name, ColourMapNames())
	}
	return cm, nil
}

// ColourMapNames lists the built-in colour maps in alphabetical order.
func ColourMapNames() []string {
	names := make([]string, 0, len(colourMaps))
	for n := range colourMaps {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// At samples the map at v, clamped to [0, 1].
func (m ColourMap) At(v float64) layout.Colour {
	if len(m.stops) == 0 {
		return layout.DefaultEdgeColour
	}
	if len(m.stops) == 1 || math.IsNaN(v) {
		return m.stops[0]
	}
	v = math.Max(0, math.Min(1, v))
	pos := v * float64(len(m.stops)-1)
	i := int(pos)
	if i >= len(m.stops)-1 {
		return m.stops[len(m.stops)-1]
	}
	return m.stops[i].Blend(m.stops[i+1], pos-float64(i))
}
