// Package io reads splinemat config files and knot tables.
package io

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/splinemat/splinemat/interpolate"
	"github.com/splinemat/splinemat/material"
)

const ExamplePropertyFile = `[property "free_energy"]
# Each property section defines one spline-interpolated material property
# over a coupled scalar variable.

# Name of the coupled variable the property is interpolated over.
Variable = c

# Knot tables. Either give them inline:
X = 0, 0.25, 0.5, 0.75, 1
Y = 0, 0.1, 0, 0.1, 0

# ... or point at a whitespace separated table file:
# KnotFile = knots.txt
# XCol = 0
# YCol = 1

#######################
# Optional Parameters #
#######################

# Boundary slopes. Omitting one gives a natural boundary (zero curvature)
# at that end.
# Yp1 = 0.5
# Ypn = -0.5

# Highest derivative to publish, between 0 and 2. Defaults to 2.
# DerivativeOrder = 2`

// PropertyConfig describes one [property "name"] section of a config file.
// Knots are given either inline through X and Y or through a whitespace
// separated table file named by KnotFile.
type PropertyConfig struct {
	// Required
	Variable string

	// Inline knot tables, comma separated.
	X, Y string

	// Alternative knot source.
	KnotFile   string
	XCol, YCol int

	// Optional boundary slopes. An empty string means a natural boundary
	// at that end.
	Yp1, Ypn string

	// Optional. Zero selects the default order of 2.
	DerivativeOrder int

	Name string

	xs, ys   []float64
	yp1, ypn float64
	order    int
}

type propertyWrapper struct {
	Property map[string]*PropertyConfig
}

// CheckInit validates the section named name and fills in defaults. It
// must be called before Build.
func (cfg *PropertyConfig) CheckInit(name string) error {
	cfg.Name = name

	if cfg.Variable == "" {
		return fmt.Errorf(
			"Need to specify Variable for property '%s'.", name,
		)
	}

	inline := cfg.X != "" || cfg.Y != ""
	if inline == (cfg.KnotFile != "") {
		return fmt.Errorf(
			"Property '%s' needs either X and Y or a KnotFile, "+
				"but not both.", name,
		)
	}

	if inline {
		var err error
		if cfg.xs, err = parseFloats(cfg.X); err != nil {
			return fmt.Errorf("X of property '%s': %v", name, err)
		}
		if cfg.ys, err = parseFloats(cfg.Y); err != nil {
			return fmt.Errorf("Y of property '%s': %v", name, err)
		}
		if len(cfg.xs) != len(cfg.ys) {
			return fmt.Errorf(
				"Property '%s' has %d X values but %d Y values.",
				name, len(cfg.xs), len(cfg.ys),
			)
		}
	} else if cfg.XCol < 0 || cfg.YCol < 0 {
		return fmt.Errorf(
			"Property '%s' given negative knot table columns %d, %d.",
			name, cfg.XCol, cfg.YCol,
		)
	} else if cfg.XCol == cfg.YCol {
		return fmt.Errorf(
			"Property '%s' reads X and Y from the same column %d.",
			name, cfg.XCol,
		)
	}

	var err error
	if cfg.yp1, err = parseSlope(cfg.Yp1); err != nil {
		return fmt.Errorf("Yp1 of property '%s': %v", name, err)
	}
	if cfg.ypn, err = parseSlope(cfg.Ypn); err != nil {
		return fmt.Errorf("Ypn of property '%s': %v", name, err)
	}

	cfg.order = cfg.DerivativeOrder
	if cfg.order == 0 {
		cfg.order = material.MaxDerivativeOrder
	}
	if cfg.order < 0 || cfg.order > material.MaxDerivativeOrder {
		return fmt.Errorf(
			"DerivativeOrder of property '%s' must be in [0, %d], but is %d.",
			name, material.MaxDerivativeOrder, cfg.DerivativeOrder,
		)
	}

	return nil
}

// Build constructs the configured property, reading the knot table file if
// one was given.
func (cfg *PropertyConfig) Build() (*material.Property, error) {
	xs, ys := cfg.xs, cfg.ys
	if cfg.KnotFile != "" {
		var err error
		xs, ys, err = ReadKnotTable(cfg.KnotFile, cfg.XCol, cfg.YCol)
		if err != nil {
			return nil, fmt.Errorf(
				"knot table of property '%s': %v", cfg.Name, err,
			)
		}
	}

	sp, err := interpolate.NewSpline(xs, ys, cfg.yp1, cfg.ypn)
	if err != nil {
		return nil, fmt.Errorf("property '%s': %w", cfg.Name, err)
	}

	return material.NewProperty(cfg.Name, cfg.Variable, sp, cfg.order)
}

// ReadPropertyConfigs reads every [property "name"] section from the given
// config file, validates each, and returns them sorted by name.
func ReadPropertyConfigs(fname string) ([]*PropertyConfig, error) {
	wrap := propertyWrapper{}
	if err := gcfg.ReadFileInto(&wrap, fname); err != nil {
		return nil, err
	}

	cfgs := []*PropertyConfig{}
	for name, cfg := range wrap.Property {
		if err := cfg.CheckInit(name); err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	sort.Slice(cfgs, func(i, j int) bool { return cfgs[i].Name < cfgs[j].Name })

	return cfgs, nil
}

func parseFloats(list string) ([]float64, error) {
	toks := strings.Split(list, ",")
	out := make([]float64, len(toks))
	for i, tok := range toks {
		x, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, fmt.Errorf("token %d (%s) is not a number", i, tok)
		}
		out[i] = x
	}
	return out, nil
}

func parseSlope(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return interpolate.Natural, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
