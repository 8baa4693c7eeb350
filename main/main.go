/*splinemat tabulates or plots the spline-backed material properties
described by a config file.

Each [property "name"] section defines one property:

    [property "free_energy"]
    Variable = c
    X = 0, 0.25, 0.5, 0.75, 1
    Y = 0, 0.1, 0, 0.1, 0
    Yp1 = 0.5
    DerivativeOrder = 2

Knots can also come from a whitespace separated table file via KnotFile,
XCol, and YCol. Omitting Yp1 or Ypn selects a natural boundary at that end.

By default every property is printed as rows of c, f, df/dc, and d2f/dc2
sampled uniformly over its domain. With -Plot the properties are rendered
through matplotlib instead.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"path"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/splinemat/splinemat/io"
	"github.com/splinemat/splinemat/material"
)

func main() {
	var (
		configFile, plotDir string
		points              int
		plot, exampleConfig bool
	)

	flag.StringVar(&configFile, "ConfigFile", "",
		"Config file describing the properties to evaluate. Required.")
	flag.BoolVar(&exampleConfig, "ExampleConfig", false,
		"Prints an example configuration file to stdout and exits.")
	flag.IntVar(&points, "Points", 201,
		"Number of sample points per property.")
	flag.BoolVar(&plot, "Plot", false,
		"Render the properties with matplotlib instead of printing them.")
	flag.StringVar(&plotDir, "PlotDir", ".",
		"Directory that plots are saved to.")
	flag.Parse()

	if exampleConfig {
		fmt.Println(io.ExamplePropertyFile)
		return
	}
	if configFile == "" {
		log.Fatal("Need to specify a config file via -ConfigFile.")
	}
	if points < 2 {
		log.Fatalf("-Points must be at least 2, but is %d.", points)
	}

	cfgs, err := io.ReadPropertyConfigs(configFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	if len(cfgs) == 0 {
		log.Fatalf("Config file %s defines no properties.", configFile)
	}

	for _, cfg := range cfgs {
		prop, err := cfg.Build()
		if err != nil {
			log.Fatal(err.Error())
		}

		if plot {
			plotProperty(prop, points, plotDir)
		} else {
			tabulate(prop, points)
		}
	}

	if plot {
		plt.Execute()
	}
}

func tabulate(prop *material.Property, points int) {
	min, max := prop.Domain()
	cs := linspace(min, max, points)
	fs := make([]float64, points)
	dfs := make([]float64, points)
	d2fs := make([]float64, points)
	prop.ComputeQP(cs, fs, dfs, d2fs)

	fmt.Printf("# %s(%s)\n", prop.Name(), prop.Variable())
	switch prop.Order() {
	case 0:
		fmt.Printf("# %8s %10s\n", "c", "f")
		for i := range cs {
			fmt.Printf("%10.6g %10.6g\n", cs[i], fs[i])
		}
	case 1:
		fmt.Printf("# %8s %10s %10s\n", "c", "f", "df/dc")
		for i := range cs {
			fmt.Printf("%10.6g %10.6g %10.6g\n", cs[i], fs[i], dfs[i])
		}
	default:
		fmt.Printf("# %8s %10s %10s %10s\n", "c", "f", "df/dc", "d2f/dc2")
		for i := range cs {
			fmt.Printf(
				"%10.6g %10.6g %10.6g %10.6g\n",
				cs[i], fs[i], dfs[i], d2fs[i],
			)
		}
	}
}

func plotProperty(prop *material.Property, points int, dir string) {
	min, max := prop.Domain()
	cs := linspace(min, max, points)
	fs := prop.Spline().EvalAll(cs)
	knotXs, knotYs := prop.Spline().Knots()

	fname := path.Join(dir, fmt.Sprintf("%s.png", prop.Name()))

	plt.Figure()
	plt.Plot(cs, fs, "b", plt.LW(2))
	plt.Plot(knotXs, knotYs, "ok")

	plt.Title(prop.Name())
	plt.XLabel(prop.Variable(), plt.FontSize(16))
	plt.YLabel(fmt.Sprintf("%s(%s)", prop.Name(), prop.Variable()),
		plt.FontSize(16))
	plt.SaveFig(fname)
}

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	dx := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + dx*float64(i)
	}
	xs[n-1] = hi
	return xs
}
