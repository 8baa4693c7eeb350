package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// ReadKnotTable reads the x and y knot columns out of a whitespace
// separated table file.
func ReadKnotTable(file string, xCol, yCol int) (xs, ys []float64, err error) {
	cols, err := table.ReadTable(file, []int{xCol, yCol}, nil)
	if err != nil {
		return nil, nil, err
	}

	xs, ys = cols[0], cols[1]
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("knot table '%s' is empty", file)
	}
	return xs, ys, nil
}
