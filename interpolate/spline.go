// Package interpolate implements 1D cubic spline interpolation over
// tabulated data with natural or clamped boundary conditions.
package interpolate

import (
	"fmt"
	"math"
)

// Natural is the sentinel boundary slope which selects a natural boundary
// (zero curvature at that end) instead of a clamped first derivative.
const Natural = 1e30

// Any requested slope at least this large is treated as the Natural
// sentinel, so a sentinel that went through a config round trip still reads
// as natural.
const naturalLimit = 0.99e30

// Spline represents a 1D cubic spline which can be used to interpolate
// between points. It is immutable after construction, so any number of
// goroutines may evaluate the same Spline concurrently.
type Spline struct {
	xs, ys, y2s, sqrs []float64

	// Usually the input data is uniform. This is our estimate of the point
	// spacing.
	dx float64
}

// NewSpline creates a spline from a table of x and y values. The x values
// must be strictly increasing and both tables must have the same length of
// at least two.
//
// yp1 and ypn are the requested first derivatives at the left and right
// boundary. Passing Natural for either selects a natural boundary there
// instead.
//
// The input slices are copied, so the caller may reuse them freely.
func NewSpline(xs, ys []float64, yp1, ypn float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"%w: len(xs) = %d, len(ys) = %d",
			ErrLengthMismatch, len(xs), len(ys),
		)
	} else if len(xs) < 2 {
		return nil, fmt.Errorf(
			"%w: got %d", ErrInsufficientPoints, len(xs),
		)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf(
				"%w: xs[%d] = %g, xs[%d] = %g",
				ErrNotStrictlyIncreasing, i-1, xs[i-1], i, xs[i],
			)
		}
	}

	sp := new(Spline)

	sp.xs = make([]float64, len(xs))
	sp.ys = make([]float64, len(xs))
	sp.y2s = make([]float64, len(xs))
	sp.sqrs = make([]float64, len(xs)-1)
	copy(sp.xs, xs)
	copy(sp.ys, ys)

	sp.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)

	if err := sp.calcY2s(yp1, ypn); err != nil {
		return nil, err
	}
	for i := range sp.sqrs {
		sp.sqrs[i] = (xs[i+1] - xs[i]) * (xs[i+1] - xs[i])
	}

	return sp, nil
}

// NewNaturalSpline creates a spline with natural boundaries at both ends.
func NewNaturalSpline(xs, ys []float64) (*Spline, error) {
	return NewSpline(xs, ys, Natural, Natural)
}

// Min returns the lower edge of the spline's domain.
func (sp *Spline) Min() float64 { return sp.xs[0] }

// Max returns the upper edge of the spline's domain.
func (sp *Spline) Max() float64 { return sp.xs[len(sp.xs)-1] }

// Len returns the number of knots.
func (sp *Spline) Len() int { return len(sp.xs) }

// Knots returns copies of the knot tables the spline was built from.
func (sp *Spline) Knots() (xs, ys []float64) {
	xs = make([]float64, len(sp.xs))
	ys = make([]float64, len(sp.ys))
	copy(xs, sp.xs)
	copy(ys, sp.ys)
	return xs, ys
}

// Eval computes the value of the spline at x. An x outside the spline's
// domain is clamped to the nearest domain edge, never an error. Callers
// that need to know a clamp occurred should compare x to Min and Max
// themselves.
func (sp *Spline) Eval(x float64) float64 {
	x = sp.clamp(x)
	i := sp.bsearch(x)

	a := (sp.xs[i+1] - x) / (sp.xs[i+1] - sp.xs[i])
	b := 1 - a
	c := (a*a*a - a) * sp.sqrs[i] / 6
	d := (b*b*b - b) * sp.sqrs[i] / 6
	return a*sp.ys[i] + b*sp.ys[i+1] + c*sp.y2s[i] + d*sp.y2s[i+1]
}

// Deriv computes the first derivative of the spline at x, with the same
// domain clamping as Eval.
func (sp *Spline) Deriv(x float64) float64 {
	x = sp.clamp(x)
	i := sp.bsearch(x)

	h := sp.xs[i+1] - sp.xs[i]
	a := (sp.xs[i+1] - x) / h
	b := 1 - a
	return (sp.ys[i+1]-sp.ys[i])/h -
		(3*a*a-1)/6*h*sp.y2s[i] +
		(3*b*b-1)/6*h*sp.y2s[i+1]
}

// SecondDeriv computes the second derivative of the spline at x, with the
// same domain clamping as Eval.
func (sp *Spline) SecondDeriv(x float64) float64 {
	x = sp.clamp(x)
	i := sp.bsearch(x)

	a := (sp.xs[i+1] - x) / (sp.xs[i+1] - sp.xs[i])
	b := 1 - a
	return a*sp.y2s[i] + b*sp.y2s[i+1]
}

// Diff computes the derivative of the spline at x to the specified order.
// Order 0 is the value itself. Every derivative of order three or higher is
// exactly zero, since the pieces are cubics. Diff panics on a negative
// order.
func (sp *Spline) Diff(x float64, order int) float64 {
	switch order {
	case 0:
		return sp.Eval(x)
	case 1:
		return sp.Deriv(x)
	case 2:
		return sp.SecondDeriv(x)
	default:
		if order < 0 {
			panic(fmt.Sprintf("Derivative order %d is negative.", order))
		}
		return 0
	}
}

// EvalAll evaluates the spline at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

func (sp *Spline) clamp(x float64) float64 {
	return math.Max(sp.xs[0], math.Min(sp.xs[len(sp.xs)-1], x))
}

// bsearch returns the index of the interval [xs[i], xs[i+1]] containing x.
// x must already be within the spline's domain.
func (sp *Spline) bsearch(x float64) int {
	// Guess under the assumption of uniform spacing.
	guess := int((x - sp.xs[0]) / sp.dx)
	if guess >= 0 && guess < len(sp.xs)-1 &&
		sp.xs[guess] <= x && sp.xs[guess+1] >= x {

		return guess
	}

	// Binary search.
	lo, hi := 0, len(sp.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= sp.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// calcY2s computes the second derivative at every knot by solving the
// tridiagonal system that makes the first derivative continuous across the
// interior knots. The first and last rows carry the boundary conditions:
// y2 = 0 for a natural end, the clamped first-derivative equation
// otherwise.
func (sp *Spline) calcY2s(yp1, ypn float64) error {
	n := len(sp.xs)
	as, bs := make([]float64, n), make([]float64, n)
	cs, rs := make([]float64, n), make([]float64, n)

	xs, ys := sp.xs, sp.ys

	if math.Abs(yp1) >= naturalLimit {
		bs[0], cs[0], rs[0] = 1, 0, 0
	} else {
		h := xs[1] - xs[0]
		bs[0] = h / 3
		cs[0] = h / 6
		rs[0] = (ys[1]-ys[0])/h - yp1
	}

	for j := 1; j < n-1; j++ {
		as[j] = (xs[j] - xs[j-1]) / 6
		bs[j] = (xs[j+1] - xs[j-1]) / 3
		cs[j] = (xs[j+1] - xs[j]) / 6
		rs[j] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	if math.Abs(ypn) >= naturalLimit {
		as[n-1], bs[n-1], rs[n-1] = 0, 1, 0
	} else {
		h := xs[n-1] - xs[n-2]
		as[n-1] = h / 6
		bs[n-1] = h / 3
		rs[n-1] = ypn - (ys[n-1]-ys[n-2])/h
	}

	return TriDiagAt(as, bs, cs, rs, sp.y2s)
}
