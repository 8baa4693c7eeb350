// Package material evaluates spline-backed material properties at the
// quadrature points of a host solver. A Property wraps an immutable spline
// and fills per-point value and derivative buffers that the host owns.
package material

import (
	"fmt"

	"github.com/splinemat/splinemat/interpolate"
)

// MaxDerivativeOrder is the highest derivative a Property will publish.
// Higher derivatives of a cubic vanish identically.
const MaxDerivativeOrder = 2

// Property is a named material property defined by spline interpolation
// over a coupled scalar variable. Construction aside, a Property is
// read-only except for its excursion counter, so concurrent use requires
// the host to give each worker its own Property (sharing the underlying
// Spline is fine).
type Property struct {
	name, variable string
	sp             *interpolate.Spline
	order          int
	excursions     int
}

// NewProperty creates a property named name, coupled to the scalar
// variable named variable and backed by sp. order is the highest
// derivative the property publishes, between 0 and MaxDerivativeOrder.
func NewProperty(
	name, variable string, sp *interpolate.Spline, order int,
) (*Property, error) {
	if name == "" {
		return nil, fmt.Errorf("property needs a non-empty name")
	}
	if sp == nil {
		return nil, fmt.Errorf("property '%s' needs a spline", name)
	}
	if order < 0 || order > MaxDerivativeOrder {
		return nil, fmt.Errorf(
			"derivative order of property '%s' must be in [0, %d], but is %d",
			name, MaxDerivativeOrder, order,
		)
	}

	return &Property{name: name, variable: variable, sp: sp, order: order}, nil
}

// Name returns the property's name.
func (p *Property) Name() string { return p.name }

// Variable returns the name of the coupled variable the property is
// interpolated over.
func (p *Property) Variable() string { return p.variable }

// Order returns the highest derivative order the property publishes.
func (p *Property) Order() int { return p.order }

// Spline returns the spline backing the property.
func (p *Property) Spline() *interpolate.Spline { return p.sp }

// Domain returns the interval the property is tabulated over.
func (p *Property) Domain() (min, max float64) {
	return p.sp.Min(), p.sp.Max()
}

// Excursions returns how many value queries so far fell outside the
// tabulated domain and were clamped to its edge.
func (p *Property) Excursions() int { return p.excursions }

// Value returns the property value at c. Out-of-domain c is clamped to the
// nearest domain edge and counted as an excursion.
func (p *Property) Value(c float64) float64 {
	if c < p.sp.Min() || c > p.sp.Max() {
		p.excursions++
	}
	return p.sp.Eval(c)
}

// Derivative returns the derivative of the property at c to the given
// order, clamping c like Value does (without counting an excursion).
// Orders above MaxDerivativeOrder are exactly zero.
func (p *Property) Derivative(c float64, order int) float64 {
	return p.sp.Diff(c, order)
}

// ComputeQP evaluates the property at every quadrature-point value in cs
// and fills the host-owned output buffers: f with values, df with first
// and d2f with second derivatives. df and d2f are only written when the
// property's derivative order covers them and the buffer is non-nil.
// ComputeQP panics if a written buffer is shorter than cs.
func (p *Property) ComputeQP(cs []float64, f, df, d2f []float64) {
	if len(f) < len(cs) {
		panic(fmt.Sprintf(
			"Property '%s' given %d points but a value buffer of length %d.",
			p.name, len(cs), len(f),
		))
	}

	fillDF := p.order >= 1 && df != nil
	fillD2F := p.order >= 2 && d2f != nil
	if fillDF && len(df) < len(cs) {
		panic(fmt.Sprintf(
			"Property '%s' given %d points but a df buffer of length %d.",
			p.name, len(cs), len(df),
		))
	}
	if fillD2F && len(d2f) < len(cs) {
		panic(fmt.Sprintf(
			"Property '%s' given %d points but a d2f buffer of length %d.",
			p.name, len(cs), len(d2f),
		))
	}

	for i, c := range cs {
		f[i] = p.Value(c)
		if fillDF {
			df[i] = p.sp.Deriv(c)
		}
		if fillD2F {
			d2f[i] = p.sp.SecondDeriv(c)
		}
	}
}
