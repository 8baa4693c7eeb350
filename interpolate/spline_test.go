package interpolate

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	dx := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + dx*float64(i)
	}
	xs[n-1] = hi
	return xs
}

func TestConstructionErrors(t *testing.T) {
	_, err := NewNaturalSpline([]float64{1, 2}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrLengthMismatch), "length mismatch")

	_, err = NewNaturalSpline([]float64{1}, []float64{1})
	assert.True(t, errors.Is(err, ErrInsufficientPoints), "one point")

	_, err = NewNaturalSpline(nil, nil)
	assert.True(t, errors.Is(err, ErrInsufficientPoints), "empty tables")

	_, err = NewNaturalSpline([]float64{1, 3, 2}, []float64{0, 0, 0})
	assert.True(t, errors.Is(err, ErrNotStrictlyIncreasing), "inversion")

	_, err = NewNaturalSpline([]float64{1, 1, 2}, []float64{0, 0, 0})
	assert.True(t, errors.Is(err, ErrNotStrictlyIncreasing), "duplicate")
}

func TestKnotInterpolation(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	for i := range xs {
		assert.Equal(t, ys[i], sp.Eval(xs[i]), "knot passthrough")
	}
	assert.Equal(t, 0.0, sp.Eval(2.0), "interior knot")

	mid := sp.Eval(0.5)
	assert.Greater(t, mid, 0.0, "midpoint above lower knot")
	assert.Less(t, mid, 1.0, "midpoint below upper knot")

	assert.Equal(t, 0.0, sp.Min())
	assert.Equal(t, 4.0, sp.Max())
	assert.Equal(t, 5, sp.Len())
}

// A natural spline through collinear points is that line.
func TestLinearData(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 1
	}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	for _, x := range linspace(0, 4, 41) {
		assert.InDelta(t, 2*x+1, sp.Eval(x), 1e-12)
		assert.InDelta(t, 2, sp.Deriv(x), 1e-12)
		assert.InDelta(t, 0, sp.SecondDeriv(x), 1e-12)
	}
}

// A clamped spline through samples of a quadratic with the quadratic's own
// end slopes reproduces the quadratic everywhere.
func TestClampedQuadratic(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 4, 9}
	sp, err := NewSpline(xs, ys, 0, 6)
	assert.NoError(t, err)

	assert.InDelta(t, 0, sp.Deriv(sp.Min()), 1e-9, "left slope")
	assert.InDelta(t, 6, sp.Deriv(sp.Max()), 1e-9, "right slope")

	for _, x := range linspace(0, 3, 31) {
		assert.InDelta(t, x*x, sp.Eval(x), 1e-9)
		assert.InDelta(t, 2*x, sp.Deriv(x), 1e-9)
		assert.InDelta(t, 2, sp.SecondDeriv(x), 1e-9)
	}
}

func TestMixedBoundaries(t *testing.T) {
	xs := []float64{0, 0.5, 1, 1.5, 2}
	ys := []float64{0, 0.2, 0.1, 0.4, 0.3}

	sp, err := NewSpline(xs, ys, -1.5, Natural)
	assert.NoError(t, err)
	assert.InDelta(t, -1.5, sp.Deriv(sp.Min()), 1e-9, "clamped left")
	assert.InDelta(t, 0, sp.SecondDeriv(sp.Max()), 1e-12, "natural right")

	sp, err = NewSpline(xs, ys, Natural, 2.25)
	assert.NoError(t, err)
	assert.InDelta(t, 0, sp.SecondDeriv(sp.Min()), 1e-12, "natural left")
	assert.InDelta(t, 2.25, sp.Deriv(sp.Max()), 1e-9, "clamped right")
}

func TestNaturalBoundaryCurvature(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	assert.Equal(t, 0.0, sp.SecondDeriv(sp.Min()), "left curvature")
	assert.Equal(t, 0.0, sp.SecondDeriv(sp.Max()), "right curvature")
}

func TestDomainClamping(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	assert.Equal(t, sp.Eval(sp.Min()), sp.Eval(-5), "value below domain")
	assert.Equal(t, sp.Eval(sp.Max()), sp.Eval(10), "value above domain")
	assert.Equal(t, sp.Deriv(sp.Min()), sp.Deriv(-5), "slope below domain")
	assert.Equal(t, sp.Deriv(sp.Max()), sp.Deriv(10), "slope above domain")
	assert.Equal(t, sp.SecondDeriv(sp.Min()), sp.SecondDeriv(-0.001),
		"curvature below domain")
	assert.Equal(t, sp.SecondDeriv(sp.Max()), sp.SecondDeriv(4.001),
		"curvature above domain")
}

// The second derivative is continuous at interior knots: approaching a knot
// from the left interval gives the same curvature as evaluating on it.
func TestSecondDerivContinuity(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	for i := 1; i < len(xs)-1; i++ {
		atKnot := sp.SecondDeriv(xs[i])
		fromLeft := sp.SecondDeriv(xs[i] - 1e-9)
		assert.InDelta(t, atKnot, fromLeft, 1e-6, "interior knot")
	}
}

func TestDiffOrders(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	c := 1.3
	assert.Equal(t, sp.Eval(c), sp.Diff(c, 0))
	assert.Equal(t, sp.Deriv(c), sp.Diff(c, 1))
	assert.Equal(t, sp.SecondDeriv(c), sp.Diff(c, 2))
	assert.Equal(t, 0.0, sp.Diff(c, 3), "third derivative")
	assert.Equal(t, 0.0, sp.Diff(c, 7), "seventh derivative")
	assert.Panics(t, func() { sp.Diff(c, -1) }, "negative order")
}

// Analytic derivatives agree with central finite differences of Eval.
func TestFiniteDifferenceDerivs(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewSpline(xs, ys, 0.5, Natural)
	assert.NoError(t, err)

	for _, c := range []float64{0.3, 1.1, 1.7, 2.5, 3.9} {
		eps := 1e-6
		num := (sp.Eval(c+eps) - sp.Eval(c-eps)) / (2 * eps)
		assert.InDelta(t, num, sp.Deriv(c), 1e-7, "first derivative")

		eps = 1e-4
		num = (sp.Eval(c+eps) - 2*sp.Eval(c) + sp.Eval(c-eps)) / (eps * eps)
		assert.InDelta(t, num, sp.SecondDeriv(c), 1e-5, "second derivative")
	}
}

func TestNonUniformKnots(t *testing.T) {
	xs := []float64{0, 0.1, 0.15, 1, 2.5, 7}
	ys := []float64{3, -1, 4, 1, -5, 9}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	// The uniform-spacing guess in bsearch is badly wrong for this table,
	// so every lookup exercises the binary search fallback too.
	for i := range xs {
		assert.InDelta(t, ys[i], sp.Eval(xs[i]), 1e-12, "knot passthrough")
	}
	for i := 0; i < len(xs)-1; i++ {
		mid := (xs[i] + xs[i+1]) / 2
		left := sp.SecondDeriv(xs[i])
		right := sp.SecondDeriv(xs[i+1])
		got := sp.SecondDeriv(mid)
		assert.InDelta(t, (left+right)/2, got, 1e-12, "linear curvature")
	}
}

func TestTwoKnots(t *testing.T) {
	sp, err := NewNaturalSpline([]float64{1, 3}, []float64{2, 6})
	assert.NoError(t, err)

	assert.InDelta(t, 4, sp.Eval(2), 1e-12, "midpoint of segment")
	assert.InDelta(t, 2, sp.Deriv(2), 1e-12, "segment slope")
	assert.InDelta(t, 0, sp.SecondDeriv(2), 1e-12, "segment curvature")
}

func TestEvalAll(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	cs := linspace(-1, 5, 13)
	out := make([]float64, len(cs))
	got := sp.EvalAll(cs, out)
	assert.Same(t, &out[0], &got[0], "output buffer reused")
	for i, c := range cs {
		assert.Equal(t, sp.Eval(c), out[i])
	}

	fresh := sp.EvalAll(cs)
	assert.Equal(t, out, fresh, "allocating form")
}

func TestInputSlicesCopied(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, 1, 0}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	before := sp.Eval(1.5)
	xs[2], ys[2] = 100, 100
	assert.Equal(t, before, sp.Eval(1.5), "caller mutation ignored")
}

func TestConcurrentEval(t *testing.T) {
	xs := linspace(0, 1, 101)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = x * x * (1 - x)
	}
	sp, err := NewNaturalSpline(xs, ys)
	assert.NoError(t, err)

	cs := linspace(-0.1, 1.1, 1000)
	want := sp.EvalAll(cs)

	wg := sync.WaitGroup{}
	for worker := 0; worker < 4; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, c := range cs {
				if sp.Eval(c) != want[i] {
					t.Errorf("concurrent Eval(%g) diverged", c)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkEval(b *testing.B) {
	xs := linspace(0, 1, 1028)
	ys := make([]float64, len(xs))
	for i := range ys {
		ys[i] = rand.Float64()
	}
	sp, err := NewNaturalSpline(xs, ys)
	if err != nil {
		b.Fatal(err.Error())
	}

	cs := make([]float64, 1<<10)
	for i := range cs {
		cs[i] = rand.Float64()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sp.Eval(cs[i%len(cs)])
	}
}
