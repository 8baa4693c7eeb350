package interpolate

import (
	"fmt"
)

// TriDiagAt solves the system of equations
//
// | b0 c0 ..    |   | out0 |   | r0 |
// | a1 b1 c1 .. |   | out1 |   | r1 |
// | ..          | * | ..   | = | .. |
// | ..    an bn |   | outn |   | rn |
//
// for out0 .. outn in place in the given slice. as[0] and cs[n] are never
// read.
func TriDiagAt(as, bs, cs, rs, out []float64) error {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(rs) || len(as) != len(out) {

		return fmt.Errorf(
			"tridiagonal slice lengths are unequal: %d, %d, %d, %d, %d",
			len(as), len(bs), len(cs), len(rs), len(out),
		)
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		return ErrSingular
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			return ErrSingular
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}

	return nil
}

// TriDiag solves the same system as TriDiagAt and returns the solution in a
// newly allocated slice.
func TriDiag(as, bs, cs, rs []float64) ([]float64, error) {
	us := make([]float64, len(as))
	if err := TriDiagAt(as, bs, cs, rs, us); err != nil {
		return nil, err
	}
	return us, nil
}
