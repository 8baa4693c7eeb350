package interpolate

import (
	"errors"
)

// Construction errors returned by NewSpline. Callers should test for them
// with errors.Is since the returned error wraps these with detail about the
// offending input.
var (
	ErrLengthMismatch        = errors.New("x and y tables have different lengths")
	ErrInsufficientPoints    = errors.New("at least two knots are required")
	ErrNotStrictlyIncreasing = errors.New("x values must be strictly increasing")

	// ErrSingular is returned by the tridiagonal solver when it encounters
	// a zero pivot. A strictly increasing knot table can never produce one,
	// so NewSpline only returns it for systems built by hand via TriDiag.
	ErrSingular = errors.New("tridiagonal system is singular")
)
