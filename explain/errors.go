package explain

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when row counts or dimensionality differ.
	ErrShapeMismatch = errors.New("explain: shape mismatch")

	// ErrDegenerateColumn is returned when a column has zero variance and
	// cannot be scaled. The concrete error is a *DegenerateColumnError.
	ErrDegenerateColumn = errors.New("explain: degenerate column")

	// ErrInvalidArgument is returned for out-of-range k, bad signs,
	// malformed sparse vectors and inputs violating the data contract.
	ErrInvalidArgument = errors.New("explain: invalid argument")
)

// Sources reported by DegenerateColumnError.
const (
	SourcePredictions = "predictions"
	SourceFeatures    = "features"
)

// DegenerateColumnError reports a zero-variance column found while scaling.
// errors.Is(err, ErrDegenerateColumn) holds for every value of this type.
type DegenerateColumnError struct {
	Source string // SourcePredictions or SourceFeatures
	Column int    // zero-based column (class or term index)
	Err    error  // underlying matrix error, may be nil
}

func (e *DegenerateColumnError) Error() string {
	return fmt.Sprintf("explain: zero-variance %s column %d", e.Source, e.Column)
}

// Is matches ErrDegenerateColumn.
func (e *DegenerateColumnError) Is(target error) bool { return target == ErrDegenerateColumn }

// Unwrap exposes the underlying matrix error.
func (e *DegenerateColumnError) Unwrap() error { return e.Err }

// explainErrorf tags err with an operation and a taxonomy sentinel, keeping
// both matchable through errors.Is.
func explainErrorf(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}

	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
