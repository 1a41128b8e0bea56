package analysis

import (
	"errors"
	"fmt"
)

// ErrDegenerateInput matches every *DegenerateInputError via errors.Is.
var ErrDegenerateInput = errors.New("degenerate input")

// DegenerateInputError reports an input for which a computation is undefined,
// such as projecting fewer than two genres. Missing or malformed row data never
// produces it; those rows are dropped where they are needed.
type DegenerateInputError struct {
	Op     string
	Reason string
}

func (e *DegenerateInputError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("degenerate input: %s", e.Reason)
	}
	return fmt.Sprintf("%s: degenerate input: %s", e.Op, e.Reason)
}

func (e *DegenerateInputError) Is(target error) bool { return target == ErrDegenerateInput }
