package fluid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates construction parameters outside the valid range.
	ErrInvalidParams = errors.New("fluid: invalid parameters")

	// ErrNonFinite indicates a field holds NaN or Inf after a step.
	ErrNonFinite = errors.New("fluid: non-finite value in field")
)

// IndexError is the panic value raised by checked injection when a cell
// coordinate falls outside the grid.
type IndexError struct {
	Op   string
	X, Y int
	W, H int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("fluid: %s at (%d,%d) outside %dx%d grid", e.Op, e.X, e.Y, e.W, e.H)
}
