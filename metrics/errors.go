package metrics

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of every error Derive returns. Callers on the
// write path can test for it with errors.Is to reject a trade.
var ErrInvalidInput = errors.New("invalid trade input")

var (
	ErrInvalidDirection    = fmt.Errorf("%w: direction must be LONG or SHORT", ErrInvalidInput)
	ErrInvalidNumericField = fmt.Errorf("%w: invalid numeric field", ErrInvalidInput)
	ErrDivisionByZero      = fmt.Errorf("%w: entry price is zero", ErrInvalidInput)
)
