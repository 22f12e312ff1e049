package engine

import (
	"errors"
	"fmt"
	"log/slog"
)

// InvariantViolation reports a broken internal invariant. It indicates a
// programming defect, never a runtime condition, and is raised with panic.
type InvariantViolation struct {
	What string
}

func (v *InvariantViolation) Error() string {
	return "invariant violation: " + v.What
}

// IsInvariantViolation reports whether err, typically a recovered panic
// value, is an InvariantViolation
func IsInvariantViolation(err error) bool {
	var v *InvariantViolation
	return errors.As(err, &v)
}

func violate(format string, args ...any) {
	v := &InvariantViolation{What: fmt.Sprintf(format, args...)}
	slog.Error("invariant violation", "err", v)
	panic(v)
}
