package kernel

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when attempting to use an improperly
// initialized TimeWindow. Windows must be created via NewTimeWindow to ensure validity.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// TimeWindow represents a bounded fulfillment time window with a validated pair of
// timestamps. TimeWindow is an immutable value object that guarantees the end of the
// window lies strictly after its start. The zero value of TimeWindow is invalid and
// will fail validation - use the constructor to create instances.
//
// Example:
//
//	window, err := kernel.NewTimeWindow(start, start.Add(time.Hour))
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Window: %s", window) // Output: TimeWindow(2026-08-31T10:00:00Z..2026-08-31T11:00:00Z)
type TimeWindow struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow creates a new TimeWindow with the specified bounds.
// Both timestamps must be non-zero and end must be strictly after start.
// Returns an error describing every violated rule otherwise.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	window := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(window.setStart(start), window.setEnd(end)); err != nil {
		return TimeWindow{}, err
	}

	if !window.end.After(window.start) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"end",
			fmt.Errorf("%s is not after %s", end.Format(time.RFC3339), start.Format(time.RFC3339)),
		)
	}

	return window, nil
}

// Validate checks if the TimeWindow was properly constructed using the constructor.
// The zero value of TimeWindow is invalid and will fail this validation.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// Start returns the inclusive beginning of the window.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the exclusive end of the window. Always strictly after Start.
func (w TimeWindow) End() time.Time {
	return w.end
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// IsEqual compares two windows by their bounds.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// String returns a human-readable representation of the window.
func (w TimeWindow) String() string {
	return fmt.Sprintf("TimeWindow(%s..%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

func (w *TimeWindow) setStart(start time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("start")
	}

	w.start = start
	return nil
}

func (w *TimeWindow) setEnd(end time.Time) error {
	if end.IsZero() {
		return errs.NewValueIsRequiredError("end")
	}

	w.end = end
	return nil
}
