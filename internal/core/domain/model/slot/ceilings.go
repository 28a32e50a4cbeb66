package slot

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCeilingsAreNotConstructed is returned when attempting to use improperly
// initialized Ceilings. Ceilings must be created via NewCeilings.
var ErrCeilingsAreNotConstructed = errs.NewValueIsRequiredError(
	"ceilings must be created via NewCeilings constructor")

// Ceilings is the immutable triple of capacity limits for one slot.
// Each ceiling bounds one independent capacity dimension: the number of orders,
// the total kitchen load, and the total storage load. A ceiling of zero means
// the dimension admits nothing.
type Ceilings struct { //nolint:recvcheck //using for validation
	maxOrders      int
	maxKitchenLoad int
	maxStorageLoad int

	guard guard.ConstructorGuard
}

// NewCeilings creates the capacity ceiling triple. Every ceiling must be
// non-negative; all violations are aggregated into a single error.
func NewCeilings(maxOrders, maxKitchenLoad, maxStorageLoad int) (Ceilings, error) {
	c := Ceilings{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setMaxOrders(maxOrders),
		c.setMaxKitchenLoad(maxKitchenLoad),
		c.setMaxStorageLoad(maxStorageLoad),
	); err != nil {
		return Ceilings{}, err
	}

	return c, nil
}

// Validate checks if the Ceilings were properly constructed.
func (c Ceilings) Validate() error {
	return c.guard.Validate(ErrCeilingsAreNotConstructed)
}

// MaxOrders returns the ceiling on the number of admitted orders.
func (c Ceilings) MaxOrders() int {
	return c.maxOrders
}

// MaxKitchenLoad returns the ceiling on total kitchen load.
func (c Ceilings) MaxKitchenLoad() int {
	return c.maxKitchenLoad
}

// MaxStorageLoad returns the ceiling on total storage load.
func (c Ceilings) MaxStorageLoad() int {
	return c.maxStorageLoad
}

// Remaining computes ceiling minus usage for every dimension, floored at zero.
func (c Ceilings) Remaining(usage Usage) Remaining {
	return Remaining{
		Orders:      clampToZero(c.maxOrders - usage.OrderCount),
		KitchenLoad: clampToZero(c.maxKitchenLoad - usage.KitchenLoad),
		StorageLoad: clampToZero(c.maxStorageLoad - usage.StorageLoad),
	}
}

func (c *Ceilings) setMaxOrders(maxOrders int) error {
	if maxOrders < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxOrders",
			fmt.Errorf("%d is negative", maxOrders),
		)
	}

	c.maxOrders = maxOrders
	return nil
}

func (c *Ceilings) setMaxKitchenLoad(maxKitchenLoad int) error {
	if maxKitchenLoad < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxKitchenLoad",
			fmt.Errorf("%d is negative", maxKitchenLoad),
		)
	}

	c.maxKitchenLoad = maxKitchenLoad
	return nil
}

func (c *Ceilings) setMaxStorageLoad(maxStorageLoad int) error {
	if maxStorageLoad < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxStorageLoad",
			fmt.Errorf("%d is negative", maxStorageLoad),
		)
	}

	c.maxStorageLoad = maxStorageLoad
	return nil
}

func clampToZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
