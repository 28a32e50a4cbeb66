package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as reported by the external
// order subsystem. The capacity core only distinguishes active statuses, which
// hold capacity in their slot, from terminal statuses, which have released it.
//
// Lifecycle:
//
//	Submitted -> Confirmed -> Preparing -> Ready -> OutForDelivery -> Delivered
//	     │            │            │          │            │
//	     └────────────┴────────────┴──────────┴────────────┴──> Cancelled / Failed
//
// The core never drives these transitions; it treats Status as externally owned
// data and only classifies it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Submitted is the initial status after checkout.
	Submitted

	// Confirmed indicates the tenant accepted the order.
	Confirmed

	// Preparing indicates the kitchen started working on the order.
	Preparing

	// Ready indicates the order awaits pickup or dispatch.
	Ready

	// OutForDelivery indicates the order left the premises.
	OutForDelivery

	// Delivered is a terminal status: the order reached the customer.
	Delivered

	// Cancelled is a terminal status: the order was withdrawn before completion.
	Cancelled

	// Failed is a terminal status: fulfillment did not complete.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Submitted:      "Submitted",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Failed:         "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Submitted:      "Submitted",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Failed:         "Failed",
	}
}

// ActiveStatuses returns the subset of statuses that hold slot capacity.
// The order of the returned slice is stable and matches the lifecycle order.
func ActiveStatuses() []Status {
	return []Status{Submitted, Confirmed, Preparing, Ready, OutForDelivery}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether an order in this status counts toward slot usage.
func (s Status) IsActive() bool {
	switch s {
	case Submitted, Confirmed, Preparing, Ready, OutForDelivery:
		return true
	case Unknown, Delivered, Cancelled, Failed:
		return false
	}
	return false
}

// IsTerminal reports whether the status releases slot capacity permanently.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Failed:
		return true
	case Unknown, Submitted, Confirmed, Preparing, Ready, OutForDelivery:
		return false
	}
	return false
}
