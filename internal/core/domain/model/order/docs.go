// Package order provides the read-side view of the external order subsystem that
// the capacity core depends on. The core never creates or mutates orders; it only
// reads order-slot bindings to compute live usage for a slot.
//
// The package defines Status, the order lifecycle state set, split into active
// and terminal subsets. Only orders in an active status count toward slot usage;
// terminal orders have released their capacity and are ignored by the usage
// aggregate query. The binding rows themselves are owned by the order subsystem
// and read in a single aggregate query, so they never take domain-entity form
// here.
package order
