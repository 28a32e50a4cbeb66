// Package bindingrepo implements the read-side Usage Aggregator over the order
// store's order-slot bindings. The capacity core never writes this table; the
// external order subsystem owns it.
package bindingrepo

import (
	"github.com/google/uuid"
)

// BindingDTO mirrors the order subsystem's order-slot binding rows.
// Declared here so integration tests can migrate and seed the table; production
// code only ever reads it through the aggregate query.
type BindingDTO struct {
	OrderID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SlotID      *uuid.UUID `gorm:"type:uuid;index"`
	Status      int
	KitchenLoad int
	StorageLoad int
}

// TableName specifies the database table name for order-slot bindings.
func (BindingDTO) TableName() string {
	return "order_bindings"
}
