package http

import (
	"time"

	"fulfillment/internal/core/domain/model/slot"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateSlotRequest is the body of POST /api/v1/slots.
type CreateSlotRequest struct {
	TenantID       string    `json:"tenantId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	MaxOrders      int       `json:"maxOrders"`
	MaxKitchenLoad int       `json:"maxKitchenLoad"`
	MaxStorageLoad int       `json:"maxStorageLoad"`
	Notes          string    `json:"notes,omitempty"`
}

// ReserveCapacityRequest is the body of POST /api/v1/slots/:slotId/reservations.
type ReserveCapacityRequest struct {
	KitchenLoad int `json:"kitchenLoad"`
	StorageLoad int `json:"storageLoad"`
}

// RegisterWebhookRequest is the body of POST /api/v1/webhooks.
type RegisterWebhookRequest struct {
	TenantID string `json:"tenantId"`
	URL      string `json:"url"`
	Secret   string `json:"secret,omitempty"`
}

// RegisterWebhookResponse carries the identifier of the new webhook target.
type RegisterWebhookResponse struct {
	ID string `json:"id"`
}

// ReservationResponse confirms an admitted reservation. The caller is expected
// to bind its order to the slot as part of the same logical operation.
type ReservationResponse struct {
	SlotID   string `json:"slotId"`
	Admitted bool   `json:"admitted"`
}

// SlotWindow is the JSON shape of a slot's time window.
type SlotWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotCeilings is the JSON shape of a slot's capacity ceilings.
type SlotCeilings struct {
	MaxOrders      int `json:"maxOrders"`
	MaxKitchenLoad int `json:"maxKitchenLoad"`
	MaxStorageLoad int `json:"maxStorageLoad"`
}

// SlotUsage is the JSON shape of a slot's live usage snapshot.
type SlotUsage struct {
	OrderCount  int `json:"orderCount"`
	KitchenLoad int `json:"kitchenLoad"`
	StorageLoad int `json:"storageLoad"`
}

// SlotRemaining is the JSON shape of a slot's remaining capacity.
type SlotRemaining struct {
	Orders      int `json:"orders"`
	KitchenLoad int `json:"kitchenLoad"`
	StorageLoad int `json:"storageLoad"`
}

// EnrichedSlotResponse is a slot plus its usage and remaining capacity.
type EnrichedSlotResponse struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenantId"`
	Window    SlotWindow    `json:"window"`
	Ceilings  SlotCeilings  `json:"ceilings"`
	Usage     SlotUsage     `json:"usage"`
	Remaining SlotRemaining `json:"remaining"`
	Notes     string        `json:"notes,omitempty"`
}

func toEnrichedSlotResponse(view slot.EnrichedSlot) EnrichedSlotResponse {
	return EnrichedSlotResponse{
		ID:       view.Slot.ID().String(),
		TenantID: view.Slot.TenantID().String(),
		Window: SlotWindow{
			Start: view.Slot.Window().Start(),
			End:   view.Slot.Window().End(),
		},
		Ceilings: SlotCeilings{
			MaxOrders:      view.Slot.Ceilings().MaxOrders(),
			MaxKitchenLoad: view.Slot.Ceilings().MaxKitchenLoad(),
			MaxStorageLoad: view.Slot.Ceilings().MaxStorageLoad(),
		},
		Usage: SlotUsage{
			OrderCount:  view.Usage.OrderCount,
			KitchenLoad: view.Usage.KitchenLoad,
			StorageLoad: view.Usage.StorageLoad,
		},
		Remaining: SlotRemaining{
			Orders:      view.Remaining.Orders,
			KitchenLoad: view.Remaining.KitchenLoad,
			StorageLoad: view.Remaining.StorageLoad,
		},
		Notes: view.Slot.Notes(),
	}
}
