package realtime

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/core/domain/model/webhook"
	"fulfillment/internal/pkg/errs"
)

// SlotLoader loads the current enriched view of a slot.
type SlotLoader interface {
	Load(ctx context.Context, slotID kernel.UUID) (slot.EnrichedSlot, error)
}

// TargetSource lists the webhook targets registered for a tenant.
type TargetSource interface {
	GetAllForTenant(ctx context.Context, tenantID kernel.UUID) ([]*webhook.Target, error)
}

// Broadcaster fans enriched slot views out to the local bus and to webhook
// targets. It satisfies the publisher contract of the command handlers: calls
// run after the triggering write has committed and never fail that write.
type Broadcaster struct {
	loader  SlotLoader
	targets TargetSource
	bus     *Bus
	client  *http.Client
	logger  *slog.Logger
}

// NewBroadcaster creates a broadcaster over the given bus and target source.
func NewBroadcaster(loader SlotLoader, targets TargetSource, bus *Bus, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		loader:  loader,
		targets: targets,
		bus:     bus,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With("component", "realtime"),
	}
}

// Publish loads the slot's enriched view and delivers it to every sink.
// A slot that vanished between the trigger and the publish is logged and
// dropped. Webhook targets are invoked in their own goroutines so a slow or
// failing endpoint cannot delay the others.
func (b *Broadcaster) Publish(ctx context.Context, slotID kernel.UUID) {
	view, err := b.loader.Load(ctx, slotID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			b.logger.Warn("slot vanished before broadcast", "slot_id", slotID.String())
			return
		}
		b.logger.Error("failed to load slot for broadcast", "slot_id", slotID.String(), "error", err)
		return
	}

	payload := slotCapacityPayload(view)
	b.bus.Publish(EventSlotCapacity, payload)

	targets, err := b.targets.GetAllForTenant(ctx, view.Slot.TenantID())
	if err != nil {
		b.logger.Error("failed to fetch webhook targets", "tenant_id", view.Slot.TenantID().String(), "error", err)
		return
	}

	for _, target := range targets {
		go b.sendWebhook(target, payload)
	}
}

// sendWebhook delivers one envelope to one target. Failures are logged only.
// The request carries its own deadline rather than the publisher's context so
// an already-returned mutation cannot cancel a delivery in flight.
func (b *Broadcaster) sendWebhook(target *webhook.Target, payload Payload) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body, err := json.Marshal(Envelope{Event: string(EventSlotCapacity), Payload: payload})
	if err != nil {
		b.logger.Error("failed to marshal webhook payload", "target_id", target.ID().String(), "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL(), bytes.NewReader(body))
	if err != nil {
		b.logger.Error("failed to create webhook request", "target_id", target.ID().String(), "error", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Fulfillment-Webhook/1.0")
	req.Header.Set("X-Fulfillment-Event", string(EventSlotCapacity))
	req.Header.Set("X-Fulfillment-Timestamp", fmt.Sprintf("%d", time.Now().Unix()))

	if target.Secret() != "" {
		req.Header.Set("X-Fulfillment-Signature", signPayload(body, target.Secret()))
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Error("webhook delivery failed", "target_id", target.ID().String(), "url", target.URL(), "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		b.logger.Debug("webhook delivered", "target_id", target.ID().String(), "status", resp.StatusCode)
	} else {
		b.logger.Warn("webhook returned error status", "target_id", target.ID().String(), "status", resp.StatusCode)
	}
}

// signPayload creates an HMAC-SHA256 signature over the request body.
func signPayload(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// slotCapacityPayload flattens an enriched view into a JSON-compatible payload.
func slotCapacityPayload(view slot.EnrichedSlot) Payload {
	return Payload{
		"slotId":   view.Slot.ID().String(),
		"tenantId": view.Slot.TenantID().String(),
		"window": map[string]any{
			"start": view.Slot.Window().Start().UTC().Format(time.RFC3339),
			"end":   view.Slot.Window().End().UTC().Format(time.RFC3339),
		},
		"ceilings": map[string]any{
			"maxOrders":      view.Slot.Ceilings().MaxOrders(),
			"maxKitchenLoad": view.Slot.Ceilings().MaxKitchenLoad(),
			"maxStorageLoad": view.Slot.Ceilings().MaxStorageLoad(),
		},
		"usage": map[string]any{
			"orderCount":  view.Usage.OrderCount,
			"kitchenLoad": view.Usage.KitchenLoad,
			"storageLoad": view.Usage.StorageLoad,
		},
		"remaining": map[string]any{
			"orders":      view.Remaining.Orders,
			"kitchenLoad": view.Remaining.KitchenLoad,
			"storageLoad": view.Remaining.StorageLoad,
		},
		"notes": view.Slot.Notes(),
	}
}
