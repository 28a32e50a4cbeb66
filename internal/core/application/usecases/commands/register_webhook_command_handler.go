package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/webhook"
)

// RegisterWebhookCommandHandler persists new webhook targets.
// Full URL validation happens in the webhook.Target constructor.
type RegisterWebhookCommandHandler struct {
	uowFactory WebhookUoWFactory
}

// NewRegisterWebhookCommandHandler creates a handler for webhook registration.
func NewRegisterWebhookCommandHandler(uowFactory WebhookUoWFactory) RegisterWebhookCommandHandler {
	return RegisterWebhookCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the new target's ID.
func (h *RegisterWebhookCommandHandler) Handle(ctx context.Context, cmd RegisterWebhookCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	target, err := webhook.NewTarget(kernel.NewUUID(), cmd.TenantID(), cmd.URL(), cmd.Secret())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WebhookTargetRepository().Add(ctx, target); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return target.ID(), nil
}
