package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterWebhookCommandIsNotConstructed = errors.New(
	"RegisterWebhookCommand must be created via NewRegisterWebhookCommand constructor",
)

// RegisterWebhookCommand registers an external endpoint that receives the
// enriched slot view on every capacity change of the tenant's slots.
type RegisterWebhookCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	url      string
	secret   string

	guard guard.ConstructorGuard
}

// NewRegisterWebhookCommand creates a command to register a webhook target.
// The secret is optional; when set, payloads are HMAC-signed with it.
func NewRegisterWebhookCommand(tenantID kernel.UUID, url, secret string) (RegisterWebhookCommand, error) {
	cmd := RegisterWebhookCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setURL(url),
	); err != nil {
		return RegisterWebhookCommand{}, err
	}

	cmd.secret = secret
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterWebhookCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWebhookCommandIsNotConstructed)
}

// TenantID returns the tenant the webhook is registered for.
func (c RegisterWebhookCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// URL returns the endpoint to deliver payloads to.
func (c RegisterWebhookCommand) URL() string {
	return c.url
}

// Secret returns the optional HMAC signing secret.
func (c RegisterWebhookCommand) Secret() string {
	return c.secret
}

func (c *RegisterWebhookCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *RegisterWebhookCommand) setURL(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("url")
	}

	c.url = url
	return nil
}
