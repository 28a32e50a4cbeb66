// Package webhook provides the registered outbound sink entity for the
// realtime broadcaster. A target receives the enriched slot view on every
// capacity change of its tenant's slots, fire-and-forget.
package webhook

import (
	"errors"
	"net/url"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTargetIsNotConstructed indicates that the Target was not properly
// initialized through the NewTarget or RestoreTarget constructor functions.
var ErrTargetIsNotConstructed = errors.New("Target must be created via NewTarget or RestoreTarget constructor")

// Target is a registered external webhook endpoint. Delivery is best-effort:
// the broadcaster posts the payload once per event and never retries.
type Target struct {
	id       kernel.UUID
	tenantID kernel.UUID
	url      string

	// secret, when set, is used to HMAC-sign outgoing payloads
	secret string

	guard guard.ConstructorGuard
}

// NewTarget registers a new webhook endpoint for a tenant.
// The endpoint URL must be an absolute http or https URL.
func NewTarget(id kernel.UUID, tenantID kernel.UUID, endpoint, secret string) (*Target, error) {
	t := &Target{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setTenantID(tenantID),
		t.setURL(endpoint),
	); err != nil {
		return nil, err
	}

	t.secret = secret
	return t, nil
}

// RestoreTarget reconstructs a Target from persistent storage.
func RestoreTarget(id kernel.UUID, tenantID kernel.UUID, endpoint, secret string) (*Target, error) {
	return NewTarget(id, tenantID, endpoint, secret)
}

// Validate checks if the Target was properly constructed.
func (t *Target) Validate() error {
	return t.guard.Validate(ErrTargetIsNotConstructed)
}

// ID returns the unique identifier of the target.
func (t *Target) ID() kernel.UUID {
	return t.id
}

// TenantID returns the tenant whose slot events this target receives.
func (t *Target) TenantID() kernel.UUID {
	return t.tenantID
}

// URL returns the endpoint the payload is posted to.
func (t *Target) URL() string {
	return t.url
}

// Secret returns the HMAC signing secret, empty when unsigned.
func (t *Target) Secret() string {
	return t.secret
}

func (t *Target) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	t.id = id
	return nil
}

func (t *Target) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}

	t.tenantID = tenantID
	return nil
}

func (t *Target) setURL(endpoint string) error {
	if endpoint == "" {
		return errs.NewValueIsRequiredError("url")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errs.NewValueIsInvalidError("url")
	}

	t.url = endpoint
	return nil
}
