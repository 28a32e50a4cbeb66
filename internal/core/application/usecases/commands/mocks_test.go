package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/core/domain/model/webhook"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing.
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Add(ctx context.Context, aggregate *slot.Slot) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slot.Slot), args.Error(1)
}

func (m *MockSlotRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slot.Slot), args.Error(1)
}

type MockUsageReader struct {
	mock.Mock
}

func (m *MockUsageReader) Usage(ctx context.Context, slotID kernel.UUID) (slot.Usage, error) {
	args := m.Called(ctx, slotID)
	return args.Get(0).(slot.Usage), args.Error(1)
}

type MockWebhookTargetRepository struct {
	mock.Mock
}

func (m *MockWebhookTargetRepository) Add(ctx context.Context, target *webhook.Target) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

func (m *MockWebhookTargetRepository) GetAllForTenant(ctx context.Context, tenantID kernel.UUID) ([]*webhook.Target, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*webhook.Target), args.Error(1)
}

type MockSlotUoW struct {
	mock.Mock
}

func (m *MockSlotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlotUoW) SlotRepository() ports.SlotRepository {
	args := m.Called()
	return args.Get(0).(ports.SlotRepository)
}

type MockSlotUoWFactory struct {
	mock.Mock
}

func (m *MockSlotUoWFactory) Create() commands.SlotUoW {
	args := m.Called()
	return args.Get(0).(commands.SlotUoW)
}

type MockReservationUoW struct {
	mock.Mock
}

func (m *MockReservationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReservationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReservationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReservationUoW) SlotRepository() ports.SlotRepository {
	args := m.Called()
	return args.Get(0).(ports.SlotRepository)
}

func (m *MockReservationUoW) UsageReader() ports.UsageReader {
	args := m.Called()
	return args.Get(0).(ports.UsageReader)
}

type MockReservationUoWFactory struct {
	mock.Mock
}

func (m *MockReservationUoWFactory) Create() commands.ReservationUoW {
	args := m.Called()
	return args.Get(0).(commands.ReservationUoW)
}

type MockWebhookUoW struct {
	mock.Mock
}

func (m *MockWebhookUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWebhookUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWebhookUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWebhookUoW) WebhookTargetRepository() ports.WebhookTargetRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookTargetRepository)
}

type MockWebhookUoWFactory struct {
	mock.Mock
}

func (m *MockWebhookUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

type MockSlotPublisher struct {
	mock.Mock
}

func (m *MockSlotPublisher) Publish(ctx context.Context, slotID kernel.UUID) {
	m.Called(ctx, slotID)
}
