package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterWebhookCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewRegisterWebhookCommand(kernel.NewUUID(), "https://sink.example.com/hooks", "secret")
	require.NoError(t, err)

	mockRepo := new(MockWebhookTargetRepository)
	mockUoW := new(MockWebhookUoW)
	mockFactory := new(MockWebhookUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WebhookTargetRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.AnythingOfType("*webhook.Target")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewRegisterWebhookCommandHandler(mockFactory)

	// Act
	id, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, id.Validate())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestRegisterWebhookCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.RegisterWebhookCommand // zero value command

	mockFactory := new(MockWebhookUoWFactory)
	handler := commands.NewRegisterWebhookCommandHandler(mockFactory)

	// Act
	_, err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestNewRegisterWebhookCommand_RejectsEmptyURL(t *testing.T) {
	_, err := commands.NewRegisterWebhookCommand(kernel.NewUUID(), "", "")
	require.Error(t, err)
}

func TestRegisterWebhookCommandHandler_Handle_RejectsMalformedURL(t *testing.T) {
	// The command only requires a non-empty URL; the target constructor
	// enforces an absolute http or https endpoint.
	ctx := t.Context()
	cmd, err := commands.NewRegisterWebhookCommand(kernel.NewUUID(), "not-a-url", "")
	require.NoError(t, err)

	mockFactory := new(MockWebhookUoWFactory)
	handler := commands.NewRegisterWebhookCommandHandler(mockFactory)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	mockFactory.AssertNotCalled(t, "Create")
}
