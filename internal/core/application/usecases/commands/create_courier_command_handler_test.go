package commands_test

import (
	"errors"
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/courier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand("Alice", 3, 4)
	require.NoError(t, err)

	var stored *courier.Courier
	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*courier.Courier) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()
	handler := commands.NewCreateCourierCommandHandler(factory)

	// When
	err = handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ID().IsEqual(cmd.CourierID()))
	assert.Equal(t, "Alice", stored.Name())
	assert.Equal(t, cmd.Location(), stored.Location())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockCourierUoWFactory)
	handler := commands.NewCreateCourierCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.CreateCourierCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateCourierCommandHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(uow *MockCourierUoW, repo *MockCourierRepository)
		wantErr string
	}{
		{
			name: "begin_fails",
			setup: func(uow *MockCourierUoW, _ *MockCourierRepository) {
				uow.On("Begin", mock.Anything).Return(errors.New("begin failed")).Once()
			},
			wantErr: "begin failed",
		},
		{
			name: "add_fails",
			setup: func(uow *MockCourierUoW, repo *MockCourierRepository) {
				mock.InOrder(
					uow.On("Begin", mock.Anything).Return(nil).Once(),
					uow.On("CourierRepository").Return(repo).Once(),
					repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("duplicate")).Once(),
					uow.On("Rollback", mock.Anything).Return(nil).Once(),
				)
			},
			wantErr: "duplicate",
		},
		{
			name: "commit_fails_even_if_rollback_fails",
			setup: func(uow *MockCourierUoW, repo *MockCourierRepository) {
				mock.InOrder(
					uow.On("Begin", mock.Anything).Return(nil).Once(),
					uow.On("CourierRepository").Return(repo).Once(),
					repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
					uow.On("Commit", mock.Anything).Return(errors.New("commit failed")).Once(),
					uow.On("Rollback", mock.Anything).Return(errors.New("rollback failed")).Once(),
				)
			},
			wantErr: "commit failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			cmd, err := commands.NewCreateCourierCommand("Alice", 0, 0)
			require.NoError(t, err)
			repo := new(MockCourierRepository)
			uow := new(MockCourierUoW)
			tt.setup(uow, repo)
			factory := new(MockCourierUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewCreateCourierCommandHandler(factory)

			// When
			err = handler.Handle(t.Context(), cmd)

			// Then
			require.EqualError(t, err, tt.wantErr)
			uow.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}
