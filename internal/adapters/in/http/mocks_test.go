package http_test

import (
	"context"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockCreateCourierHandler struct {
	mock.Mock
}

func (m *MockCreateCourierHandler) Handle(ctx context.Context, cmd commands.CreateCourierCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockDispatchHandler struct {
	mock.Mock
}

func (m *MockDispatchHandler) Handle(ctx context.Context, cmd commands.DispatchCommand) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}

type MockGetAllCouriersHandler struct {
	mock.Mock
}

func (m *MockGetAllCouriersHandler) Handle(
	ctx context.Context,
	query queries.GetAllCouriersQuery,
) ([]queries.GetAllCouriersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetAllCouriersQueryResponse), args.Error(1)
}

type MockGetPendingOrdersHandler struct {
	mock.Mock
}

func (m *MockGetPendingOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetPendingOrdersQuery,
) ([]queries.GetPendingOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetPendingOrdersQueryResponse), args.Error(1)
}

type MockGetCourierBatchesHandler struct {
	mock.Mock
}

func (m *MockGetCourierBatchesHandler) Handle(
	ctx context.Context,
	query queries.GetCourierBatchesQuery,
) ([]queries.GetCourierBatchesQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetCourierBatchesQueryResponse), args.Error(1)
}
