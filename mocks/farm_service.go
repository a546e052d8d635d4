// Package mocks holds testify mocks of the service interfaces used by the HTTP layer.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ZetaFarm_Go/internal/farm"
)

// MockFarmService is a mock implementation of farm.Service
type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) Register(ctx context.Context, address string) (*farm.View, bool, error) {
	args := m.Called(ctx, address)
	var view *farm.View
	if v := args.Get(0); v != nil {
		view = v.(*farm.View)
	}
	return view, args.Bool(1), args.Error(2)
}

func (m *MockFarmService) Login(ctx context.Context, address string) (*farm.LoginResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.LoginResult), args.Error(1)
}

func (m *MockFarmService) GetFarm(ctx context.Context, address string) (*farm.View, error) {
	return m.view(m.Called(ctx, address))
}

func (m *MockFarmService) Plant(ctx context.Context, address string, plotID int, cropID string) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID, cropID))
}

func (m *MockFarmService) Water(ctx context.Context, address string, plotID int) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID))
}

func (m *MockFarmService) Weed(ctx context.Context, address string, plotID int) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID))
}

func (m *MockFarmService) Fertilize(ctx context.Context, address string, plotID int) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID))
}

func (m *MockFarmService) Harvest(ctx context.Context, address string, plotID int) (*farm.HarvestResult, error) {
	args := m.Called(ctx, address, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.HarvestResult), args.Error(1)
}

func (m *MockFarmService) Pesticide(ctx context.Context, address string, plotID int) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID))
}

func (m *MockFarmService) Shovel(ctx context.Context, address string, plotID int) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID))
}

func (m *MockFarmService) UnlockPlot(ctx context.Context, address string, plotID int) (*farm.View, error) {
	return m.view(m.Called(ctx, address, plotID))
}

func (m *MockFarmService) SubscribeRobot(ctx context.Context, address string, req farm.RobotRequest) (*farm.View, error) {
	return m.view(m.Called(ctx, address, req))
}

func (m *MockFarmService) view(args mock.Arguments) (*farm.View, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.View), args.Error(1)
}
