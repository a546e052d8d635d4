package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
	"github.com/osse101/ZetaFarm_Go/internal/gacha"
	"github.com/osse101/ZetaFarm_Go/internal/letters"
)

// MockGachaService is a mock implementation of gacha.Service
type MockGachaService struct {
	mock.Mock
}

func (m *MockGachaService) Draw(ctx context.Context, address string, count int) (*gacha.DrawResult, error) {
	args := m.Called(ctx, address, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gacha.DrawResult), args.Error(1)
}

// MockCheckinService is a mock implementation of checkin.Service
type MockCheckinService struct {
	mock.Mock
}

func (m *MockCheckinService) CheckIn(ctx context.Context, address string) (*checkin.Result, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.Result), args.Error(1)
}

func (m *MockCheckinService) History(ctx context.Context, address, month string) (*checkin.History, error) {
	args := m.Called(ctx, address, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.History), args.Error(1)
}

// MockLettersService is a mock implementation of letters.Service
type MockLettersService struct {
	mock.Mock
}

func (m *MockLettersService) Redeem(ctx context.Context, address string, phraseIndex int) (*letters.Redemption, error) {
	args := m.Called(ctx, address, phraseIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*letters.Redemption), args.Error(1)
}

func (m *MockLettersService) Progress(ctx context.Context, address string) ([]letters.PhraseProgress, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]letters.PhraseProgress), args.Error(1)
}

// MockEventlogService is a mock implementation of eventlog.Service
type MockEventlogService struct {
	mock.Mock
}

func (m *MockEventlogService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockEventlogService) Activity(ctx context.Context, address string, limit int) ([]eventlog.Event, error) {
	args := m.Called(ctx, address, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Event), args.Error(1)
}

func (m *MockEventlogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
