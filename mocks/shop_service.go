package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ZetaFarm_Go/internal/shop"
)

// MockShopService is a mock implementation of shop.Service
type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) BuySeed(ctx context.Context, address, cropID string, qty int64) (*shop.Receipt, error) {
	return receipt(m.Called(ctx, address, cropID, qty))
}

func (m *MockShopService) BuyFertilizer(ctx context.Context, address string, qty int64) (*shop.Receipt, error) {
	return receipt(m.Called(ctx, address, qty))
}

func (m *MockShopService) SellFruit(ctx context.Context, address, cropID string, qty int64) (*shop.Receipt, error) {
	return receipt(m.Called(ctx, address, cropID, qty))
}

func (m *MockShopService) Exchange(ctx context.Context, address, currency string, coins decimal.Decimal) (*shop.Receipt, error) {
	return receipt(m.Called(ctx, address, currency, coins))
}

func (m *MockShopService) BuyPet(ctx context.Context, address, petID string) (*shop.Receipt, error) {
	return receipt(m.Called(ctx, address, petID))
}

func receipt(args mock.Arguments) (*shop.Receipt, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Receipt), args.Error(1)
}
