package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"pixiu/internal/model"
)

type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Debts(ctx context.Context) ([]model.Debt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Debt), args.Error(1)
}

func (m *MockBalanceRepository) Properties(ctx context.Context) ([]model.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Property), args.Error(1)
}
