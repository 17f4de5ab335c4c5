package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"pixiu/internal/model"
	"pixiu/internal/service"
)

type MockFundService struct {
	mock.Mock
}

func (m *MockFundService) List(ctx context.Context, q service.FundQuery) (*model.Page[model.Fund], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Fund]), args.Error(1)
}

func (m *MockFundService) Sources(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFundService) Types(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFundService) Create(ctx context.Context, f *model.Fund) (*model.Fund, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fund), args.Error(1)
}

func (m *MockFundService) Update(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error) {
	args := m.Called(ctx, id, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fund), args.Error(1)
}

func (m *MockFundService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
