package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"pixiu/internal/model"
	"pixiu/internal/repository"
)

type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) List(ctx context.Context, f repository.FundFilter, pq repository.PageQuery) (*repository.PageResult[model.Fund], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Fund]), args.Error(1)
}

func (m *MockFundRepository) Summarize(ctx context.Context, f repository.FundFilter) (*repository.FundSummary, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.FundSummary), args.Error(1)
}

func (m *MockFundRepository) Sources(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFundRepository) Types(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFundRepository) Create(ctx context.Context, f *model.Fund) (*model.Fund, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fund), args.Error(1)
}

func (m *MockFundRepository) Update(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error) {
	args := m.Called(ctx, id, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fund), args.Error(1)
}

func (m *MockFundRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
