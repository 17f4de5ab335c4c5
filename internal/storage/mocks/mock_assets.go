package mocks

import (
	"context"
	"io"

	"pixiu/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockAssets struct {
	mock.Mock
}

func (m *MockAssets) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
