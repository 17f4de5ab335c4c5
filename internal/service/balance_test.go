package service

import (
	"context"
	"errors"
	"testing"

	"pixiu/internal/model"
	repoMocks "pixiu/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceService(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockBalanceRepository)
	svc := NewBalanceService(mRepo)

	debts := []model.Debt{{ID: 1, Name: "car", Amount: 5000, Repayment: 250, LastTimestamp: 1700000000}}
	mRepo.On("Debts", ctx).Return(debts, nil)
	mRepo.On("Properties", ctx).Return(nil, errors.New("db fail"))

	got, err := svc.Debts(ctx)
	require.NoError(t, err)
	assert.Equal(t, debts, got)

	props, err := svc.Properties(ctx)
	assert.EqualError(t, err, "db fail")
	assert.Nil(t, props)

	mRepo.AssertExpectations(t)
}
