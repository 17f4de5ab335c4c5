package service

import (
	"context"

	"pixiu/internal/model"
	"pixiu/internal/repository"
)

// BalanceService lists debts and properties.
type BalanceService interface {
	Debts(ctx context.Context) ([]model.Debt, error)
	Properties(ctx context.Context) ([]model.Property, error)
}

type balanceService struct {
	repo repository.BalanceRepository
}

// NewBalanceService constructs a new BalanceService.
func NewBalanceService(repo repository.BalanceRepository) BalanceService {
	return &balanceService{repo: repo}
}

func (s *balanceService) Debts(ctx context.Context) ([]model.Debt, error) {
	return s.repo.Debts(ctx)
}

func (s *balanceService) Properties(ctx context.Context) ([]model.Property, error) {
	return s.repo.Properties(ctx)
}
