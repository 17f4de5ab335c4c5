// Package repository defines the persistence contracts of the pixiu backend.
// Implementations live in subpackages (see postgres) and hold no business logic.
package repository

import (
	"context"

	"pixiu/internal/model"
)

// FundFilter narrows fund queries. From and To bound the timestamp
// inclusively; empty slices mean no filter on that column.
type FundFilter struct {
	From    int64
	To      int64
	Sources []string
	Types   []string
	Names   []string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// FundSummary aggregates every fund matched by a filter.
type FundSummary struct {
	Sums     []model.SumInfo
	Income   float64
	Expenses float64
}

// FundRepository defines data access for funds.
type FundRepository interface {
	// List returns the funds in the filter, newest first, and the total match count.
	List(ctx context.Context, f FundFilter, pq PageQuery) (*PageResult[model.Fund], error)

	// Summarize returns per-class spending and the income/expense totals.
	Summarize(ctx context.Context, f FundFilter) (*FundSummary, error)

	Sources(ctx context.Context) ([]string, error)
	Types(ctx context.Context) ([]string, error)

	// Create inserts a fund and returns the stored row. f.ID is ignored.
	Create(ctx context.Context, f *model.Fund) (*model.Fund, error)

	// Update overwrites every column of the fund with the given id.
	// It returns sql.ErrNoRows if no such fund exists.
	Update(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error)

	// Delete removes a fund by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id int64) error
}

// BalanceRepository reads debts and properties.
type BalanceRepository interface {
	Debts(ctx context.Context) ([]model.Debt, error)

	// Properties returns each property with the amounts of funds sourced
	// from it added to its base amount.
	Properties(ctx context.Context) ([]model.Property, error)
}
