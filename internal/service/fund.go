package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"pixiu/internal/model"
	"pixiu/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("fund not found")
	ErrInvalidFund  = errors.New("fund requires name, class and source")
	ErrInvalidRange = errors.New("from must not be after to")
	ErrInvalidPage  = errors.New("page out of range")
)

// FundQuery is the service-level request for a page of funds.
type FundQuery struct {
	From    int64
	To      int64
	Page    int
	Size    int
	Sources []string
	Types   []string
	Names   []string
}

// FundService defines the use cases for handling funds.
type FundService interface {
	// List returns one page of funds plus aggregates over the whole filtered range.
	List(ctx context.Context, q FundQuery) (*model.Page[model.Fund], error)

	Sources(ctx context.Context) ([]string, error)
	Types(ctx context.Context) ([]string, error)

	Create(ctx context.Context, f *model.Fund) (*model.Fund, error)

	// Update replaces every field of an existing fund.
	Update(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error)

	Delete(ctx context.Context, id int64) error
}

type fundService struct {
	repo repository.FundRepository
}

// NewFundService constructs a new FundService.
func NewFundService(repo repository.FundRepository) FundService {
	return &fundService{repo: repo}
}

func (s *fundService) List(ctx context.Context, q FundQuery) (*model.Page[model.Fund], error) {
	if q.From > q.To {
		return nil, ErrInvalidRange
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	if q.Page-1 > math.MaxInt/q.Size {
		return nil, ErrInvalidPage
	}

	filter := repository.FundFilter{
		From:    q.From,
		To:      q.To,
		Sources: q.Sources,
		Types:   q.Types,
		Names:   q.Names,
	}

	res, err := s.repo.List(ctx, filter, repository.PageQuery{Limit: q.Size, Offset: (q.Page - 1) * q.Size})
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	sum, err := s.repo.Summarize(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("summarize funds: %w", err)
	}

	return &model.Page[model.Fund]{
		Total:    res.Total,
		Data:     res.Items,
		Sum:      sum.Sums,
		Income:   sum.Income,
		Expenses: sum.Expenses,
	}, nil
}

func (s *fundService) Sources(ctx context.Context) ([]string, error) {
	return s.repo.Sources(ctx)
}

func (s *fundService) Types(ctx context.Context) ([]string, error) {
	return s.repo.Types(ctx)
}

func (s *fundService) Create(ctx context.Context, f *model.Fund) (*model.Fund, error) {
	if err := validateFund(f); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, f)
}

func (s *fundService) Update(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if err := validateFund(f); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, id, f)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *fundService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func validateFund(f *model.Fund) error {
	if f == nil ||
		strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.Class) == "" ||
		strings.TrimSpace(f.Source) == "" {
		return ErrInvalidFund
	}
	return nil
}
