package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixiu/internal/model"
	"pixiu/internal/repository"
)

var fundCols = []string{"id", "amount", "name", "class", "timestamp", "source"}

func TestFundWhere(t *testing.T) {
	tests := []struct {
		name     string
		filter   repository.FundFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "range only",
			filter:   repository.FundFilter{From: 1, To: 2},
			wantSQL:  " WHERE timestamp BETWEEN $1 AND $2",
			wantArgs: []any{int64(1), int64(2)},
		},
		{
			name: "all filters",
			filter: repository.FundFilter{
				From: 1, To: 2,
				Sources: []string{"a", "b"},
				Types:   []string{"food"},
				Names:   []string{"x", "y"},
			},
			wantSQL:  " WHERE timestamp BETWEEN $1 AND $2 AND source IN ($3, $4) AND class IN ($5) AND name IN ($6, $7)",
			wantArgs: []any{int64(1), int64(2), "a", "b", "food", "x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := fundWhere(tt.filter)
			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestFundPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFundPostgres(db)
	ctx := context.Background()
	filter := repository.FundFilter{From: 0, To: 100, Types: []string{"food", "rent"}}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pixiu_fund_info WHERE timestamp BETWEEN $1 AND $2 AND class IN ($3, $4)")).
			WithArgs(int64(0), int64(100), "food", "rent").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY timestamp DESC, id LIMIT $5 OFFSET $6")).
			WithArgs(int64(0), int64(100), "food", "rent", 2, 2).
			WillReturnRows(sqlmock.NewRows(fundCols).
				AddRow(3, -9.5, "lunch", "food", 50, "wallet"))

		res, err := repo.List(ctx, filter, repository.PageQuery{Limit: 2, Offset: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, []model.Fund{{ID: 3, Amount: -9.5, Name: "lunch", Class: "food", Timestamp: 50, Source: "wallet"}}, res.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("db fail"))

		res, err := repo.List(ctx, filter, repository.PageQuery{Limit: 2})

		assert.EqualError(t, err, "db fail")
		assert.Nil(t, res)
	})
}

func TestFundPostgres_Summarize(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFundPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT class AS name, SUM(CEIL(-amount))::float8 AS value FROM pixiu_fund_info WHERE timestamp BETWEEN $1 AND $2 AND source IN ($3)")).
		WithArgs(int64(10), int64(20), "wallet").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).
			AddRow("rent", 1200.0).
			AddRow("food", 35.0))
	mock.ExpectQuery("FILTER \\(WHERE amount > 0\\)").
		WithArgs(int64(10), int64(20), "wallet").
		WillReturnRows(sqlmock.NewRows([]string{"income", "expenses"}).AddRow(3000.5, -1234.25))

	got, err := repo.Summarize(ctx, repository.FundFilter{From: 10, To: 20, Sources: []string{"wallet"}})

	require.NoError(t, err)
	assert.Equal(t, &repository.FundSummary{
		Sums:     []model.SumInfo{{Name: "rent", Value: 1200}, {Name: "food", Value: 35}},
		Income:   3000.5,
		Expenses: -1234.25,
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundPostgres_SourcesAndTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFundPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT DISTINCT source FROM pixiu_fund_info").
		WillReturnRows(sqlmock.NewRows([]string{"source"}).AddRow("bank").AddRow("wallet"))
	mock.ExpectQuery("SELECT DISTINCT class FROM pixiu_fund_info").
		WillReturnRows(sqlmock.NewRows([]string{"class"}))

	sources, err := repo.Sources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bank", "wallet"}, sources)

	types, err := repo.Types(ctx)
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFundPostgres(db)
	in := &model.Fund{ID: 99, Amount: 100, Name: "salary", Class: "work", Timestamp: 1700000000, Source: "bank"}

	mock.ExpectQuery("INSERT INTO pixiu_fund_info").
		WithArgs(in.Amount, in.Name, in.Class, in.Timestamp, in.Source).
		WillReturnRows(sqlmock.NewRows(fundCols).AddRow(1, in.Amount, in.Name, in.Class, in.Timestamp, in.Source))

	out, err := repo.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "salary", out.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFundPostgres(db)
	ctx := context.Background()
	in := &model.Fund{Amount: -5, Name: "tea", Class: "food", Timestamp: 10, Source: "wallet"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE pixiu_fund_info").
			WithArgs(in.Amount, in.Name, in.Class, in.Timestamp, in.Source, int64(4)).
			WillReturnRows(sqlmock.NewRows(fundCols).AddRow(4, in.Amount, in.Name, in.Class, in.Timestamp, in.Source))

		out, err := repo.Update(ctx, 4, in)

		require.NoError(t, err)
		assert.Equal(t, int64(4), out.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE pixiu_fund_info").
			WithArgs(in.Amount, in.Name, in.Class, in.Timestamp, in.Source, int64(404)).
			WillReturnRows(sqlmock.NewRows(fundCols))

		out, err := repo.Update(ctx, 404, in)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFundPostgres(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pixiu_fund_info WHERE id = $1")).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 8)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
