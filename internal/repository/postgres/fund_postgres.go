package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"pixiu/internal/model"
	"pixiu/internal/repository"
)

const fundColumns = "id, amount, name, class, timestamp, source"

// FundPostgres is a PostgreSQL implementation of repository.FundRepository.
// Filter values are always bound as parameters.
type FundPostgres struct {
	db *sql.DB
}

// NewFundPostgres creates a new FundPostgres repository.
func NewFundPostgres(db *sql.DB) *FundPostgres {
	return &FundPostgres{db: db}
}

var _ repository.FundRepository = (*FundPostgres)(nil)

// fundWhere renders the WHERE clause for f, numbering placeholders from $1.
func fundWhere(f repository.FundFilter) (string, []any) {
	var b strings.Builder
	args := []any{f.From, f.To}
	b.WriteString(" WHERE timestamp BETWEEN $1 AND $2")
	args = appendIn(&b, args, "source", f.Sources)
	args = appendIn(&b, args, "class", f.Types)
	args = appendIn(&b, args, "name", f.Names)
	return b.String(), args
}

func appendIn(b *strings.Builder, args []any, column string, values []string) []any {
	if len(values) == 0 {
		return args
	}
	ph := make([]string, len(values))
	for i, v := range values {
		args = append(args, v)
		ph[i] = "$" + strconv.Itoa(len(args))
	}
	fmt.Fprintf(b, " AND %s IN (%s)", column, strings.Join(ph, ", "))
	return args
}

func scanFund(s interface{ Scan(...any) error }) (model.Fund, error) {
	var f model.Fund
	err := s.Scan(&f.ID, &f.Amount, &f.Name, &f.Class, &f.Timestamp, &f.Source)
	return f, err
}

// List returns funds using LIMIT/OFFSET pagination and a total count.
func (r *FundPostgres) List(ctx context.Context, f repository.FundFilter, pq repository.PageQuery) (*repository.PageResult[model.Fund], error) {
	where, args := fundWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pixiu_fund_info"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := "SELECT " + fundColumns + " FROM pixiu_fund_info" + where +
		fmt.Sprintf(" ORDER BY timestamp DESC, id LIMIT $%d OFFSET $%d", n+1, n+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Fund, 0)
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, fund)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Fund]{Items: items, Total: total}, nil
}

// Summarize aggregates the whole filtered range. Per-class sums count
// spending only: each amount is negated and rounded up, and classes whose
// net spending is not positive are dropped.
func (r *FundPostgres) Summarize(ctx context.Context, f repository.FundFilter) (*repository.FundSummary, error) {
	where, args := fundWhere(f)

	q := "SELECT class AS name, SUM(CEIL(-amount))::float8 AS value FROM pixiu_fund_info" + where +
		" GROUP BY class HAVING SUM(CEIL(-amount)) > 0 ORDER BY value DESC, name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &repository.FundSummary{Sums: make([]model.SumInfo, 0)}
	for rows.Next() {
		var s model.SumInfo
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, err
		}
		out.Sums = append(out.Sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const totals = `SELECT
		ROUND(COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0)::numeric, 2)::float8,
		ROUND(COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0)::numeric, 2)::float8
		FROM pixiu_fund_info`
	if err := r.db.QueryRowContext(ctx, totals+where, args...).Scan(&out.Income, &out.Expenses); err != nil {
		return nil, err
	}
	return out, nil
}

// Sources returns the distinct fund sources in alphabetical order.
func (r *FundPostgres) Sources(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT source FROM pixiu_fund_info ORDER BY source")
}

// Types returns the distinct fund classes in alphabetical order.
func (r *FundPostgres) Types(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT class FROM pixiu_fund_info ORDER BY class")
}

func (r *FundPostgres) distinct(ctx context.Context, q string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a new fund row and returns the stored record.
func (r *FundPostgres) Create(ctx context.Context, f *model.Fund) (*model.Fund, error) {
	const q = `
		INSERT INTO pixiu_fund_info (amount, name, class, timestamp, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + fundColumns
	out, err := scanFund(r.db.QueryRowContext(ctx, q, f.Amount, f.Name, f.Class, f.Timestamp, f.Source))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites a fund row and returns the stored record.
func (r *FundPostgres) Update(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error) {
	const q = `
		UPDATE pixiu_fund_info
		SET amount = $1, name = $2, class = $3, timestamp = $4, source = $5
		WHERE id = $6
		RETURNING ` + fundColumns
	out, err := scanFund(r.db.QueryRowContext(ctx, q, f.Amount, f.Name, f.Class, f.Timestamp, f.Source, id))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a fund by ID. It does not return an error if the row does not exist.
func (r *FundPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM pixiu_fund_info WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
