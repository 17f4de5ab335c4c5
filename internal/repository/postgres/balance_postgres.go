package postgres

import (
	"context"
	"database/sql"

	"pixiu/internal/model"
	"pixiu/internal/repository"
)

// BalancePostgres is a PostgreSQL implementation of repository.BalanceRepository.
type BalancePostgres struct {
	db *sql.DB
}

// NewBalancePostgres creates a new BalancePostgres repository.
func NewBalancePostgres(db *sql.DB) *BalancePostgres {
	return &BalancePostgres{db: db}
}

var _ repository.BalanceRepository = (*BalancePostgres)(nil)

// Debts returns every debt ordered by id.
func (r *BalancePostgres) Debts(ctx context.Context) ([]model.Debt, error) {
	const q = `
		SELECT id, name, amount, repayment, last_timestamp
		FROM pixiu_debt_info
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Debt, 0)
	for rows.Next() {
		var d model.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.Amount, &d.Repayment, &d.LastTimestamp); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Properties returns each property with the funds sourced from it applied
// to its amount.
func (r *BalancePostgres) Properties(ctx context.Context) ([]model.Property, error) {
	const q = `
		SELECT ppi.id, ppi.name, (ppi.amount + COALESCE(SUM(pfi.amount), 0))::float8 AS amount
		FROM pixiu_property_info ppi
		LEFT JOIN pixiu_fund_info pfi ON pfi.source = ppi.name
		GROUP BY ppi.id, ppi.name, ppi.amount
		ORDER BY ppi.id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Property, 0)
	for rows.Next() {
		var p model.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Amount); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
