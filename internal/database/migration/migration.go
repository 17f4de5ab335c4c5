package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// RequiredTables must all exist for the schema to count as current. A
// partially created schema is migrated again.
var RequiredTables = []string{"pixiu_fund_info", "pixiu_debt_info", "pixiu_property_info"}

// schemaCheckQuery is true only when every required table exists.
func schemaCheckQuery() string {
	checks := make([]string, 0, len(RequiredTables))
	for _, t := range RequiredTables {
		checks = append(checks, fmt.Sprintf("to_regclass('public.%s') IS NOT NULL", t))
	}
	return "SELECT " + strings.Join(checks, " AND ")
}

var steps = []migrationStep{
	{
		Name: "create_table_fund_info",
		SQL: `CREATE TABLE IF NOT EXISTS pixiu_fund_info (
  id        BIGSERIAL        PRIMARY KEY,
  name      TEXT             NOT NULL,
  amount    DOUBLE PRECISION NOT NULL,
  class     TEXT             NOT NULL,
  timestamp BIGINT           NOT NULL,
  source    TEXT             NOT NULL
);`,
	},
	{
		Name: "create_table_debt_info",
		SQL: `CREATE TABLE IF NOT EXISTS pixiu_debt_info (
  id             BIGSERIAL        PRIMARY KEY,
  name           TEXT             NOT NULL,
  amount         DOUBLE PRECISION NOT NULL,
  repayment      DOUBLE PRECISION NOT NULL,
  last_timestamp BIGINT           NOT NULL
);`,
	},
	{
		Name: "create_table_property_info",
		SQL: `CREATE TABLE IF NOT EXISTS pixiu_property_info (
  id     BIGSERIAL        PRIMARY KEY,
  name   TEXT             NOT NULL,
  amount DOUBLE PRECISION NOT NULL
);`,
	},
	{
		Name: "create_index_fund_timestamp",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fund_info_timestamp ON pixiu_fund_info (timestamp DESC, id);`,
	},
	{
		Name: "create_index_fund_source",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fund_info_source ON pixiu_fund_info (source);`,
	},
	{
		Name: "create_index_fund_class",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fund_info_class ON pixiu_fund_info (class);`,
	},
}

// EnsureMigrated creates the pixiu tables and indexes unless all tables
// already exist. Steps run in one transaction, so a failed run leaves nothing
// behind.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check")

	var exists bool
	if err := db.QueryRowContext(ctx, schemaCheckQuery()).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check schema tables: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	log.Info("db_migration_start", zap.Int("steps", len(steps)))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	if err := tx.Commit(); err != nil {
		log.Error("db_migration_failed", zap.Error(err))
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Info("db_migration_success", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
