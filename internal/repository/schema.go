package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const decisionsTable = "decisions"

var decisionsDDL = map[string]string{
	dialect.SQLite: `CREATE TABLE IF NOT EXISTS decisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	decision_date TEXT NULL,
	debt_amount TEXT NULL,
	fine_amount TEXT NULL
)`,
	dialect.Postgres: `CREATE TABLE IF NOT EXISTS decisions (
	id BIGSERIAL PRIMARY KEY,
	decision_date TEXT NULL,
	debt_amount TEXT NULL,
	fine_amount TEXT NULL
)`,
}

// EnsureSchema creates the decisions table when absent. It never alters or
// drops an existing table.
func EnsureSchema(ctx context.Context, drv *entsql.Driver) error {
	ddl, ok := decisionsDDL[drv.Dialect()]
	if !ok {
		return fmt.Errorf("ensure schema: unsupported dialect %q", drv.Dialect())
	}
	if err := drv.Exec(ctx, ddl, []any{}, nil); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
