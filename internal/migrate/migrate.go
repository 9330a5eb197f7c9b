// Package migrate applies embedded SQL migrations on startup.
package migrate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/godslighthouse/gsp-server/migrations"
)

// Up runs all pending migrations from the embedded filesystem against the
// given schema, creating the schema first if needed. Test and production
// namespaces each carry their own migration state.
func Up(ctx context.Context, dsn, schema string) error {
	cc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return err
	}
	if schema != "" {
		cc.RuntimeParams["search_path"] = schema
	}
	db := stdlib.OpenDB(*cc)
	defer db.Close()

	if schema != "" {
		q := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize())
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
