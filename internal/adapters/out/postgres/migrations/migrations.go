// Package migrations applies the embedded goose schema migrations.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// Up migrates the database behind dsn to the latest version.
func Up(ctx context.Context, dsn string) error {
	return run(ctx, dsn, func(p *goose.Provider) error {
		_, err := p.Up(ctx)
		return err
	})
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, dsn string) error {
	return run(ctx, dsn, func(p *goose.Provider) error {
		_, err := p.Down(ctx)
		return err
	})
}

// Version returns the schema version currently applied.
func Version(ctx context.Context, dsn string) (int64, error) {
	var version int64
	err := run(ctx, dsn, func(p *goose.Provider) error {
		var err error
		version, err = p.GetDBVersion(ctx)
		return err
	})
	return version, err
}

func run(ctx context.Context, dsn string, fn func(p *goose.Provider) error) error {
	db, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrations, err := fs.Sub(files, dir)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	return fn(provider)
}
