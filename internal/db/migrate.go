package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"earn_webapp/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationNames lists the embedded migration files in apply order.
func MigrationNames() ([]string, error) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Migrate applies every embedded migration. The files are idempotent, so
// re-running is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	names, err := MigrationNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		b, err := migrations.FS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return nil, fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return names, nil
}
