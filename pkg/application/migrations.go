package application

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(fsys ...*embed.FS) {
	m.schemas = append(m.schemas, fsys...)
}

// Run applies every registered schema in registration order. Version
// numbers are globally unique across modules so the shared goose version
// table stays consistent.
func (m *migrationManager) Run(ctx context.Context) error {
	logger := configuration.Use().Logger()
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("failed to close migration connection")
		}
	}()

	for _, schema := range m.schemas {
		dir, err := schemaDir(schema)
		if err != nil {
			return err
		}
		sub, err := fs.Sub(schema, dir)
		if err != nil {
			return gerrors.Wrap(err, "failed to open schema dir")
		}
		provider, err := goose.NewProvider(goose.DialectPostgres, db, sub,
			goose.WithAllowOutofOrder(true),
		)
		if err != nil {
			return gerrors.Wrap(err, "failed to create migration provider")
		}
		results, err := provider.Up(ctx)
		if err != nil {
			return gerrors.Wrap(err, "failed to apply migrations")
		}
		for _, r := range results {
			logger.WithField("migration", r.Source.Path).Info("migration applied")
		}
	}
	return nil
}

// schemaDir locates the directory holding the embedded .sql files so the
// embed path a module uses does not leak into migration handling.
func schemaDir(fsys fs.FS) (string, error) {
	dir := ""
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if dir == "" && !d.IsDir() && strings.HasSuffix(p, ".sql") {
			dir = path.Dir(p)
		}
		return nil
	})
	if err != nil {
		return "", gerrors.Wrap(err, "failed to scan schema files")
	}
	if dir == "" {
		return "", gerrors.New("no .sql files in registered schema")
	}
	return dir, nil
}
