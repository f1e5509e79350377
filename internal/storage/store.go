// Package storage opens the villa store selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"magic_villa/internal/domain"
	"magic_villa/internal/shared"
	"magic_villa/internal/storage/memory"
	"magic_villa/internal/storage/sqlstore"
)

// Store is a ready VillaRepository plus the resources behind it. db is nil for the
// in-memory driver.
type Store struct {
	domain.VillaRepository
	db      *sql.DB
	dialect sqlstore.Dialect
}

// Open connects to c.Driver, waiting for the database with backoff. The "memory"
// driver returns the built-in villas without touching the network.
func Open(ctx context.Context, c shared.DB) (*Store, error) {
	if strings.EqualFold(c.Driver, "memory") {
		return &Store{VillaRepository: memory.New(shared.SeedVillas...)}, nil
	}

	db, d, err := sqlstore.Open(sqlstore.Options{
		Driver:       c.Driver,
		DSN:          c.DSN,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}
	if err := sqlstore.WaitReady(ctx, db, c.Retries); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "%s not reachable", d.Name)
	}
	log.Info().Str("dialect", d.Name).Msg("database connection ok")
	return &Store{VillaRepository: sqlstore.New(db, d), db: db, dialect: d}, nil
}

// Migrate creates the schema when the store is backed by a database.
func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return sqlstore.Migrate(ctx, s.db, s.dialect)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
