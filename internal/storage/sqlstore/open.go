package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open resolves the dialect and configures the pool. It does not touch the network.
func Open(o Options) (*sql.DB, Dialect, error) {
	d, err := DialectFor(o.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}
	db, err := sql.Open(d.DriverName, o.DSN)
	if err != nil {
		return nil, Dialect{}, errors.Wrapf(err, "open %s", d.Name)
	}
	if o.MaxOpenConns > 0 {
		db.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		db.SetMaxIdleConns(o.MaxIdleConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, d, nil
}

// WaitReady pings db with exponential backoff, giving up after retries failed attempts.
func WaitReady(ctx context.Context, db *sql.DB, retries uint64) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := db.PingContext(ctx)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("database not ready")
		}
		return err
	}, b)
}
