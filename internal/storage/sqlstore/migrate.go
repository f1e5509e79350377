package sqlstore

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Migrate creates the villas schema if it is missing. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for i, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "%s schema statement %d", d.Name, i)
		}
	}
	log.Info().Str("dialect", d.Name).Int("statements", len(d.schema)).Msg("schema ready")
	return nil
}
