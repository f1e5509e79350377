package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"

	"magic_villa/internal/adapters/observability"
	"magic_villa/internal/domain"
)

type Repo struct {
	db  *sql.DB
	d   Dialect
	now func() time.Time
}

var _ domain.VillaRepository = (*Repo)(nil)

func New(db *sql.DB, d Dialect) *Repo {
	return &Repo{db: db, d: d, now: time.Now}
}

func storeErr(op string, err error, msg string) error {
	return &domain.StoreError{Op: "villas." + op, Err: errors.Wrap(err, msg)}
}

// stamp truncates to microseconds, the finest precision every backend keeps.
func (r *Repo) stamp() time.Time { return r.now().UTC().Truncate(time.Microsecond) }

func (r *Repo) where(f *domain.Filter) (string, []any) {
	if f.Empty() {
		return "", nil
	}
	var conds []string
	var args []any
	if f.ID != nil {
		conds = append(conds, "id = ?")
		args = append(args, *f.ID)
	}
	if f.Name != nil {
		conds = append(conds, "LOWER(name) = LOWER(?)")
		args = append(args, *f.Name)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) query(ctx context.Context, f *domain.Filter, limit int) ([]domain.Villa, error) {
	where, args := r.where(f)
	q := selectVillasSQL + where + " ORDER BY id"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Villa{}
	for rows.Next() {
		var v domain.Villa
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Details,
			&v.Rate,
			&v.Sqft,
			&v.Occupancy,
			&v.ImageURL,
			&v.Amenity,
			&v.CreatedDate,
			&v.UpdatedDate,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetAll(ctx context.Context, f *domain.Filter) (out []domain.Villa, err error) {
	defer func(start time.Time) { observability.ObserveStore("get_all", err, time.Since(start)) }(time.Now())

	out, err = r.query(ctx, f, 0)
	if err != nil {
		return nil, storeErr("get_all", err, "list villas")
	}
	return out, nil
}

// Get ignores tracked: every read is a fresh round trip.
func (r *Repo) Get(ctx context.Context, f *domain.Filter, tracked bool) (v domain.Villa, err error) {
	defer func(start time.Time) { observability.ObserveStore("get", err, time.Since(start)) }(time.Now())

	vs, err := r.query(ctx, f, 1)
	if err != nil {
		return domain.Villa{}, storeErr("get", err, "get villa")
	}
	if len(vs) == 0 {
		return domain.Villa{}, domain.ErrNotFound
	}
	return vs[0], nil
}

func (r *Repo) Create(ctx context.Context, v *domain.Villa) (err error) {
	defer func(start time.Time) { observability.ObserveStore("create", err, time.Since(start)) }(time.Now())

	now := r.stamp()
	args := []any{v.Name, v.Details, v.Rate, v.Sqft, v.Occupancy, v.ImageURL, v.Amenity, now, now}

	var id int64
	if r.d.returning {
		q := r.d.Rebind(insertVillaSQL + " RETURNING id")
		if err := r.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return storeErr("create", err, "insert villa")
		}
	} else {
		res, err := r.db.ExecContext(ctx, r.d.Rebind(insertVillaSQL), args...)
		if err != nil {
			return storeErr("create", err, "insert villa")
		}
		if id, err = res.LastInsertId(); err != nil {
			return storeErr("create", err, "read generated id")
		}
	}

	v.ID = id
	v.CreatedDate = now
	v.UpdatedDate = now
	return nil
}

func (r *Repo) Update(ctx context.Context, v *domain.Villa) (err error) {
	defer func(start time.Time) { observability.ObserveStore("update", err, time.Since(start)) }(time.Now())

	now := r.stamp()
	res, err := r.db.ExecContext(ctx, r.d.Rebind(updateVillaSQL),
		v.Name, v.Details, v.Rate, v.Sqft, v.Occupancy, v.ImageURL, v.Amenity, now, v.ID)
	if err != nil {
		return storeErr("update", err, "update villa")
	}
	if err := r.affected(ctx, res, v.ID); err != nil {
		return err
	}
	v.UpdatedDate = now
	return nil
}

func (r *Repo) Remove(ctx context.Context, v domain.Villa) (err error) {
	defer func(start time.Time) { observability.ObserveStore("remove", err, time.Since(start)) }(time.Now())

	res, err := r.db.ExecContext(ctx, r.d.Rebind(deleteVillaSQL), v.ID)
	if err != nil {
		return storeErr("remove", err, "delete villa")
	}
	return r.affected(ctx, res, v.ID)
}

// affected maps a zero row count to ErrNotFound. MySQL reports changed rather than
// matched rows unless clientFoundRows is set, so zero is confirmed with a lookup.
func (r *Repo) affected(ctx context.Context, res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("affected", err, "read affected rows")
	}
	if n > 0 {
		return nil
	}
	var count int
	if err := r.db.QueryRowContext(ctx, r.d.Rebind(countVillaSQL), id).Scan(&count); err != nil {
		return storeErr("affected", err, "confirm villa")
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Save is a no-op: every write above is committed when it returns.
func (r *Repo) Save(ctx context.Context) error { return nil }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
