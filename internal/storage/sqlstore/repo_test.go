package sqlstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magic_villa/internal/domain"
	"magic_villa/internal/storage/sqlstore"
)

// newSQLiteRepo opens a private in-memory database shared by the pool's connections.
func newSQLiteRepo(t *testing.T) *sqlstore.Repo {
	t.Helper()
	db, d, err := sqlstore.Open(sqlstore.Options{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlstore.Migrate(context.Background(), db, d))
	return sqlstore.New(db, d)
}

func poolView() domain.Villa {
	return domain.Villa{Name: "Pool View", Details: "Sunny", Rate: 200, Sqft: 100, Occupancy: 4, ImageURL: "https://img/1.png", Amenity: "Pool"}
}

func TestRepo_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	v := poolView()
	require.NoError(t, repo.Create(ctx, &v))
	assert.Positive(t, v.ID)
	assert.False(t, v.CreatedDate.IsZero())
	assert.Equal(t, v.CreatedDate, v.UpdatedDate)

	second := domain.Villa{Name: "Beach View", Sqft: 100, Occupancy: 3}
	require.NoError(t, repo.Create(ctx, &second))
	assert.Greater(t, second.ID, v.ID)
}

func TestRepo_GetRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	v := poolView()
	require.NoError(t, repo.Create(ctx, &v))

	got, err := repo.Get(ctx, domain.ByID(v.ID), true)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, "Pool View", got.Name)
	assert.Equal(t, "Sunny", got.Details)
	assert.Equal(t, 200.0, got.Rate)
	assert.Equal(t, 100, got.Sqft)
	assert.Equal(t, 4, got.Occupancy)
	assert.Equal(t, "https://img/1.png", got.ImageURL)
	assert.Equal(t, "Pool", got.Amenity)
	assert.WithinDuration(t, v.CreatedDate, got.CreatedDate, time.Millisecond)

	_, err = repo.Get(ctx, domain.ByID(99999), false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetByNameIsCaseInsensitive(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	v := poolView()
	require.NoError(t, repo.Create(ctx, &v))

	got, err := repo.Get(ctx, domain.ByName("POOL view"), false)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	_, err = repo.Get(ctx, domain.ByName("Ocean View"), false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetAll(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	all, err := repo.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, all, "empty result must be an empty slice")
	assert.Empty(t, all)

	for _, name := range []string{"Pool View", "Beach View", "Garden View"} {
		v := domain.Villa{Name: name}
		require.NoError(t, repo.Create(ctx, &v))
	}

	all, err = repo.GetAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Pool View", all[0].Name, "ordered by id")

	filtered, err := repo.GetAll(ctx, domain.ByName("beach view"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Beach View", filtered[0].Name)
}

func TestRepo_UpdateOverwritesAndKeepsCreatedDate(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	v := poolView()
	require.NoError(t, repo.Create(ctx, &v))

	upd := domain.Villa{ID: v.ID, Name: "Pool View Deluxe", Occupancy: 6, Sqft: 120}
	require.NoError(t, repo.Update(ctx, &upd))

	got, err := repo.Get(ctx, domain.ByID(v.ID), true)
	require.NoError(t, err)
	assert.Equal(t, "Pool View Deluxe", got.Name)
	assert.Equal(t, 6, got.Occupancy)
	assert.Equal(t, "", got.Details, "full replace clears omitted fields")
	assert.WithinDuration(t, v.CreatedDate, got.CreatedDate, time.Millisecond)

	// unchanged values still count as a match
	require.NoError(t, repo.Update(ctx, &upd))

	missing := domain.Villa{ID: 4242, Name: "Ghost"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), domain.ErrNotFound)
}

func TestRepo_Remove(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	v := poolView()
	require.NoError(t, repo.Create(ctx, &v))
	require.NoError(t, repo.Remove(ctx, v))

	_, err := repo.Get(ctx, domain.ByID(v.ID), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Remove(ctx, v), domain.ErrNotFound)

	// ids are never reused
	next := domain.Villa{Name: "Pool View"}
	require.NoError(t, repo.Create(ctx, &next))
	assert.Greater(t, next.ID, v.ID)
}

func TestRepo_StoreErrorOnClosedDB(t *testing.T) {
	db, d, err := sqlstore.Open(sqlstore.Options{Driver: "sqlite", DSN: "file:closed?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo := sqlstore.New(db, d)
	_, err = repo.GetAll(context.Background(), nil)
	require.Error(t, err)

	var se *domain.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "villas.get_all", se.Op)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_SaveAndPing(t *testing.T) {
	repo := newSQLiteRepo(t)
	assert.NoError(t, repo.Save(context.Background()))
	assert.NoError(t, repo.Ping(context.Background()))
}
