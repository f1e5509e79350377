package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magic_villa/internal/app"
	"magic_villa/internal/shared"
	"magic_villa/internal/storage/memory"
)

func TestSeed_SkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	cmd := app.NewCommandService(repo, nil)

	villas, err := loadVillas(ctx, shared.Seed{})
	require.NoError(t, err)
	require.Len(t, villas, len(shared.SeedVillas))

	created, skipped, failed := seed(ctx, cmd, villas, 2)
	assert.Equal(t, int64(2), created)
	assert.Zero(t, skipped)
	assert.Zero(t, failed)

	created, skipped, failed = seed(ctx, cmd, append(villas, app.VillaCreateDTO{}), 4)
	assert.Zero(t, created)
	assert.Equal(t, int64(2), skipped)
	assert.Equal(t, int64(1), failed)

	all, err := repo.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSeed_InvalidatesAPICache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	repo := memory.New()

	cache, closeCache := connectCache(ctx, shared.Redis{Addr: mr.Addr()})
	defer closeCache()
	require.NotNil(t, cache)

	// the API has cached the empty list
	q := app.NewQueryService(repo, cache, time.Minute)
	before, err := q.List(ctx)
	require.NoError(t, err)
	require.Empty(t, before)
	require.True(t, mr.Exists("villas:all"))

	villas, err := loadVillas(ctx, shared.Seed{})
	require.NoError(t, err)
	created, _, _ := seed(ctx, app.NewCommandService(repo, cache), villas, 2)
	require.Equal(t, int64(2), created)

	assert.False(t, mr.Exists("villas:all"))
	after, err := q.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestConnectCache_Disabled(t *testing.T) {
	cache, closeCache := connectCache(context.Background(), shared.Redis{})
	defer closeCache()
	assert.Nil(t, cache)
}
