package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magic_villa/internal/app"
	"magic_villa/internal/domain"
)

func TestParsePatch_NormalizesPaths(t *testing.T) {
	ops, err := app.ParsePatch([]byte(`[
		{"op":"Replace","path":"/IMAGEURL","value":"https://img/1.png"},
		{"op":"copy","from":"/Details","path":"/amenity"}
	]`))
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, app.PatchOperation{Op: "replace", Path: "/imageUrl", Value: "https://img/1.png"}, ops[0])
	assert.Equal(t, "/details", ops[1].From)
	assert.Equal(t, "/amenity", ops[1].Path)
}

func TestParsePatch_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty body":        ``,
		"null":              `null`,
		"empty array":       `[]`,
		"not an array":      `{"op":"replace"}`,
		"unsupported op":    `[{"op":"merge","path":"/name","value":"x"}]`,
		"missing path":      `[{"op":"remove"}]`,
		"relative path":     `[{"op":"remove","path":"name"}]`,
		"unknown member":    `[{"op":"replace","path":"/pool","value":1}]`,
		"nested member":     `[{"op":"replace","path":"/name/0","value":"x"}]`,
		"replace w/o value": `[{"op":"replace","path":"/name"}]`,
		"move w/o from":     `[{"op":"move","path":"/name"}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := app.ParsePatch([]byte(doc))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApplyPatch_LeavesInputUntouched(t *testing.T) {
	in := app.VillaUpdateDTO{ID: 1, Name: "Pool View", Occupancy: 4, Sqft: 100}
	ops := []app.PatchOperation{
		{Op: "replace", Path: "/occupancy", Value: 6},
		{Op: "move", From: "/name", Path: "/details"},
	}

	out, err := app.ApplyPatch(in, ops)
	require.NoError(t, err)
	assert.Equal(t, 6, out.Occupancy)
	assert.Equal(t, "Pool View", out.Details)
	assert.Empty(t, out.Name)
	assert.Equal(t, 4, in.Occupancy)
	assert.Equal(t, "Pool View", in.Name)
}
