package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGen struct {
	calls int
	fail  bool
	loc   GeneratedLocation
}

func (g *stubGen) GenerateLocation(ctx context.Context, gc GenContext) (GeneratedLocation, error) {
	g.calls++
	if g.fail {
		return GeneratedLocation{}, errors.New("generation refused")
	}
	return g.loc, nil
}

func TestMoveAlongExistingEdge(t *testing.T) {
	w := Default(1)
	res := w.Move(Coord{0, 0, 0}, "south", "stable")
	require.True(t, res.Moved)
	assert.Equal(t, Coord{0, -1, 0}, res.Dest)
	assert.False(t, res.Generated)
}

func TestMoveGeneratesMissingEdgeBothWays(t *testing.T) {
	w := Default(1)
	gen := &stubGen{loc: GeneratedLocation{
		Name:        "Sidewalk",
		Description: "Cracked pavement under a wide sky.",
		Objects:     []string{"bench"},
		Indoor:      false,
	}}
	w.Gen = gen

	from := Coord{1, 0, 0} // hallway
	res := w.Move(from, "east", "stable")
	require.True(t, res.Moved)
	assert.True(t, res.Generated)
	assert.Equal(t, Coord{2, 0, 0}, res.Dest)

	// Forward and reverse edges must both exist.
	assert.Equal(t, res.Dest, w.At(from).Connections["east"])
	assert.Equal(t, from, w.At(res.Dest).Connections["west"])

	// Novel objects are registered from the template catalog.
	assert.NotNil(t, w.Objects["bench"])
	assert.True(t, w.Dirty)
}

func TestMoveGenerationFailureLeavesWorldUntouched(t *testing.T) {
	w := Default(1)
	gen := &stubGen{fail: true}
	w.Gen = gen

	before := len(w.Grid)
	res := w.Move(Coord{1, 0, 0}, "east", "stable")

	assert.False(t, res.Moved)
	assert.Len(t, w.Grid, before, "no half-created location may remain")
	assert.Nil(t, w.At(Coord{2, 0, 0}))
	_, hasEdge := w.At(Coord{1, 0, 0}).Connections["east"]
	assert.False(t, hasEdge)
	assert.Equal(t, 2, gen.calls, "generation retries once, then gives up")
}

func TestMoveWithoutGenerator(t *testing.T) {
	w := Default(1)
	res := w.Move(Coord{1, 0, 0}, "east", "stable")
	assert.False(t, res.Moved)
}

func TestDuplicateNameRejected(t *testing.T) {
	w := Default(1)
	gen := &stubGen{loc: GeneratedLocation{
		Name:        "Kitchen", // already exists
		Description: "Another kitchen, somehow.",
	}}
	w.Gen = gen

	res := w.Move(Coord{1, 0, 0}, "east", "stable")
	assert.False(t, res.Moved)
}

func TestThemeFirstMatchWinsWithExclusions(t *testing.T) {
	w := New(1)
	w.Zones = DefaultZones()

	// Inside the park box: the park wins even though downtown's box
	// also covers it, because the park is listed first.
	assert.Contains(t, w.ThemeAt(Coord{5, 0, 0}), "park")

	// Downtown but outside the park.
	assert.Contains(t, w.ThemeAt(Coord{2, 0, 0}), "downtown")

	// Unzoned space has no theme.
	assert.Empty(t, w.ThemeAt(Coord{-10, 0, 0}))
}

func TestIsHome(t *testing.T) {
	w := Default(1)
	assert.True(t, w.IsHome(Coord{0, 0, 0}))
	assert.False(t, w.IsHome(Coord{1, 0, 0}), "the shared hallway is not home ground")
}
