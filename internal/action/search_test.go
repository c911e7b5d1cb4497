package action

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

func runSearch(cx *Ctx, target string, maxBeats int) *Manager {
	m := NewManager()
	m.Start(cx, NewSearch(target))
	for i := 0; i < maxBeats && m.Current.Kind() == KindSearch; i++ {
		m.Update(cx)
	}
	return m
}

func TestSearchFindsObjectInAnotherRoom(t *testing.T) {
	cx, _ := testCtx(t)
	cx.Agent.Coord = world.Coord{X: 0, Y: -1, Z: 0} // bedroom; stove is in the kitchen

	m := runSearch(cx, "stove", 10)
	assert.Equal(t, OutcomeSuccess, m.LastOutcome)
}

func TestSearchExhaustsWithoutTarget(t *testing.T) {
	cx, _ := testCtx(t)
	m := runSearch(cx, "unicorn", 29)
	assert.Equal(t, OutcomeFailure, m.LastOutcome)
}

func TestSearchFromIndoorsStaysIndoors(t *testing.T) {
	cx, _ := testCtx(t)

	// Bolt an outdoor street onto the hallway holding the target.
	street := world.Coord{X: 2, Y: 0, Z: 0}
	cx.World.Grid[street] = &world.Location{
		Name:        "Sidewalk",
		Objects:     []string{"bench"},
		Connections: map[string]world.Coord{"west": {X: 1, Y: 0, Z: 0}},
	}
	cx.World.Grid[world.Coord{X: 1, Y: 0, Z: 0}].Connections["east"] = street
	cx.World.Register("bench")

	m := runSearch(cx, "bench", 29)
	assert.Equal(t, OutcomeFailure, m.LastOutcome,
		"an indoor search must not cross the threshold")
}

func TestSearchFromOutdoorsMayComeInside(t *testing.T) {
	cx, _ := testCtx(t)

	street := world.Coord{X: 2, Y: 0, Z: 0}
	cx.World.Grid[street] = &world.Location{
		Name:        "Sidewalk",
		Connections: map[string]world.Coord{"west": {X: 1, Y: 0, Z: 0}},
	}
	cx.World.Grid[world.Coord{X: 1, Y: 0, Z: 0}].Connections["east"] = street
	cx.Agent.Coord = street

	m := runSearch(cx, "stove", 29)
	assert.Equal(t, OutcomeSuccess, m.LastOutcome,
		"an outdoor search may lead back indoors")
}

func TestSearchStopsAtDepthLimit(t *testing.T) {
	cx, events := testCtx(t)

	// A chain of rooms with the prize four hops out, one past the
	// depth limit. The sweep must come up empty without using the
	// whole budget.
	prev := world.Coord{X: 1, Y: 0, Z: 0}
	for i := 2; i <= 6; i++ {
		c := world.Coord{X: i}
		cx.World.Grid[c] = &world.Location{
			Name:        "Corridor " + string(rune('A'+i)),
			Indoor:      true,
			Connections: map[string]world.Coord{"west": prev},
		}
		cx.World.Grid[prev].Connections["east"] = c
		prev = c
	}
	far := world.Coord{X: 5} // four hops from the hallway
	cx.World.Grid[far].Objects = []string{"trophy"}
	cx.World.Register("trophy")
	cx.Agent.Coord = world.Coord{X: 1, Y: 0, Z: 0}

	m := runSearch(cx, "trophy", searchBudget)
	assert.Equal(t, OutcomeFailure, m.LastOutcome)

	var missed, gaveUp bool
	for _, tx := range *events {
		if strings.Contains(tx, "looked everywhere") {
			missed = true
		}
		if strings.Contains(tx, "Another time") {
			gaveUp = true
		}
	}
	assert.True(t, missed, "past the depth limit is a clean miss")
	assert.False(t, gaveUp, "the frontier empties before the budget does")
}

func TestSearchGivesUpWhenBudgetExpiresMidSweep(t *testing.T) {
	cx, events := testCtx(t)

	// A dense block of rooms: every coordinate within three hops of
	// the start, far more than the budget can visit.
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	inside := func(c world.Coord) bool { return abs(c.X)+abs(c.Y)+abs(c.Z) <= 3 }
	deltas := map[string]world.Coord{
		"east": {X: 1}, "west": {X: -1},
		"north": {Y: 1}, "south": {Y: -1},
		"up": {Z: 1}, "down": {Z: -1},
	}
	grid := make(map[world.Coord]*world.Location)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			for z := -3; z <= 3; z++ {
				c := world.Coord{X: x, Y: y, Z: z}
				if !inside(c) {
					continue
				}
				loc := &world.Location{
					Name:        fmt.Sprintf("Stack %d,%d,%d", x, y, z),
					Indoor:      true,
					Connections: make(map[string]world.Coord),
				}
				for dir, d := range deltas {
					n := world.Coord{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
					if inside(n) {
						loc.Connections[dir] = n
					}
				}
				grid[c] = loc
			}
		}
	}
	cx.World.Grid = grid
	cx.Agent.Coord = world.Coord{}

	m := runSearch(cx, "unicorn", searchBudget)
	require.Equal(t, KindIdle, m.Current.Kind())
	assert.Equal(t, OutcomeFailure, m.LastOutcome)

	var gaveUp bool
	for _, tx := range *events {
		if strings.Contains(tx, "Another time") {
			gaveUp = true
		}
	}
	assert.True(t, gaveUp, "an expired budget is announced, not silent")
}
