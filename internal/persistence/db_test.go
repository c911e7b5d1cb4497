package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFreshDatabaseHasNoState(t *testing.T) {
	db := openTestDB(t)
	assert.False(t, db.HasState())
	_, err := db.LoadAgent()
	assert.True(t, IsNotFound(err))
}

func TestAgentRoundTrip(t *testing.T) {
	db := openTestDB(t)

	a := agent.New("Jessica")
	a.Needs.Energy = 0.42
	a.Needs.Money = 37.5
	a.Skills.Painting = 0.15
	a.Coord = world.Coord{X: 2, Y: 0, Z: 0}
	a.Possessions = []string{"umbrella"}
	a.HandsFree = 1
	a.RecordChat("sam", "sam", "see you tomorrow", time.Now())
	a.Users["sam"].AddPromise("coffee", time.Now().Add(time.Hour))
	a.Mission = &agent.Mission{Kind: agent.MissionFindPlaces, Count: 3, Found: []string{"Park Gate"}}

	require.NoError(t, db.SaveAgent(a))
	assert.True(t, db.HasState())

	got, err := db.LoadAgent()
	require.NoError(t, err)
	assert.Equal(t, "Jessica", got.Name)
	assert.InDelta(t, 0.42, got.Needs.Energy, 1e-9)
	assert.InDelta(t, 37.5, got.Needs.Money, 1e-9)
	assert.Equal(t, world.Coord{X: 2, Y: 0, Z: 0}, got.Coord)
	assert.Equal(t, []string{"umbrella"}, got.Possessions)
	require.Contains(t, got.Users, "sam")
	assert.Len(t, got.Users["sam"].Promises, 1)
	require.NotNil(t, got.Mission)
	assert.Equal(t, []string{"Park Gate"}, got.Mission.Found)
}

func TestWorldRoundTrip(t *testing.T) {
	db := openTestDB(t)

	w := world.Default(1)
	w.TimeOfDay = "Evening"
	w.Weather = "Rainy"
	w.Grid[world.Coord{X: 2, Y: 0, Z: 0}] = &world.Location{
		Name:        "Sidewalk",
		Description: "Cracked pavement.",
		Objects:     []string{"bench"},
		Connections: map[string]world.Coord{"west": {X: 1, Y: 0, Z: 0}},
	}
	w.Register("bench")
	w.Dirty = true

	require.NoError(t, db.SaveWorld(w))
	assert.False(t, w.Dirty, "a successful save clears the dirty flag")

	got, err := db.LoadWorld(1)
	require.NoError(t, err)
	assert.Len(t, got.Grid, len(w.Grid))
	assert.Equal(t, "Evening", got.TimeOfDay)
	assert.Equal(t, "Rainy", got.Weather)
	assert.Equal(t, w.Home, got.Home)

	side := got.At(world.Coord{X: 2, Y: 0, Z: 0})
	require.NotNil(t, side)
	assert.Equal(t, "Sidewalk", side.Name)
	assert.Equal(t, world.Coord{X: 1, Y: 0, Z: 0}, side.Connections["west"])
	assert.NotNil(t, got.Objects["bench"])
	assert.True(t, got.Objects["refrigerator"].HasItem("apple"))
}

func TestSaveWorldIsFullReplace(t *testing.T) {
	db := openTestDB(t)

	w := world.Default(1)
	require.NoError(t, db.SaveWorld(w))

	// Drop a location, save again; the old row must not survive.
	delete(w.Grid, world.Coord{X: -1, Y: 0, Z: 0})
	require.NoError(t, db.SaveWorld(w))

	got, err := db.LoadWorld(1)
	require.NoError(t, err)
	assert.Nil(t, got.At(world.Coord{X: -1, Y: 0, Z: 0}))
}

func TestEventLogAppendAndRead(t *testing.T) {
	db := openTestDB(t)

	rows := []EventRow{
		{Beat: 1, At: "2026-08-30T10:00:00Z", Kind: "think", Text: "first"},
		{Beat: 2, At: "2026-08-30T10:00:01Z", Kind: "say", Text: "second"},
		{Beat: 3, At: "2026-08-30T10:00:02Z", Kind: "ambient", Text: "third"},
	}
	require.NoError(t, db.AppendEvents(rows))

	got, err := db.RecentEvents(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Text, "oldest first within the window")
	assert.Equal(t, "third", got[1].Text)
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveMeta("last_beat", "120"))
	require.NoError(t, db.SaveMeta("last_beat", "240"))

	v, err := db.GetMeta("last_beat")
	require.NoError(t, err)
	assert.Equal(t, "240", v)
}
