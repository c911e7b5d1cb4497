package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSomaticDecayAcceleratesUnderStress(t *testing.T) {
	now := time.Now()

	calm := New("a")
	tense := New("b")
	tense.Affect.Stress = 0.9

	calm.SomaticUpdate(now)
	tense.SomaticUpdate(now)

	assert.Less(t, tense.Needs.Energy, calm.Needs.Energy,
		"high stress burns energy faster")
}

func TestSleepRecoversEnergy(t *testing.T) {
	a := New("a")
	a.Needs.Energy = 0.5
	a.Sleeping = true

	a.SomaticUpdate(time.Now())
	assert.InDelta(t, 0.5167, a.Needs.Energy, 1e-6)
}

func TestDriveCreepPausesDuringSleep(t *testing.T) {
	a := New("a")
	a.Sleeping = true
	before := a.Drives

	a.SomaticUpdate(time.Now())
	assert.Equal(t, before, a.Drives)
}

func TestPsychStateReflectsBody(t *testing.T) {
	now := time.Now()

	a := New("a")
	a.Needs.Satiety = 0.1
	a.SomaticUpdate(now)
	assert.Equal(t, "Famished", a.PsychState)

	a = New("a")
	a.Needs.Energy = 0.1
	a.SomaticUpdate(now)
	assert.Equal(t, "Exhausted", a.PsychState)
}

func TestTakeAndDropManageHands(t *testing.T) {
	a := New("a")
	require.True(t, a.Take("umbrella"))
	require.True(t, a.Take("apple"))
	assert.False(t, a.Take("book"), "two hands only")

	assert.True(t, a.Drop("umbrella"))
	assert.True(t, a.Take("book"))
	assert.False(t, a.Drop("umbrella"), "cannot drop what is not held")
}

func TestMissionRecordDeduplicatesAndCompletes(t *testing.T) {
	m := &Mission{Kind: MissionFindPlaces, Count: 2}

	assert.False(t, m.Record("Park Gate"))
	assert.False(t, m.Record("Park Gate"), "duplicates do not count")
	assert.True(t, m.Record("Bus Stop"))
	assert.Equal(t, []string{"Park Gate", "Bus Stop"}, m.Found)
}

func TestPlanPopsInOrder(t *testing.T) {
	p := &Plan{Goal: "g", Steps: []Step{{Kind: "move"}, {Kind: "examine"}}}
	assert.Equal(t, "move", p.Pop().Kind)
	assert.Equal(t, "examine", p.Pop().Kind)
	assert.True(t, p.Empty())
}

func TestUserProfileMemoryBounded(t *testing.T) {
	a := New("a")
	now := time.Now()
	for i := 0; i < 100; i++ {
		a.RecordChat("sam", "sam", "hi", now)
	}
	assert.Len(t, a.Users["sam"].Log, maxLogLines)
	assert.Equal(t, "sam", a.LastUserID)
}

func TestDuePromises(t *testing.T) {
	a := New("a")
	u := a.User("sam")
	now := time.Now()
	u.AddPromise("the gallery thing", now.Add(-time.Minute))
	u.AddPromise("a future thing", now.Add(time.Hour))

	due := u.DuePromises(now)
	require.Len(t, due, 1)
	assert.Equal(t, "the gallery thing", due[0].Event)

	due[0].Fulfilled = true
	assert.Empty(t, u.DuePromises(now))
}
