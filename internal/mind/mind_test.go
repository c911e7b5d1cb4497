package mind

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheetoyumyum/Project-Jessica/internal/action"
	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/entropy"
	"github.com/Cheetoyumyum/Project-Jessica/internal/oracle"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// scriptedOracle answers every consultation with one canned decision
// and keeps the stimuli it was asked about.
type scriptedOracle struct {
	mu       sync.Mutex
	decision oracle.Decision
	stimuli  []string
}

func (o *scriptedOracle) Consult(ctx context.Context, snap oracle.Snapshot, stimulus string) (oracle.Decision, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stimuli = append(o.stimuli, stimulus)
	return o.decision, nil
}

func (o *scriptedOracle) ProposePlan(ctx context.Context, snap oracle.Snapshot, goal string) (oracle.PlanDraft, error) {
	return oracle.PlanDraft{}, errors.New("no plan available")
}

func (o *scriptedOracle) Freeform(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (o *scriptedOracle) askedAbout(fragment string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, s := range o.stimuli {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}

func newOracleMind(t *testing.T, orc *scriptedOracle) *Mind {
	t.Helper()
	a := agent.New("Jessica")
	w := world.Default(1)
	w.Zones = world.DefaultZones()
	return New(a, w, orc, entropy.NewSeeded(7))
}

func newTestMind(t *testing.T) *Mind {
	t.Helper()
	a := agent.New("Jessica")
	w := world.Default(1)
	w.Zones = world.DefaultZones()
	return New(a, w, nil, entropy.NewSeeded(7))
}

func step(m *Mind, n int) {
	now := time.Now()
	for i := 0; i < n; i++ {
		m.Step(now.Add(time.Duration(i) * time.Second))
	}
}

func eventTexts(m *Mind) []string {
	var out []string
	for _, ev := range m.RecentEvents(0) {
		out = append(out, ev.Kind+": "+ev.Text)
	}
	return out
}

func TestPlanStepsRunInOrder(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Plan = &agent.Plan{Goal: "settle in", Steps: []agent.Step{
		{Kind: action.KindMove, Params: map[string]string{"direction": "south"}},
		{Kind: action.KindSleep},
	}}

	step(m, 1)
	assert.Equal(t, action.KindMove, m.Actions.Current.Kind())

	step(m, 2)
	assert.Equal(t, world.Coord{X: 0, Y: -1, Z: 0}, m.Agent.Coord, "the move step lands in the bedroom")
	assert.Equal(t, action.KindSleep, m.Actions.Current.Kind())
	assert.True(t, m.Agent.Sleeping)
}

func TestFailedStepAbandonsPlanAndMission(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Mission = &agent.Mission{Kind: agent.MissionFindPlaces, Goal: "find 3 spots", Count: 3}
	m.Agent.Plan = &agent.Plan{Goal: "find 3 spots", Steps: []agent.Step{
		// No generator is wired, so walking off the map fails.
		{Kind: action.KindMove, Params: map[string]string{"direction": "up"}},
		{Kind: action.KindExamine},
	}}

	step(m, 3)

	assert.Nil(t, m.Agent.Plan, "a failed step drops the rest of the plan")
	assert.Nil(t, m.Agent.Mission, "and the mission behind it")
	var gaveUp bool
	for _, tx := range eventTexts(m) {
		if strings.Contains(tx, "didn't work") {
			gaveUp = true
		}
	}
	assert.True(t, gaveUp)
}

func TestFailedStepEscalatesToOracle(t *testing.T) {
	orc := &scriptedOracle{decision: oracle.Decision{Monologue: "Hm."}}
	m := newOracleMind(t, orc)
	m.Agent.Mission = &agent.Mission{Kind: agent.MissionFindPlaces, Goal: "find 3 spots", Count: 3}
	m.Agent.Plan = &agent.Plan{Goal: "find 3 spots", Steps: []agent.Step{
		// No generator is wired, so walking off the map fails.
		{Kind: action.KindMove, Params: map[string]string{"direction": "up"}},
		{Kind: action.KindExamine},
	}}

	step(m, 3)

	require.Eventually(t, func() bool {
		return orc.askedAbout("failed")
	}, time.Second, 10*time.Millisecond, "a failed plan asks the oracle what to do next")
	assert.True(t, orc.askedAbout(`"find 3 spots"`), "the escalation names the abandoned goal")
}

func TestDrainedPlanRetiresMission(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Mission = &agent.Mission{Kind: agent.MissionFindPlaces, Goal: "find 2 spots", Count: 2}
	m.Agent.Plan = &agent.Plan{Goal: "find 2 spots", Steps: []agent.Step{
		{Kind: action.KindMove, Params: map[string]string{"direction": "south"}},
	}}

	step(m, 1)

	assert.Nil(t, m.Agent.Mission, "popping the final step retires the mission with the plan")
}

func TestMissionStepAsksOracleForDirection(t *testing.T) {
	orc := &scriptedOracle{}
	m := newOracleMind(t, orc)
	street := world.Coord{X: 2, Y: 0, Z: 0}
	m.World.Grid[street] = &world.Location{Name: "Sidewalk", Connections: map[string]world.Coord{}}
	m.Agent.Coord = street
	m.Agent.Mission = &agent.Mission{
		Kind:  agent.MissionFindPlaces,
		Goal:  "find 3 spots",
		Count: 3,
		Found: []string{"Park Gate"},
	}

	step(m, 1)

	require.Eventually(t, func() bool {
		return orc.askedAbout("found 1 so far and need 3")
	}, time.Second, 10*time.Millisecond, "mission progress is consulted, not scripted")

	step(m, 1)
	assert.Nil(t, m.Agent.Plan, "with an oracle wired the canned wander plans stay out of it")
	assert.NotNil(t, m.Agent.Mission)
}

func TestMonologueOnlyDecisionJustThinks(t *testing.T) {
	orc := &scriptedOracle{decision: oracle.Decision{Monologue: "A quiet thought."}}
	m := newOracleMind(t, orc)
	require.NoError(t, m.Say("sam", "penny for your thoughts?"))

	step(m, 2)

	require.Eventually(t, func() bool {
		for _, tx := range eventTexts(m) {
			if strings.Contains(tx, "A quiet thought.") {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond, "the monologue still lands as a thought")

	for _, tx := range eventTexts(m) {
		assert.False(t, strings.HasPrefix(tx, "say:"),
			"a decision without an action must not speak, got %q", tx)
	}
}

func TestInvalidPlanStepAborts(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Plan = &agent.Plan{Goal: "g", Steps: []agent.Step{{Kind: "daydream"}}}

	step(m, 1)
	assert.Nil(t, m.Agent.Plan)
	assert.Equal(t, action.KindIdle, m.Actions.Current.Kind())
}

func TestOutsidePlanShape(t *testing.T) {
	m := newTestMind(t)

	p := m.cannedPlan("go outside and get some fresh air")
	require.NotNil(t, p)
	require.Len(t, p.Steps, 3)
	assert.Equal(t, action.KindMove, p.Steps[0].Kind)
	assert.Equal(t, "east", p.Steps[0].Params["direction"])
	assert.Equal(t, action.KindInteract, p.Steps[1].Kind)
	assert.Equal(t, "main_door", p.Steps[1].Params["target"])
	assert.Equal(t, action.KindMove, p.Steps[2].Kind)
}

func TestCannedPlanIgnoresUnrelatedGoals(t *testing.T) {
	m := newTestMind(t)
	assert.Nil(t, m.cannedPlan("learn to juggle"))
}

func TestOutsidePlanEmptyWhenAlreadyOutside(t *testing.T) {
	m := newTestMind(t)
	street := world.Coord{X: 2, Y: 0, Z: 0}
	m.World.Grid[street] = &world.Location{Name: "Sidewalk", Connections: map[string]world.Coord{}}
	m.Agent.Coord = street

	p := m.outsidePlan("get some air")
	require.NotNil(t, p)
	assert.Empty(t, p.Steps)
}

func TestMissionIndoorsHeadsForTheDoor(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Mission = &agent.Mission{Kind: agent.MissionFindPlaces, Goal: "find 2 spots", Count: 2}

	step(m, 1)
	require.NotNil(t, m.Agent.Plan)
	last := m.Agent.Plan.Steps[len(m.Agent.Plan.Steps)-1]
	assert.Equal(t, action.KindMove, last.Kind)
}

func TestMissionCompletionReportsAndClears(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Mission = &agent.Mission{
		Kind:  agent.MissionFindPlaces,
		Goal:  "find 2 spots",
		Count: 2,
		Found: []string{"Park Gate", "Bus Stop"},
	}
	// Outdoors, so the mission logic does not try to leave first.
	street := world.Coord{X: 2, Y: 0, Z: 0}
	m.World.Grid[street] = &world.Location{Name: "Sidewalk", Connections: map[string]world.Coord{}}
	m.Agent.Coord = street

	step(m, 2)

	assert.Nil(t, m.Agent.Mission)
	texts := eventTexts(m)
	var spoke bool
	for _, tx := range texts {
		if tx == "say: Found what I was looking for: Park Gate, Bus Stop." {
			spoke = true
		}
	}
	assert.True(t, spoke, "completion is reported out loud, got %v", texts)
}

func TestTwoQuotaStrikesTriggerDormancy(t *testing.T) {
	m := newTestMind(t)

	m.noteOracleErr(errors.New("429 too many requests"))
	assert.False(t, m.Agent.Dormant(time.Now()), "one strike is forgiven")

	m.noteOracleErr(errors.New("quota exceeded"))
	assert.True(t, m.Agent.Dormant(time.Now()))
	assert.Zero(t, m.quotaStrikes, "strikes reset on entering dormancy")
}

func TestNonQuotaErrorsDoNotStrike(t *testing.T) {
	m := newTestMind(t)
	m.noteOracleErr(errors.New("connection refused"))
	m.noteOracleErr(errors.New("connection refused"))
	assert.False(t, m.Agent.Dormant(time.Now()))
}

func TestDormantBeatsAreInert(t *testing.T) {
	m := newTestMind(t)
	m.Agent.DormantUntil = time.Now().Add(time.Hour)
	energy := m.Agent.Needs.Energy

	step(m, 5)

	assert.Equal(t, int64(5), m.Beat(), "the clock still runs")
	assert.Equal(t, energy, m.Agent.Needs.Energy, "the body does not")
}

func TestDormancyExpiryAnnouncesItself(t *testing.T) {
	m := newTestMind(t)
	m.Agent.DormantUntil = time.Now().Add(-time.Minute)
	m.wasDormant = true
	m.quotaStrikes = 1

	step(m, 1)

	assert.Zero(t, m.quotaStrikes)
	assert.Contains(t, eventTexts(m)[0], "fog has lifted")
}

func TestStimulusRecordedAndAnswered(t *testing.T) {
	m := newTestMind(t)
	require.NoError(t, m.Say("sam", "hey, how are you?"))

	step(m, 2)

	require.Contains(t, m.Agent.Users, "sam")
	assert.Len(t, m.Agent.Users["sam"].Log, 1)
	assert.Equal(t, "sam", m.Agent.LastUserID)

	var heard, said bool
	for _, tx := range eventTexts(m) {
		if tx == "heard: sam: hey, how are you?" {
			heard = true
		}
		if len(tx) > 4 && tx[:4] == "say:" {
			said = true
		}
	}
	assert.True(t, heard)
	assert.True(t, said, "without an oracle she still answers on reflex")
}

func TestStimulusDuringSleepIsLoggedNotActed(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Sleeping = true
	m.Actions.Start(m.ctx(time.Now()), mustSleep(t))

	require.NoError(t, m.Say("sam", "you up?"))
	step(m, 1)

	assert.Len(t, m.Agent.Users["sam"].Log, 1, "the message is remembered")
	assert.Equal(t, action.KindSleep, m.Actions.Current.Kind(), "but she sleeps on")
}

func TestLowEnergyAutonomyLeadsToBed(t *testing.T) {
	m := newTestMind(t)
	m.Agent.Needs.Energy = 0.2
	m.Agent.Needs.Satiety = 1.0
	m.Agent.LastInteraction = time.Now()
	m.Agent.Needs.Money = 100 // no money pressure

	step(m, 4)

	assert.True(t, m.Agent.Sleeping, "events: %v", eventTexts(m))
}

func TestStatusSnapshot(t *testing.T) {
	m := newTestMind(t)
	step(m, 1)

	st := m.CurrentStatus()
	assert.Equal(t, "Jessica", st.Name)
	assert.Equal(t, "Living Room", st.Location)
	assert.Equal(t, int64(1), st.Beat)
	assert.NotEmpty(t, st.Action)
}

func TestHeartbeatRunsAndStops(t *testing.T) {
	m := newTestMind(t)
	hb := NewHeartbeat(m, time.Millisecond)
	go hb.Run()

	deadline := time.Now().Add(2 * time.Second)
	for m.Beat() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	assert.GreaterOrEqual(t, m.Beat(), int64(3))
}

func mustSleep(t *testing.T) action.Action {
	t.Helper()
	act, err := action.New(action.KindSleep, nil)
	require.NoError(t, err)
	return act
}
