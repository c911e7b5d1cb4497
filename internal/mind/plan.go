package mind

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Cheetoyumyum/Project-Jessica/internal/action"
	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// runPlan is the executor: it settles the last action's outcome, feeds
// the next plan step to the manager, and keeps missions moving.
func (m *Mind) runPlan(cx *action.Ctx) {
	kind, out := m.Actions.ConsumeOutcome()
	if out == action.OutcomeFailure && kind != action.KindIdle {
		m.abortPlan(kind)
	}
	if out == action.OutcomeSuccess && kind == action.KindJournal {
		m.reflectAsync()
	}

	if m.Agent.Plan != nil && !m.Agent.Plan.Empty() {
		if m.Actions.Current.Kind() != action.KindIdle {
			return
		}
		step := m.Agent.Plan.Pop()
		act, err := action.New(step.Kind, step.Params)
		if err != nil {
			slog.Warn("plan step rejected", "kind", step.Kind, "error", err)
			m.abortPlan(step.Kind)
			return
		}
		slog.Debug("plan step", "kind", step.Kind, "remaining", len(m.Agent.Plan.Steps))
		m.Actions.Start(cx, act)
		if m.Agent.Plan != nil && m.Agent.Plan.Empty() && m.Agent.Mission != nil {
			// The plan was the mission's last directive; popping its
			// final step retires both.
			slog.Debug("plan drained, mission retired", "goal", m.Agent.Mission.Goal)
			m.Agent.Mission = nil
		}
		return
	}

	if m.Agent.Plan != nil {
		// Last step is still running or just finished; the plan's job
		// is done either way.
		if m.Actions.Current.Kind() == action.KindIdle {
			m.Agent.Plan = nil
		}
		if m.Agent.Plan != nil {
			return
		}
	}

	if m.Agent.Mission != nil {
		m.advanceMission(cx)
	}
}

// abortPlan drops the current plan and mission after a failed step. A
// failed step invalidates everything queued behind it.
func (m *Mind) abortPlan(failedKind string) {
	if m.Agent.Plan == nil && m.Agent.Mission == nil {
		return
	}
	goal := ""
	if m.Agent.Plan != nil {
		goal = m.Agent.Plan.Goal
	} else if m.Agent.Mission != nil {
		goal = m.Agent.Mission.Goal
	}
	m.Agent.Plan = nil
	m.Agent.Mission = nil
	slog.Info("plan abandoned", "failed_step", failedKind, "goal", goal)
	m.think(fmt.Sprintf("That didn't work. So much for %q.", goal))
	if m.Oracle != nil {
		m.consultAsync(fmt.Sprintf(
			"My plan to %q failed at the %s step. I need to re-evaluate what to do next.",
			goal, failedKind))
	}
}

// advanceMission makes progress on the standing mission when no plan is
// queued.
func (m *Mind) advanceMission(cx *action.Ctx) {
	ms := m.Agent.Mission
	if ms.Complete() {
		m.finishMission(cx, ms)
		return
	}
	switch ms.Kind {
	case agent.MissionFindPlaces:
		if m.Oracle != nil {
			// The oracle steers the mission one step at a time; the
			// canned plans below are only the no-oracle fallback.
			m.consultAsync(fmt.Sprintf(
				"I am out looking for new, distinct places. I have found %d so far and need %d. What should I do next?",
				len(ms.Found), ms.Count))
			return
		}
		here := cx.Here()
		if here != nil && here.Indoor {
			if p := m.outsidePlan(ms.Goal); p != nil {
				m.Agent.Plan = p
				return
			}
			m.abortPlan("mission")
			return
		}
		m.Agent.Plan = m.wanderPlan(ms.Goal)
	default:
		slog.Warn("unknown mission kind", "kind", ms.Kind)
		m.Agent.Mission = nil
	}
}

// finishMission reports the result and clears the mission.
func (m *Mind) finishMission(cx *action.Ctx, ms *agent.Mission) {
	m.Agent.Mission = nil
	if ms.Kind == agent.MissionFindPlaces {
		report := fmt.Sprintf("Found what I was looking for: %s.", strings.Join(ms.Found, ", "))
		m.Actions.InterruptAndStart(cx, action.NewRespond(report))
	}
	m.think("Mission accomplished.")
	slog.Info("mission complete", "kind", ms.Kind, "goal", ms.Goal)
}

var (
	goOutsideRe  = regexp.MustCompile(`(?i)\b(go|get|step|head)\b.*\b(outside|fresh air|for a walk|out of the house)\b`)
	findPlacesRe = regexp.MustCompile(`(?i)\bfind\b.*?\b(\d+)\b.*\b(spot|place|location)s?\b`)
)

// cannedPlan recognizes goals the mind can plan for without consulting
// the oracle.
func (m *Mind) cannedPlan(goal string) *agent.Plan {
	if goOutsideRe.MatchString(goal) {
		return m.outsidePlan(goal)
	}
	return nil
}

// outsidePlan builds the walk from wherever the agent stands to street
// level: path to the exit, open the door, step through.
func (m *Mind) outsidePlan(goal string) *agent.Plan {
	here := m.World.At(m.Agent.Coord)
	if here == nil {
		return nil
	}
	if !here.Indoor {
		return &agent.Plan{Goal: goal}
	}
	exit, ok := m.exitCoord()
	if !ok {
		return nil
	}
	dirs, err := m.World.FindPath(m.Agent.Coord, exit)
	if err != nil {
		return nil
	}
	plan := &agent.Plan{Goal: goal}
	for _, d := range dirs {
		plan.Steps = append(plan.Steps, agent.Step{Kind: action.KindMove, Params: map[string]string{"direction": d}})
	}
	plan.Steps = append(plan.Steps,
		agent.Step{Kind: action.KindInteract, Params: map[string]string{"target": "main_door", "verb": "open"}},
		agent.Step{Kind: action.KindMove, Params: map[string]string{"direction": m.streetDirection(exit)}},
	)
	return plan
}

// exitCoord locates the building exit, the location holding the main
// door.
func (m *Mind) exitCoord() (world.Coord, bool) {
	for c, loc := range m.World.Grid {
		if loc.HasObject("main_door") {
			return c, true
		}
	}
	return world.Coord{}, false
}

// streetDirection picks which way to step out of the exit: through an
// existing outdoor edge if one is mapped, otherwise toward unmapped
// space so the street gets generated.
func (m *Mind) streetDirection(exit world.Coord) string {
	loc := m.World.At(exit)
	order := []string{"east", "north", "south", "west"}
	for _, d := range order {
		if dest, ok := loc.Connections[d]; ok {
			if l := m.World.At(dest); l != nil && !l.Indoor {
				return d
			}
		}
	}
	for _, d := range order {
		if _, ok := loc.Connections[d]; !ok {
			return d
		}
	}
	return "east"
}

// wanderPlan is one leg of open-ended exploration: a step in a random
// direction, then a look around.
func (m *Mind) wanderPlan(goal string) *agent.Plan {
	dirs := []string{"north", "south", "east", "west"}
	return &agent.Plan{
		Goal: goal,
		Steps: []agent.Step{
			{Kind: action.KindMove, Params: map[string]string{"direction": m.rand.Pick(dirs)}},
			{Kind: action.KindExamine},
		},
	}
}
