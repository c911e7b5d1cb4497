package mind

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Cheetoyumyum/Project-Jessica/internal/action"
	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

const (
	// autonomyThreshold is the minimum urgency before the agent acts
	// on her own initiative.
	autonomyThreshold = 0.5
	// reachOutCooldown is the minimum quiet time before she considers
	// messaging someone first.
	reachOutCooldown = 120 * time.Second
	// spontaneityChance is the per-idle-beat odds of a whim.
	spontaneityChance = 0.05
)

// idleHooks adapts the mind into the idle action's polling surface.
type idleHooks Mind

// CheckSchedule fires any promise whose time has come.
func (h *idleHooks) CheckSchedule(cx *action.Ctx) bool {
	m := (*Mind)(h)
	for id, u := range m.Agent.Users {
		for _, p := range u.DuePromises(cx.Now) {
			p.Fulfilled = true
			text := fmt.Sprintf("Hey %s, I promised I'd get back to you about %s. I haven't forgotten.", id, p.Event)
			m.Actions.InterruptAndStart(cx, action.NewRespond(text))
			slog.Info("promise kept", "user", id, "event", p.Event)
			return true
		}
	}
	return false
}

// autonomyOption is one entry of the self-directed menu.
type autonomyOption struct {
	name  string
	score func(m *Mind, cx *action.Ctx) float64
	run   func(m *Mind, cx *action.Ctx)
}

var autonomyMenu = []autonomyOption{
	{
		name: "eat",
		score: func(m *Mind, cx *action.Ctx) float64 {
			if food, _ := m.nearestObject(foodMatcher); food == "" {
				return 0
			}
			return (1 - m.Agent.Needs.Satiety) * 1.3
		},
		run: func(m *Mind, cx *action.Ctx) {
			food, c := m.nearestObject(foodMatcher)
			m.planTo(c, "a bite to eat", agent.Step{Kind: action.KindEat, Params: map[string]string{"target": food}})
		},
	},
	{
		name: "sleep",
		score: func(m *Mind, cx *action.Ctx) float64 {
			return (1 - m.Agent.Needs.Energy) * 1.25
		},
		run: func(m *Mind, cx *action.Ctx) {
			_, c := m.nearestObject(objectMatcher("bed"))
			m.planTo(c, "get some sleep", agent.Step{Kind: action.KindSleep})
		},
	},
	{
		name: "paint",
		score: func(m *Mind, cx *action.Ctx) float64 {
			if _, ok := m.findObject("easel"); !ok {
				return 0
			}
			return m.Agent.Drives.Creativity * 1.1
		},
		run: func(m *Mind, cx *action.Ctx) {
			c, _ := m.findObject("easel")
			m.planTo(c, "work on a painting", agent.Step{Kind: action.KindPaint})
		},
	},
	{
		name: "read",
		score: func(m *Mind, cx *action.Ctx) float64 {
			if _, ok := m.findObject("bookshelf"); !ok {
				return 0
			}
			return m.Agent.Drives.Understanding * 0.9
		},
		run: func(m *Mind, cx *action.Ctx) {
			c, _ := m.findObject("bookshelf")
			m.planTo(c, "read for a while", agent.Step{Kind: action.KindRead})
		},
	},
	{
		name: "journal",
		score: func(m *Mind, cx *action.Ctx) float64 {
			return m.Agent.Affect.Stress * 1.0
		},
		run: func(m *Mind, cx *action.Ctx) {
			m.Actions.InterruptAndStart(cx, mustAction(action.KindJournal, nil))
		},
	},
	{
		name: "work",
		score: func(m *Mind, cx *action.Ctx) float64 {
			pressure := (60 - m.Agent.Needs.Money) / 60
			if pressure < 0 {
				return 0
			}
			return pressure * 0.9
		},
		run: func(m *Mind, cx *action.Ctx) {
			m.Actions.InterruptAndStart(cx, mustAction(action.KindWork, nil))
		},
	},
	{
		name: "reach_out",
		score: func(m *Mind, cx *action.Ctx) float64 {
			if cx.Now.Sub(m.Agent.LastInteraction) < reachOutCooldown {
				return 0
			}
			if len(m.Agent.Users) == 0 {
				return 0
			}
			return m.Agent.Drives.Connection * 1.0
		},
		run: func(m *Mind, cx *action.Ctx) {
			m.consultAsync("You feel like reaching out to " + m.Agent.LastUserID + " first. Say something genuine.")
		},
	},
	{
		name: "go_outside",
		score: func(m *Mind, cx *action.Ctx) float64 {
			if m.World.TimeOfDay == "Night" {
				return 0
			}
			return m.Agent.Traits.Curiosity * 0.7
		},
		run: func(m *Mind, cx *action.Ctx) {
			if p := m.outsidePlan("get some fresh air"); p != nil {
				m.Agent.Plan = p
			}
		},
	},
}

// CheckAutonomy scores the self-directed menu and acts on the most
// urgent option past the threshold.
func (h *idleHooks) CheckAutonomy(cx *action.Ctx) bool {
	m := (*Mind)(h)
	best := -1
	bestScore := 0.0
	for i, opt := range autonomyMenu {
		s := opt.score(m, cx)
		if s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore < autonomyThreshold {
		return false
	}
	opt := autonomyMenu[best]
	slog.Debug("autonomy", "option", opt.name, "score", bestScore)
	m.think(autonomyThought(opt.name))
	opt.run(m, cx)
	return true
}

// CheckSpontaneity occasionally lets a whim through: a glance out the
// window when it rains, a stray thought about the weather.
func (h *idleHooks) CheckSpontaneity(cx *action.Ctx) bool {
	m := (*Mind)(h)
	if m.rand.Float() >= spontaneityChance {
		return false
	}
	here := cx.Here()
	switch {
	case here != nil && here.Indoor && (m.World.Weather == "Rainy" || m.World.Weather == "Stormy") && here.HasObject("window"):
		m.Actions.InterruptAndStart(cx, action.NewExamine("window"))
		m.think("Listen to that rain.")
	case here != nil && !here.Indoor && m.World.Weather == "Sunny":
		m.think("The light is really good right now.")
	case m.Agent.Affect.Mood.Primary == "melancholic":
		m.think("Some days just feel heavier than others.")
	default:
		m.think("Hm. Where did that thought come from?")
	}
	return true
}

func autonomyThought(option string) string {
	switch option {
	case "eat":
		return "I should eat something before I get shaky."
	case "sleep":
		return "I can barely keep my eyes open."
	case "paint":
		return "My hands are itching to paint."
	case "read":
		return "Maybe a book will settle this restlessness."
	case "journal":
		return "I need to write some of this down."
	case "work":
		return "Rent doesn't pay itself."
	case "reach_out":
		return "It's been quiet. I miss talking to someone."
	case "go_outside":
		return "I've been cooped up long enough."
	default:
		return ""
	}
}

// planTo queues a walk to a coordinate followed by a final step. When
// the destination is unreachable the final step runs in place.
func (m *Mind) planTo(dest world.Coord, goal string, final agent.Step) {
	plan := &agent.Plan{Goal: goal}
	if dirs, err := m.World.FindPath(m.Agent.Coord, dest); err == nil {
		for _, d := range dirs {
			plan.Steps = append(plan.Steps, agent.Step{Kind: action.KindMove, Params: map[string]string{"direction": d}})
		}
	}
	plan.Steps = append(plan.Steps, final)
	m.Agent.Plan = plan
}

// findObject locates an object id somewhere on the map.
func (m *Mind) findObject(id string) (world.Coord, bool) {
	for c, loc := range m.World.Grid {
		if loc.HasObject(id) {
			return c, true
		}
	}
	return world.Coord{}, false
}

func foodMatcher(id string, obj *world.Object) bool {
	return obj.Satiation > 0
}

func objectMatcher(want string) func(string, *world.Object) bool {
	return func(id string, _ *world.Object) bool { return id == want }
}

// nearestObject finds a matching object, preferring the current
// location, then home ground, then anywhere known.
func (m *Mind) nearestObject(match func(string, *world.Object) bool) (string, world.Coord) {
	scan := func(c world.Coord) string {
		loc := m.World.At(c)
		if loc == nil {
			return ""
		}
		for _, id := range loc.Objects {
			obj := m.World.Objects[id]
			if obj == nil {
				continue
			}
			if match(id, obj) {
				return id
			}
			for _, item := range obj.Inventory {
				if held := m.World.Objects[item]; held != nil && match(item, held) {
					return item
				}
			}
		}
		return ""
	}
	if id := scan(m.Agent.Coord); id != "" {
		return id, m.Agent.Coord
	}
	for _, c := range m.World.Home {
		if id := scan(c); id != "" {
			return id, c
		}
	}
	for c := range m.World.Grid {
		if id := scan(c); id != "" {
			return id, c
		}
	}
	return "", world.Coord{}
}

func mustAction(kind string, params map[string]string) action.Action {
	act, err := action.New(kind, params)
	if err != nil {
		return action.NewIdle()
	}
	return act
}
