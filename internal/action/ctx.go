package action

import (
	"time"

	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/entropy"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// IdleHooks is what an idle beat may poll when the resident has nothing
// queued. Each check reports whether it started something.
type IdleHooks interface {
	CheckSchedule(cx *Ctx) bool
	CheckAutonomy(cx *Ctx) bool
	CheckSpontaneity(cx *Ctx) bool
}

// Ctx is the per-beat frame handed to every action callback. Actions
// mutate the agent and world through it and report outward through the
// Think and Emit sinks; both sinks may be nil.
type Ctx struct {
	Agent *agent.Agent
	World *world.World
	Beat  int64
	Now   time.Time
	Rand  *entropy.Source

	// Think records a line of inner monologue.
	Think func(text string)
	// Emit records a narration event of the given kind.
	Emit func(kind, text string)

	Idle IdleHooks
}

func (cx *Ctx) think(text string) {
	if cx.Think != nil && text != "" {
		cx.Think(text)
	}
}

func (cx *Ctx) emit(kind, text string) {
	if cx.Emit != nil && text != "" {
		cx.Emit(kind, text)
	}
}

// Here returns the location the agent currently occupies.
func (cx *Ctx) Here() *world.Location {
	return cx.World.At(cx.Agent.Coord)
}
