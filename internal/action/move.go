package action

import (
	"fmt"
)

// moveAction takes one step in a direction. Walking toward unmapped
// space may grow the world, which makes the step slow but still a
// single action.
type moveAction struct {
	base
	direction string
}

// NewMove returns an action stepping once in the given direction.
func NewMove(direction string) Action {
	return &moveAction{
		base:      base{kind: KindMove, duration: 1, interruptible: true},
		direction: direction,
	}
}

func (a *moveAction) Update(cx *Ctx) {
	a.elapsed++
	if a.finished {
		return
	}
	res := cx.World.Move(cx.Agent.Coord, a.direction, cx.Agent.Affect.Mood.Primary)
	if !res.Moved {
		cx.think(fmt.Sprintf("I can't go %s from here.", a.direction))
		a.finish(false)
		return
	}
	cx.Agent.Coord = res.Dest
	loc := cx.World.At(res.Dest)
	if res.Generated {
		cx.emit("move", fmt.Sprintf("She walks %s and finds %s. %s", a.direction, loc.Name, loc.Description))
	} else {
		cx.emit("move", fmt.Sprintf("She heads %s to %s.", a.direction, loc.Name))
	}
	a.finish(true)
}
