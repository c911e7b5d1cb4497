package action

import (
	"fmt"
	"strings"

	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// examineAction is a close look at an object here, or at the location
// itself when no target is given. Examining outdoors is also how a
// scouting mission logs the places it finds.
type examineAction struct {
	base
	target string
}

// NewExamine returns an action that studies target, or the current
// location when target is empty. Looking at something is instant; the
// observation lands on the same beat the glance does.
func NewExamine(target string) Action {
	return &examineAction{
		base:   base{kind: KindExamine, interruptible: true},
		target: strings.TrimSpace(target),
	}
}

func (a *examineAction) Start(cx *Ctx) {
	here := cx.Here()
	if here == nil {
		a.finish(false)
		return
	}

	if a.target != "" && !strings.EqualFold(a.target, here.Name) {
		obj := cx.World.Objects[a.target]
		if obj == nil || !here.HasObject(a.target) {
			cx.think(fmt.Sprintf("I don't see any %s here.", world.DisplayName(a.target)))
			a.finish(false)
			return
		}
		var text string
		switch {
		case obj.View != "":
			text = fmt.Sprintf("Through the %s: %s.", world.DisplayName(a.target), obj.View)
		case obj.Description != "":
			text = obj.Description
		default:
			text = fmt.Sprintf("It's a %s. Nothing remarkable.", world.DisplayName(a.target))
		}
		if obj.State != "" {
			text = fmt.Sprintf("%s It is %s.", text, obj.State)
		}
		cx.emit("examine", text)
	} else {
		cx.emit("examine", here.Description)
	}

	cx.Agent.Drives.Understanding = max(0, cx.Agent.Drives.Understanding-0.02)

	if !here.Indoor && cx.Agent.Mission != nil && cx.Agent.Mission.Kind == agent.MissionFindPlaces {
		cx.Agent.Mission.Record(here.Name)
		cx.think(fmt.Sprintf("Noted: %s. That could work.", here.Name))
	}
	a.finish(true)
}

func (a *examineAction) Update(cx *Ctx) {}
