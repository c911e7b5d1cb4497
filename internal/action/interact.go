package action

import (
	"fmt"

	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// interactAction manipulates an object here: open, unlock, take, or a
// generic use. The manipulation happens on the beat it starts.
type interactAction struct {
	base
	target string
	verb   string
}

// NewInteract returns an action applying verb to the named object.
func NewInteract(target, verb string) Action {
	if verb == "" {
		verb = "use"
	}
	return &interactAction{
		base:   base{kind: KindInteract, interruptible: true},
		target: target,
		verb:   verb,
	}
}

func (a *interactAction) Start(cx *Ctx) {
	here := cx.Here()
	if here == nil || !here.HasObject(a.target) {
		cx.think(fmt.Sprintf("There is no %s here to %s.", world.DisplayName(a.target), a.verb))
		a.finish(false)
		return
	}
	obj := cx.World.Objects[a.target]
	if obj == nil {
		a.finish(false)
		return
	}
	name := world.DisplayName(a.target)

	switch a.verb {
	case "open", "unlock":
		if obj.Locked {
			obj.Locked = false
			obj.State = "unlocked"
			cx.emit("interact", fmt.Sprintf("She unlocks the %s.", name))
		} else {
			obj.State = "open"
			cx.emit("interact", fmt.Sprintf("She opens the %s.", name))
		}
		cx.World.Dirty = true
		a.finish(true)

	case "take":
		if obj.Locked {
			cx.think(fmt.Sprintf("The %s is locked.", name))
			a.finish(false)
			return
		}
		if !cx.Agent.Take(a.target) {
			cx.think("My hands are full.")
			a.finish(false)
			return
		}
		here.RemoveObject(a.target)
		cx.World.Dirty = true
		cx.emit("interact", fmt.Sprintf("She picks up the %s.", name))
		a.finish(true)

	default:
		if !obj.Interactive {
			cx.think(fmt.Sprintf("The %s doesn't do anything.", name))
			a.finish(false)
			return
		}
		obj.State = "in use"
		cx.World.Dirty = true
		cx.emit("interact", fmt.Sprintf("She uses the %s.", name))
		a.finish(true)
	}
}

func (a *interactAction) Update(cx *Ctx) {}
