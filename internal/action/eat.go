package action

import (
	"fmt"

	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// eatAction consumes a food object, either held or present here.
type eatAction struct {
	base
	target string
}

// NewEat returns an action that eats the named object.
func NewEat(target string) Action {
	return &eatAction{
		base:   base{kind: KindEat, duration: 2, interruptible: true},
		target: target,
	}
}

func (a *eatAction) Update(cx *Ctx) {
	a.elapsed++
	if a.finished || a.elapsed < a.duration {
		return
	}
	obj := cx.World.Objects[a.target]
	if obj == nil || obj.Satiation <= 0 {
		cx.think(fmt.Sprintf("I can't eat %s.", world.DisplayName(a.target)))
		a.finish(false)
		return
	}
	here := cx.Here()
	held := cx.Agent.Holding(a.target)
	var container *world.Object
	if !held && (here == nil || !here.HasObject(a.target)) {
		if here != nil {
			container = cx.World.ContainerOf(here, a.target)
		}
		if container == nil {
			cx.think(fmt.Sprintf("There is no %s here.", world.DisplayName(a.target)))
			a.finish(false)
			return
		}
	}

	cx.Agent.Needs.Satiety = min(1.0, cx.Agent.Needs.Satiety+obj.Satiation)
	cx.Agent.Affect.Reward = min(1.0, cx.Agent.Affect.Reward+0.05)
	switch {
	case held:
		cx.Agent.Drop(a.target)
	case container != nil:
		container.RemoveItem(a.target)
	default:
		here.RemoveObject(a.target)
	}
	delete(cx.World.Objects, a.target)
	cx.World.Dirty = true
	cx.emit("eat", fmt.Sprintf("She eats the %s.", world.DisplayName(a.target)))
	a.finish(true)
}
