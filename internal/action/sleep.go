package action

// sleepAction is a full night's sleep. It cannot be interrupted; a
// fully rested body wakes early.
type sleepAction struct {
	base
}

// sleepBeats is a full night at one beat per second.
const sleepBeats = 480

// stirChance is the per-beat odds of a small stir while she sleeps.
const stirChance = 0.03

// NewSleep returns a sleep action.
func NewSleep() Action {
	return &sleepAction{base: base{kind: KindSleep, duration: sleepBeats}}
}

func (a *sleepAction) Start(cx *Ctx) {
	cx.Agent.Sleeping = true
	cx.emit("sleep", "She drifts off to sleep.")
}

func (a *sleepAction) Update(cx *Ctx) {
	a.elapsed++
	if a.finished {
		return
	}
	if cx.Rand != nil && cx.Rand.Float() < stirChance {
		cx.emit("ambient", "She stirs in her sleep.")
	}
	rested := cx.Agent.Needs.Energy >= 0.99 && a.elapsed > 60
	if a.elapsed >= a.duration || rested {
		cx.Agent.Sleeping = false
		cx.emit("sleep", "She wakes up.")
		cx.think("Morning already. Let's see what today looks like.")
		a.finish(true)
	}
}
