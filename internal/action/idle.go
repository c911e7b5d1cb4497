package action

// idleAction is the floor state. It never finishes: each beat it
// resets its own clock, and when nothing is queued it gives the mind's
// idle hooks a chance to start something.
type idleAction struct {
	base
}

// NewIdle returns a fresh idle action.
func NewIdle() Action {
	return &idleAction{base: base{kind: KindIdle, duration: 1, interruptible: true}}
}

func (a *idleAction) Update(cx *Ctx) {
	a.elapsed = 0

	// Deliberation only happens with a clear slate: an active plan or
	// mission means the executor already knows what comes next.
	if cx.Agent.Plan != nil && !cx.Agent.Plan.Empty() {
		return
	}
	if cx.Agent.Mission != nil {
		return
	}
	if cx.Idle == nil {
		return
	}
	if cx.Idle.CheckSchedule(cx) {
		return
	}
	if cx.Idle.CheckAutonomy(cx) {
		return
	}
	cx.Idle.CheckSpontaneity(cx)
}
