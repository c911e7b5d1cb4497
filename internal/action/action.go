// Package action implements the resident's activity lifecycle: a small
// state machine per action, a manager that owns the current action, and
// the catalog of concrete activities.
package action

// Outcome records how an action ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// Action kinds.
const (
	KindIdle     = "idle"
	KindRespond  = "respond"
	KindExamine  = "examine"
	KindInteract = "interact"
	KindEat      = "eat"
	KindRead     = "read"
	KindJournal  = "journal"
	KindPaint    = "paint"
	KindWork     = "work"
	KindSleep    = "sleep"
	KindResearch = "research"
	KindMove     = "move"
	KindSearch   = "search"
)

// Action is one unit of activity. Implementations live in this package;
// the unexported deadline method keeps the set closed.
type Action interface {
	Kind() string
	Interruptible() bool
	Start(cx *Ctx)
	Update(cx *Ctx)
	OnInterrupt(cx *Ctx)
	OnResume(cx *Ctx)
	Finished() bool
	Outcome() Outcome

	deadline()
}

// base carries the shared lifecycle state. Duration is in beats; zero
// means open-ended.
type base struct {
	kind          string
	duration      int
	elapsed       int
	finished      bool
	outcome       Outcome
	interruptible bool
}

func (b *base) Kind() string        { return b.kind }
func (b *base) Interruptible() bool { return b.interruptible }
func (b *base) Finished() bool      { return b.finished }
func (b *base) Outcome() Outcome    { return b.outcome }

func (b *base) Start(cx *Ctx)       {}
func (b *base) OnInterrupt(cx *Ctx) {}
func (b *base) OnResume(cx *Ctx)    {}

// finish settles the outcome exactly once; later calls are ignored.
func (b *base) finish(success bool) {
	if b.finished {
		return
	}
	b.finished = true
	if success {
		b.outcome = OutcomeSuccess
	} else {
		b.outcome = OutcomeFailure
	}
}

// deadline fails any action still running past its duration. The
// manager calls it after each update so a stalled action cannot occupy
// the resident forever.
func (b *base) deadline() {
	if b.duration > 0 && b.elapsed >= b.duration {
		b.finish(false)
	}
}
