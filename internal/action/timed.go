package action

import (
	"fmt"
)

// timedSpec is a table-driven definition of the longer solitary
// activities: a precondition checked at start, an effect applied on
// successful completion, and a pool of ambient lines that may surface
// on any beat in between.
type timedSpec struct {
	kind     string
	duration int
	// begin reports a human-readable reason the activity cannot start.
	begin   func(cx *Ctx, params map[string]string) string
	done    func(cx *Ctx, params map[string]string)
	onGo    string // emitted when the activity begins
	ambient []string
}

// ambientChance is the per-beat odds of an ambient line while a timed
// activity runs.
const ambientChance = 0.2

// needsObject returns a begin check requiring one of the listed ids to
// be present here or in hand.
func needsObject(ids ...string) func(cx *Ctx, _ map[string]string) string {
	return func(cx *Ctx, _ map[string]string) string {
		here := cx.Here()
		for _, id := range ids {
			if cx.Agent.Holding(id) || (here != nil && here.HasObject(id)) {
				return ""
			}
		}
		return fmt.Sprintf("nothing to %s with here", ids[0])
	}
}

var timedSpecs = map[string]timedSpec{
	KindRead: {
		kind:     KindRead,
		duration: 5,
		begin:    needsObject("bookshelf", "book"),
		onGo:     "She settles in with a book.",
		ambient: []string{
			"She turns a page.",
			"She shifts to catch better light.",
			"She rereads a paragraph, lips moving slightly.",
		},
		done: func(cx *Ctx, _ map[string]string) {
			cx.Agent.Drives.Understanding *= 0.6
			cx.Agent.Skills.Research = min(1.0, cx.Agent.Skills.Research+0.01)
			cx.Agent.Affect.Reward = min(1.0, cx.Agent.Affect.Reward+0.1)
			cx.think("That chapter gave me a lot to sit with.")
		},
	},
	KindJournal: {
		kind:     KindJournal,
		duration: 3,
		onGo:     "She opens her journal and starts writing.",
		ambient: []string{
			"Her pen scratches steadily across the page.",
			"She pauses, hunting for the right word.",
		},
		done: func(cx *Ctx, _ map[string]string) {
			cx.Agent.Affect.Stress *= 0.8
			cx.Agent.Drives.Understanding *= 0.7
			cx.think("Getting it on paper always helps.")
		},
	},
	KindPaint: {
		kind:     KindPaint,
		duration: 6,
		begin:    needsObject("easel"),
		onGo:     "She sets a fresh canvas on the easel.",
		ambient: []string{
			"She mixes a new shade on the palette.",
			"She steps back, frowns at the canvas, and keeps going.",
			"A brush taps against the water jar.",
		},
		done: func(cx *Ctx, _ map[string]string) {
			cx.Agent.Skills.Painting = min(1.0, cx.Agent.Skills.Painting+0.05)
			cx.Agent.Drives.Creativity = 0
			cx.Agent.Affect.Reward = min(1.0, cx.Agent.Affect.Reward+0.4)
			cx.emit("paint", "She steps back from a finished painting.")
		},
	},
	KindWork: {
		kind:     KindWork,
		duration: 10,
		begin: func(cx *Ctx, _ map[string]string) string {
			if cx.Agent.Needs.Energy < 0.15 {
				return "too exhausted to work"
			}
			return ""
		},
		onGo: "She logs in and gets to work.",
		ambient: []string{
			"Keys clatter for a long stretch.",
			"She sighs at something in her inbox.",
		},
		done: func(cx *Ctx, _ map[string]string) {
			earned := 5.0 + cx.Rand.Float()*5.0 + cx.Agent.Skills.WorkEthic*15.0
			cx.Agent.Needs.Money += earned
			cx.Agent.Needs.Energy = max(0, cx.Agent.Needs.Energy-0.2)
			cx.Agent.Skills.WorkEthic = min(1.0, cx.Agent.Skills.WorkEthic+0.01)
			cx.Agent.Drives.Creativity *= 0.5
			cx.emit("work", fmt.Sprintf("A work session wraps up; %.0f earned.", earned))
		},
	},
	KindResearch: {
		kind:     KindResearch,
		duration: 5,
		onGo:     "She starts digging into something.",
		ambient: []string{
			"She falls down a small rabbit hole.",
			"She bookmarks something for later.",
		},
		done: func(cx *Ctx, params map[string]string) {
			cx.Agent.Drives.Understanding *= 0.5
			cx.Agent.Skills.Research = min(1.0, cx.Agent.Skills.Research+0.02)
			if topic := params["topic"]; topic != "" {
				cx.think(fmt.Sprintf("I understand %s a little better now.", topic))
			}
		},
	},
}

type timedAction struct {
	base
	spec   timedSpec
	params map[string]string
}

// newTimed builds an action from the timed catalog.
func newTimed(kind string, params map[string]string) Action {
	spec := timedSpecs[kind]
	return &timedAction{
		base:   base{kind: kind, duration: spec.duration, interruptible: true},
		spec:   spec,
		params: params,
	}
}

func (a *timedAction) Start(cx *Ctx) {
	if a.spec.begin != nil {
		if reason := a.spec.begin(cx, a.params); reason != "" {
			cx.think("No good: " + reason + ".")
			a.finish(false)
			return
		}
	}
	cx.emit(a.kind, a.spec.onGo)
}

func (a *timedAction) Update(cx *Ctx) {
	a.elapsed++
	if a.finished {
		return
	}
	if len(a.spec.ambient) > 0 && cx.Rand != nil && cx.Rand.Float() < ambientChance {
		cx.emit("ambient", cx.Rand.Pick(a.spec.ambient))
	}
	if a.elapsed < a.duration {
		return
	}
	if a.spec.done != nil {
		a.spec.done(cx, a.params)
	}
	a.finish(true)
}
