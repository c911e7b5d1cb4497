package action

import "fmt"

// New builds an action by kind with its parameters. Unknown kinds are
// an error; callers degrade to idle.
func New(kind string, params map[string]string) (Action, error) {
	if params == nil {
		params = map[string]string{}
	}
	switch kind {
	case KindIdle:
		return NewIdle(), nil
	case KindRespond:
		return NewRespond(params["text"]), nil
	case KindExamine:
		return NewExamine(params["target"]), nil
	case KindInteract:
		return NewInteract(params["target"], params["verb"]), nil
	case KindEat:
		return NewEat(params["target"]), nil
	case KindRead, KindJournal, KindPaint, KindWork, KindResearch:
		return newTimed(kind, params), nil
	case KindSleep:
		return NewSleep(), nil
	case KindMove:
		return NewMove(params["direction"]), nil
	case KindSearch:
		return NewSearch(params["target"]), nil
	default:
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
}
