package agent

// Step is one queued unit of a plan. Kind names the action to run and
// Params carries its arguments.
type Step struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
	Goal   string            `json:"goal,omitempty"`
}

// Plan is an ordered queue of steps working toward a goal. Steps are
// consumed front-first; a failed step abandons the rest.
type Plan struct {
	Goal  string `json:"goal"`
	Steps []Step `json:"steps"`
}

// Empty reports whether no steps remain.
func (p *Plan) Empty() bool { return p == nil || len(p.Steps) == 0 }

// Pop removes and returns the next step. Callers must check Empty first.
func (p *Plan) Pop() Step {
	s := p.Steps[0]
	p.Steps = p.Steps[1:]
	return s
}

// Mission kinds.
const (
	MissionFindPlaces = "find_places"
)

// Mission is a long-horizon objective that survives across plans. A
// find_places mission counts distinct outdoor locations examined until
// Count is reached.
type Mission struct {
	Kind   string   `json:"kind"`
	Goal   string   `json:"goal"`
	Count  int      `json:"count,omitempty"`
	Found  []string `json:"found,omitempty"`
	Target string   `json:"target,omitempty"`
}

// Record notes a discovered place, ignoring duplicates, and reports
// whether the mission just completed.
func (m *Mission) Record(place string) bool {
	for _, f := range m.Found {
		if f == place {
			return m.Complete()
		}
	}
	m.Found = append(m.Found, place)
	return m.Complete()
}

// Complete reports whether the mission's objective has been met.
func (m *Mission) Complete() bool {
	switch m.Kind {
	case MissionFindPlaces:
		return len(m.Found) >= m.Count
	default:
		return false
	}
}
