package mind

import (
	"time"

	"github.com/Cheetoyumyum/Project-Jessica/internal/affect"
	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// Status is a consistent read-only view of the resident for outside
// observers.
type Status struct {
	Name            string        `json:"name"`
	Beat            int64         `json:"beat"`
	Location        string        `json:"location"`
	Coord           world.Coord   `json:"coord"`
	Action          string        `json:"action"`
	PsychState      string        `json:"psych_state"`
	Mood            string        `json:"mood"`
	Needs           agent.Needs   `json:"needs"`
	Drives          agent.Drives  `json:"drives"`
	Skills          agent.Skills  `json:"skills"`
	TimeOfDay       string        `json:"time_of_day"`
	Weather         string        `json:"weather"`
	Sleeping        bool          `json:"sleeping"`
	Dormant         bool          `json:"dormant"`
	Goal            string        `json:"goal,omitempty"`
	LastInteraction time.Time     `json:"last_interaction"`
	Affect          affect.State  `json:"affect"`
}

// CurrentStatus assembles the observer view under the mind lock.
func (m *Mind) CurrentStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{
		Name:            m.Agent.Name,
		Beat:            m.beat,
		Coord:           m.Agent.Coord,
		Action:          m.Actions.Current.Kind(),
		PsychState:      m.Agent.PsychState,
		Mood:            m.Agent.Affect.Mood.Primary,
		Needs:           m.Agent.Needs,
		Drives:          m.Agent.Drives,
		Skills:          m.Agent.Skills,
		TimeOfDay:       m.World.TimeOfDay,
		Weather:         m.World.Weather,
		Sleeping:        m.Agent.Sleeping,
		Dormant:         m.Agent.Dormant(time.Now()),
		LastInteraction: m.Agent.LastInteraction,
		Affect:          m.Agent.Affect,
	}
	if loc := m.World.At(m.Agent.Coord); loc != nil {
		st.Location = loc.Name
	}
	if m.Agent.Plan != nil {
		st.Goal = m.Agent.Plan.Goal
	} else if m.Agent.Mission != nil {
		st.Goal = m.Agent.Mission.Goal
	}
	return st
}

// MapView is a serializable rendering of the discovered world.
type MapView struct {
	Locations []MapLocation `json:"locations"`
	TimeOfDay string        `json:"time_of_day"`
	Weather   string        `json:"weather"`
}

// MapLocation is one discovered location with its exits.
type MapLocation struct {
	Coord   world.Coord `json:"coord"`
	Name    string      `json:"name"`
	Indoor  bool        `json:"indoor"`
	Objects []string    `json:"objects,omitempty"`
	Exits   []string    `json:"exits,omitempty"`
	Here    bool        `json:"here,omitempty"`
}

// WorldView renders the discovered map under the mind lock.
func (m *Mind) WorldView() MapView {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := MapView{TimeOfDay: m.World.TimeOfDay, Weather: m.World.Weather}
	for c, loc := range m.World.Grid {
		view.Locations = append(view.Locations, MapLocation{
			Coord:   c,
			Name:    loc.Name,
			Indoor:  loc.Indoor,
			Objects: append([]string(nil), loc.Objects...),
			Exits:   loc.Exits(),
			Here:    c == m.Agent.Coord,
		})
	}
	return view
}
