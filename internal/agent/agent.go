// Package agent provides the single resident's owned state: bodily
// needs, core drives, skills, possessions, plan and mission, and the
// social model of the people she talks to.
package agent

import (
	"time"

	"github.com/Cheetoyumyum/Project-Jessica/internal/affect"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// Needs are the bodily scalars. Energy and Satiety live in [0,1] where
// 1 is fully met; Money is an unbounded resource counter.
type Needs struct {
	Energy  float64 `json:"energy"`
	Satiety float64 `json:"satiety"`
	Money   float64 `json:"money"`
}

// Drives are the long-horizon motivational urgencies, each in [0,1]
// where 1 is maximally urgent.
type Drives struct {
	Understanding float64 `json:"understanding"`
	Connection    float64 `json:"connection"`
	Creativity    float64 `json:"creativity"`
	Safety        float64 `json:"safety"`
}

// Mean returns the average urgency across all drives.
func (d Drives) Mean() float64 {
	return (d.Understanding + d.Connection + d.Creativity + d.Safety) / 4.0
}

// Skills grow from practice during timed actions.
type Skills struct {
	Painting  float64 `json:"painting"`
	WorkEthic float64 `json:"work_ethic"`
	Research  float64 `json:"research"`
}

// Agent is the complete resident context, passed by reference into each
// subsystem's update rather than accessed as a global.
type Agent struct {
	Name string `json:"name"`

	Needs  Needs  `json:"needs"`
	Drives Drives `json:"drives"`
	Skills Skills `json:"skills"`

	Affect affect.State  `json:"affect"`
	Traits affect.Traits `json:"traits"`

	Coord world.Coord `json:"coord"`

	// Possessions are held items; HandsFree gates most manual actions.
	Possessions []string `json:"possessions"`
	HandsFree   int      `json:"hands_free"`

	Plan    *Plan    `json:"plan,omitempty"`
	Mission *Mission `json:"mission,omitempty"`

	Users      map[string]*UserProfile `json:"users"`
	LastUserID string                  `json:"last_user_id"`

	LastInteraction time.Time `json:"last_interaction"`
	DormantUntil    time.Time `json:"dormant_until"`
	Sleeping        bool      `json:"sleeping"`

	// PsychState is the one-word physical/emotional read-out shown in
	// status surfaces ("Famished", "Exhausted", or the primary mood).
	PsychState string `json:"psych_state"`
}

// New creates a fresh agent at the default starting state.
func New(name string) *Agent {
	return &Agent{
		Name:   name,
		Needs:  Needs{Energy: 1.0, Satiety: 1.0},
		Drives: Drives{Understanding: 0.8, Connection: 0.6, Creativity: 0.4, Safety: 0.7},
		Affect: affect.NewState(),
		Traits: affect.DefaultTraits(),
		Coord:  world.Coord{},

		HandsFree:       2,
		Users:           make(map[string]*UserProfile),
		LastUserID:      "system",
		LastInteraction: time.Now(),
		PsychState:      "Stable",
	}
}

// Dormant reports whether the agent is inside a dormancy window.
func (a *Agent) Dormant(now time.Time) bool {
	return now.Before(a.DormantUntil)
}

// Resting reports whether the agent is asleep or dormant; resting
// changes decay rates across the simulation.
func (a *Agent) Resting(now time.Time) bool {
	return a.Sleeping || a.Dormant(now)
}

// Holding reports whether an item is in the agent's possession.
func (a *Agent) Holding(item string) bool {
	for _, p := range a.Possessions {
		if p == item {
			return true
		}
	}
	return false
}

// Take adds an item to possessions and occupies a hand. Reports false
// when no hand is free.
func (a *Agent) Take(item string) bool {
	if a.HandsFree < 1 {
		return false
	}
	a.Possessions = append(a.Possessions, item)
	a.HandsFree--
	return true
}

// Drop removes an item from possessions and frees a hand. Reports
// whether the item was held.
func (a *Agent) Drop(item string) bool {
	for i, p := range a.Possessions {
		if p == item {
			a.Possessions = append(a.Possessions[:i], a.Possessions[i+1:]...)
			a.HandsFree++
			return true
		}
	}
	return false
}

// Somatic decay rates, per beat.
const (
	energyDecay  = 0.00133
	satietyDecay = 0.00067
	sleepRecover = 0.0167
)

// SomaticUpdate applies one beat of bodily decay and drive creep, then
// refreshes the psychological read-out.
func (a *Agent) SomaticUpdate(now time.Time) {
	if a.Sleeping {
		a.Needs.Energy = min(1.0, a.Needs.Energy+sleepRecover)
		a.Needs.Satiety = max(0.0, a.Needs.Satiety-satietyDecay/2.0)
	} else {
		decay := energyDecay
		if a.Affect.Stress > 0.7 {
			decay *= 1.5
		}
		a.Needs.Energy = max(0.0, a.Needs.Energy-decay)
		a.Needs.Satiety = max(0.0, a.Needs.Satiety-satietyDecay)

		a.Drives.Understanding = min(1.0, a.Drives.Understanding+0.00033)
		a.Drives.Connection = min(1.0, a.Drives.Connection+0.00067)
		a.Drives.Creativity = min(1.0, a.Drives.Creativity+0.001)
	}

	switch {
	case a.Needs.Satiety < 0.2:
		a.PsychState = "Famished"
	case a.Needs.Energy < 0.2:
		a.PsychState = "Exhausted"
	default:
		a.PsychState = titleCase(a.Affect.Mood.Primary)
	}
}

// AffectInputs samples the agent into the affect engine's input frame.
func (a *Agent) AffectInputs(now time.Time, safeLocation bool) affect.Inputs {
	return affect.Inputs{
		Energy:               a.Needs.Energy,
		Satiety:              a.Needs.Satiety,
		MeanDriveUrgency:     a.Drives.Mean(),
		UnderstandingUrgency: a.Drives.Understanding,
		CreativityUrgency:    a.Drives.Creativity,
		SinceInteraction:     now.Sub(a.LastInteraction),
		SafeLocation:         safeLocation,
		Resting:              a.Resting(now),
	}
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
