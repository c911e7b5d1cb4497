// Package mind is the conductor: the beat scheduler, the per-beat
// pipeline over body, affect, world and action, the plan executor, and
// the asynchronous bridge to the cognition oracle.
package mind

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/Cheetoyumyum/Project-Jessica/internal/action"
	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/entropy"
	"github.com/Cheetoyumyum/Project-Jessica/internal/oracle"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

const (
	// maxEvents bounds the in-memory narration ring.
	maxEvents = 256
	// stimulusBuffer bounds queued user messages between beats.
	stimulusBuffer = 16
	// saveEvery is the beat period of the persistence callback.
	saveEvery = 60
)

// Event is one line of narration, monologue, or speech.
type Event struct {
	ID   uuid.UUID `json:"id"`
	Beat int64     `json:"beat"`
	At   time.Time `json:"at"`
	Kind string    `json:"kind"`
	Text string    `json:"text"`
}

// Stimulus is an incoming user message awaiting the next beat.
type Stimulus struct {
	ID     uuid.UUID
	UserID string
	Text   string
	At     time.Time
}

// Mind owns the resident's live state. All beat work happens under one
// coarse mutex; only oracle consultations run outside it.
type Mind struct {
	mu sync.Mutex

	Agent   *agent.Agent
	World   *world.World
	Actions *action.Manager

	// Oracle must be nil when cognition is disabled, never a typed nil.
	Oracle oracle.Cognition

	// Save, when set, is called every saveEvery beats under the mind
	// lock with the current beat and the events emitted since the last
	// successful save. It should skip rather than block if a save is
	// already in flight.
	Save func(beat int64, fresh []Event) error

	rand *entropy.Source
	// sem admits at most one in-flight oracle consultation. A beat
	// that cannot acquire it drops the consultation rather than queue.
	sem *semaphore.Weighted

	beat         int64
	quotaStrikes int
	wasDormant   bool

	stimuli chan Stimulus
	events  []Event
	// pending holds events not yet handed to Save.
	pending []Event
}

// New wires a mind over an agent and world.
func New(a *agent.Agent, w *world.World, cog oracle.Cognition, rnd *entropy.Source) *Mind {
	if rnd == nil {
		rnd = entropy.New()
	}
	m := &Mind{
		Agent:   a,
		World:   w,
		Actions: action.NewManager(),
		Oracle:  cog,
		rand:    rnd,
		sem:     semaphore.NewWeighted(1),
		stimuli: make(chan Stimulus, stimulusBuffer),
	}
	return m
}

// Beat returns the current beat counter.
func (m *Mind) Beat() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.beat
}

// Say delivers a user message. It never blocks a caller: when the
// between-beat buffer is full the message is rejected.
func (m *Mind) Say(userID, text string) error {
	s := Stimulus{ID: uuid.New(), UserID: userID, Text: text, At: time.Now()}
	select {
	case m.stimuli <- s:
		return nil
	default:
		return fmt.Errorf("stimulus buffer full")
	}
}

// emit appends a narration event. Callers hold the mind lock.
func (m *Mind) emit(kind, text string) {
	ev := Event{ID: uuid.New(), Beat: m.beat, At: time.Now(), Kind: kind, Text: text}
	m.events = append(m.events, ev)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	m.pending = append(m.pending, ev)
	if len(m.pending) > maxEvents {
		m.pending = m.pending[len(m.pending)-maxEvents:]
	}
}

// think records a line of inner monologue.
func (m *Mind) think(text string) {
	m.emit("think", text)
}

// DrainEvents returns the events emitted since the last drain and
// clears the pending set. Used by the final save on shutdown.
func (m *Mind) DrainEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending
	m.pending = nil
	return out
}

// PreloadEvents seeds the in-memory narration ring, typically from the
// persisted log on resume. Preloaded events are not re-persisted.
func (m *Mind) PreloadEvents(evs []Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(evs) > maxEvents {
		evs = evs[len(evs)-maxEvents:]
	}
	m.events = append([]Event(nil), evs...)
	for i := range m.events {
		if m.events[i].ID == uuid.Nil {
			m.events[i].ID = uuid.New()
		}
	}
}

// RecentEvents returns up to n most recent events, oldest first.
func (m *Mind) RecentEvents(n int) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n <= 0 || n > len(m.events) {
		n = len(m.events)
	}
	out := make([]Event, n)
	copy(out, m.events[len(m.events)-n:])
	return out
}
