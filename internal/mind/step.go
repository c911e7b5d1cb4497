package mind

import (
	"log/slog"
	"time"

	"github.com/Cheetoyumyum/Project-Jessica/internal/action"
	"github.com/Cheetoyumyum/Project-Jessica/internal/affect"
)

// Step runs one beat of the simulation. The pipeline order is fixed:
// stimuli, body, affect, environment, action, plan.
func (m *Mind) Step(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.beat++
	cx := m.ctx(now)

	if m.Agent.Dormant(now) {
		m.wasDormant = true
		return
	}
	if m.wasDormant {
		m.wasDormant = false
		m.quotaStrikes = 0
		m.think("That fog has lifted. I'm back.")
		slog.Info("dormancy ended", "beat", m.beat)
	}

	m.drainStimuli(cx)

	m.Agent.SomaticUpdate(now)
	safe := m.World.IsHome(m.Agent.Coord)
	affect.Update(&m.Agent.Affect, m.Agent.Traits, m.Agent.AffectInputs(now, safe))

	for _, line := range m.World.UpdateEnvironment(now, uint64(m.beat)) {
		m.emit("ambient", line)
	}

	m.Actions.Update(cx)
	m.runPlan(cx)

	if m.Save != nil && m.beat%saveEvery == 0 {
		fresh := m.pending
		m.pending = nil
		if err := m.Save(m.beat, fresh); err != nil {
			m.pending = append(fresh, m.pending...)
			slog.Error("periodic save failed", "beat", m.beat, "error", err)
		}
	}
}

// ctx builds the beat frame handed into action callbacks.
func (m *Mind) ctx(now time.Time) *action.Ctx {
	return &action.Ctx{
		Agent: m.Agent,
		World: m.World,
		Beat:  m.beat,
		Now:   now,
		Rand:  m.rand,
		Think: m.think,
		Emit:  m.emit,
		Idle:  (*idleHooks)(m),
	}
}

// drainStimuli handles every user message that arrived since the last
// beat.
func (m *Mind) drainStimuli(cx *action.Ctx) {
	for {
		select {
		case s := <-m.stimuli:
			m.handleStimulus(cx, s)
		default:
			return
		}
	}
}

func (m *Mind) handleStimulus(cx *action.Ctx, s Stimulus) {
	m.Agent.RecordChat(s.UserID, s.UserID, s.Text, s.At)
	m.emit("heard", s.UserID+": "+s.Text)

	if m.Agent.Sleeping {
		// The phone buzzing does not wake her.
		slog.Debug("stimulus during sleep", "user", s.UserID)
		return
	}
	if m.Actions.IsBusy() {
		m.think("Someone's messaging me. I'll get to it in a second.")
		return
	}
	m.consultAsync(s.Text)
}
