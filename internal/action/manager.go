package action

import "log/slog"

// Manager owns the current action and the record of how the last one
// ended. The resident always has exactly one action; idle is the floor
// state installed whenever anything else finishes.
type Manager struct {
	Current Action

	// LastKind and LastOutcome describe the most recently finished
	// non-idle action. The plan executor reads and consumes them.
	LastKind    string
	LastOutcome Outcome
}

// NewManager returns a manager already at the idle floor state.
func NewManager() *Manager {
	return &Manager{Current: NewIdle()}
}

// IsBusy reports whether the current action must not be displaced. Idle
// never counts as busy; anything interruptible yields.
func (m *Manager) IsBusy() bool {
	return m.Current != nil &&
		m.Current.Kind() != KindIdle &&
		!m.Current.Interruptible() &&
		!m.Current.Finished()
}

// Start replaces the current action outright. Displacing an unfinished
// action this way is a programming smell, so it is logged; the previous
// outcome record is cleared because a new attempt has begun.
func (m *Manager) Start(cx *Ctx, act Action) {
	if act == nil {
		act = NewIdle()
	}
	if m.Current != nil && !m.Current.Finished() && m.Current.Kind() != KindIdle {
		slog.Warn("action displaced without interrupt",
			"old", m.Current.Kind(), "new", act.Kind())
	}
	m.LastKind = ""
	m.LastOutcome = OutcomeNone
	m.Current = act
	act.Start(cx)
	m.settle(cx)
}

// InterruptAndStart is the polite replacement path: the current action
// gets its interrupt hook if it allows interruption, and the previous
// outcome record survives so the plan executor still sees it.
func (m *Manager) InterruptAndStart(cx *Ctx, act Action) {
	if act == nil {
		act = NewIdle()
	}
	if m.Current != nil && !m.Current.Finished() && m.Current.Interruptible() {
		m.Current.OnInterrupt(cx)
	}
	m.Current = act
	act.Start(cx)
	m.settle(cx)
}

// Update advances the current action one beat. A finished action has
// its outcome recorded and is replaced by a fresh idle in the same
// beat.
func (m *Manager) Update(cx *Ctx) {
	if m.Current == nil {
		m.Current = NewIdle()
		m.Current.Start(cx)
	}
	m.Current.Update(cx)
	m.Current.deadline()
	m.settle(cx)
}

// settle records a finished action and restores the idle floor.
// Instant actions resolve inside Start, so both entry points call it
// as well as Update.
func (m *Manager) settle(cx *Ctx) {
	if m.Current == nil || !m.Current.Finished() {
		return
	}
	m.LastKind = m.Current.Kind()
	m.LastOutcome = m.Current.Outcome()
	slog.Debug("action finished", "kind", m.LastKind, "outcome", m.LastOutcome.String())
	idle := NewIdle()
	m.Current = idle
	idle.Start(cx)
}

// ConsumeOutcome returns and clears the last finished action's record.
func (m *Manager) ConsumeOutcome() (string, Outcome) {
	kind, out := m.LastKind, m.LastOutcome
	m.LastKind = ""
	m.LastOutcome = OutcomeNone
	return kind, out
}
