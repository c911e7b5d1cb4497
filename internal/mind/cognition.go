package mind

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Cheetoyumyum/Project-Jessica/internal/action"
	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/oracle"
)

const (
	// consultTimeout bounds one oracle round trip.
	consultTimeout = 60 * time.Second
	// quotaStrikeLimit is how many consecutive quota errors trigger
	// dormancy.
	quotaStrikeLimit = 2
	// dormancyWindow is how long the mind goes quiet after repeated
	// throttling.
	dormancyWindow = 30 * time.Minute
	// planAttempts bounds retries of a plan consultation.
	planAttempts = 2
)

// consultAsync hands a stimulus to the oracle without holding up the
// beat. At most one consultation is in flight; a second request in the
// same window is dropped, not queued. Callers hold the mind lock.
func (m *Mind) consultAsync(stimulus string) {
	if m.Oracle == nil {
		m.reflexRespond(stimulus)
		return
	}
	if !m.sem.TryAcquire(1) {
		slog.Debug("consultation dropped, one already in flight")
		return
	}
	snap := m.snapshot()
	go func() {
		defer m.sem.Release(1)
		ctx, cancel := context.WithTimeout(context.Background(), consultTimeout)
		defer cancel()
		dec, err := m.Oracle.Consult(ctx, snap, stimulus)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			m.noteOracleErr(err)
			return
		}
		m.quotaStrikes = 0
		m.applyDecision(dec)
	}()
}

// reflexRespond is the no-oracle fallback: acknowledge and move on.
func (m *Mind) reflexRespond(stimulus string) {
	_ = stimulus
	cx := m.ctx(time.Now())
	m.Actions.InterruptAndStart(cx, action.NewRespond("Mm. I'm here, just a bit scattered today."))
}

// applyDecision installs the oracle's chosen action and any goal it
// committed to. Called under the mind lock.
func (m *Mind) applyDecision(dec oracle.Decision) {
	if dec.Monologue != "" {
		m.think(dec.Monologue)
	}

	// A decision without an action is a pure reflection; the monologue
	// above is all it does.
	if dec.Action != "" {
		if m.Actions.IsBusy() {
			slog.Debug("decision arrived while busy, discarded", "action", dec.Action)
			return
		}
		act, err := action.New(dec.Action, dec.Params)
		if err != nil {
			slog.Warn("oracle chose unknown action, ignoring", "action", dec.Action)
		} else {
			m.Actions.InterruptAndStart(m.ctx(time.Now()), act)
		}
	}

	if dec.Goal == "" {
		return
	}
	if mcount := findPlacesRe.FindStringSubmatch(dec.Goal); mcount != nil && m.Agent.Mission == nil {
		n, _ := strconv.Atoi(mcount[1])
		if n > 0 {
			m.Agent.Mission = &agent.Mission{
				Kind:   agent.MissionFindPlaces,
				Goal:   dec.Goal,
				Count:  n,
				Target: m.Agent.LastUserID,
			}
			slog.Info("mission accepted", "kind", agent.MissionFindPlaces, "count", n)
			return
		}
	}
	if p := m.cannedPlan(dec.Goal); p != nil {
		m.Agent.Plan = p
		slog.Debug("canned plan installed", "goal", dec.Goal, "steps", len(p.Steps))
		return
	}
	m.proposePlanAsync(dec.Goal)
}

// proposePlanAsync asks the oracle to draft a plan toward goal, with a
// bounded retry. Called under the mind lock.
func (m *Mind) proposePlanAsync(goal string) {
	if m.Oracle == nil {
		return
	}
	if !m.sem.TryAcquire(1) {
		slog.Debug("plan consultation dropped, one already in flight")
		return
	}
	snap := m.snapshot()
	go func() {
		defer m.sem.Release(1)
		var draft oracle.PlanDraft
		var err error
		for attempt := 0; attempt < planAttempts; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), consultTimeout)
			draft, err = m.Oracle.ProposePlan(ctx, snap, goal)
			cancel()
			if err == nil {
				break
			}
			slog.Warn("plan consultation failed", "attempt", attempt+1, "error", err)
			if oracle.IsQuotaErr(err) {
				break
			}
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			m.noteOracleErr(err)
			m.Agent.Plan = nil
			m.Agent.Mission = nil
			m.think(fmt.Sprintf("I can't figure out how to %s right now.", goal))
			return
		}
		m.quotaStrikes = 0
		if len(draft.Steps) == 0 {
			m.Agent.Mission = nil
			m.think(fmt.Sprintf("There's no way to %s from here.", goal))
			return
		}
		plan := &agent.Plan{Goal: draft.Goal}
		for _, s := range draft.Steps {
			plan.Steps = append(plan.Steps, agent.Step{Kind: s.Kind, Params: s.Params})
		}
		m.Agent.Plan = plan
		slog.Info("plan drafted", "goal", plan.Goal, "steps", len(plan.Steps))
	}()
}

// reflectAsync asks the oracle for one line of the entry just written.
// Called under the mind lock after a journal session.
func (m *Mind) reflectAsync() {
	if m.Oracle == nil || !m.sem.TryAcquire(1) {
		return
	}
	snap := m.snapshot()
	go func() {
		defer m.sem.Release(1)
		ctx, cancel := context.WithTimeout(context.Background(), consultTimeout)
		defer cancel()
		prompt := fmt.Sprintf(
			"You are %s, feeling %s. You just finished writing in your journal at %s. "+
				"Write a single first-person sentence from the entry. No quotes.",
			snap.Name, snap.Mood, snap.Location)
		line, err := m.Oracle.Freeform(ctx, prompt)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			m.noteOracleErr(err)
			return
		}
		m.quotaStrikes = 0
		if line != "" {
			m.emit("journal", line)
		}
	}()
}

// noteOracleErr tracks consecutive quota errors; two in a row put the
// mind into a fixed dormancy window. Called under the mind lock.
func (m *Mind) noteOracleErr(err error) {
	if !oracle.IsQuotaErr(err) {
		slog.Error("oracle consultation failed", "error", err)
		return
	}
	m.quotaStrikes++
	slog.Warn("oracle quota pressure", "strikes", m.quotaStrikes)
	if m.quotaStrikes >= quotaStrikeLimit {
		m.Agent.DormantUntil = time.Now().Add(dormancyWindow)
		m.quotaStrikes = 0
		m.think("I feel strangely foggy. I need to rest my mind for a while.")
		slog.Warn("entering dormancy", "until", m.Agent.DormantUntil)
	}
}

// snapshot assembles the situational frame for a consultation. Called
// under the mind lock; the result is self-contained.
func (m *Mind) snapshot() oracle.Snapshot {
	snap := oracle.Snapshot{
		Name:        m.Agent.Name,
		Mood:        m.Agent.Affect.Mood.Primary,
		PsychState:  m.Agent.PsychState,
		Energy:      m.Agent.Needs.Energy,
		Satiety:     m.Agent.Needs.Satiety,
		TimeOfDay:   m.World.TimeOfDay,
		Weather:     m.World.Weather,
		LastSpeaker: m.Agent.LastUserID,
	}
	if loc := m.World.At(m.Agent.Coord); loc != nil {
		snap.Location = loc.Name
		snap.Description = loc.Description
		snap.Objects = append(snap.Objects, loc.Objects...)
		snap.Exits = loc.Exits()
	}
	if m.Agent.Plan != nil {
		snap.Goal = m.Agent.Plan.Goal
	} else if m.Agent.Mission != nil {
		snap.Goal = m.Agent.Mission.Goal
	}
	if u, ok := m.Agent.Users[m.Agent.LastUserID]; ok {
		start := len(u.Log) - 6
		if start < 0 {
			start = 0
		}
		for _, line := range u.Log[start:] {
			snap.RecentChat = append(snap.RecentChat, line.From+": "+line.Text)
		}
	}
	start := len(m.events) - 5
	if start < 0 {
		start = 0
	}
	for _, ev := range m.events[start:] {
		snap.RecentEvents = append(snap.RecentEvents, ev.Text)
	}
	return snap
}
