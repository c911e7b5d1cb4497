package agent

import "time"

// Promise is a commitment made to a user during conversation.
type Promise struct {
	Event     string    `json:"event"`
	Date      time.Time `json:"date"`
	Fulfilled bool      `json:"fulfilled"`
}

// ChatLine is one remembered exchange with a user.
type ChatLine struct {
	At   time.Time `json:"at"`
	From string    `json:"from"`
	Text string    `json:"text"`
}

// UserProfile is the agent's cumulative model of one person: social
// standing scalars plus a bounded conversation memory and outstanding
// promises.
type UserProfile struct {
	ID        string     `json:"id"`
	Rapport   float64    `json:"rapport"`
	Trust     float64    `json:"trust"`
	Annoyance float64    `json:"annoyance"`
	Promises  []Promise  `json:"promises,omitempty"`
	Log       []ChatLine `json:"log,omitempty"`
	LastSeen  time.Time  `json:"last_seen"`
}

// maxLogLines bounds per-user conversation memory.
const maxLogLines = 40

// User returns the profile for id, creating a neutral one on first
// contact.
func (a *Agent) User(id string) *UserProfile {
	if u, ok := a.Users[id]; ok {
		return u
	}
	u := &UserProfile{ID: id, Rapport: 0.3, Trust: 0.3}
	a.Users[id] = u
	return u
}

// RecordChat appends an exchange to the user's conversation memory and
// marks the interaction time.
func (a *Agent) RecordChat(id, from, text string, now time.Time) {
	u := a.User(id)
	u.Log = append(u.Log, ChatLine{At: now, From: from, Text: text})
	if len(u.Log) > maxLogLines {
		u.Log = u.Log[len(u.Log)-maxLogLines:]
	}
	u.LastSeen = now
	a.LastUserID = id
	a.LastInteraction = now
}

// AddPromise records a commitment to a user.
func (u *UserProfile) AddPromise(event string, date time.Time) {
	u.Promises = append(u.Promises, Promise{Event: event, Date: date})
}

// DuePromises returns unfulfilled promises whose date has arrived.
func (u *UserProfile) DuePromises(now time.Time) []*Promise {
	var due []*Promise
	for i := range u.Promises {
		p := &u.Promises[i]
		if !p.Fulfilled && !now.Before(p.Date) {
			due = append(due, p)
		}
	}
	return due
}
