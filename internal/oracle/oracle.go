// Package oracle wraps the external language model behind small typed
// consultations: choose an action, draft a plan, speak freeform, or
// describe a newly generated location.
package oracle

import (
	"context"
	"strings"
)

// Decision is the model's answer to a "what do I do next" consultation.
type Decision struct {
	Monologue string            `json:"monologue"`
	Action    string            `json:"action"`
	Params    map[string]string `json:"params,omitempty"`
	Goal      string            `json:"goal,omitempty"`
}

// PlanStep mirrors one step of a drafted plan on the wire.
type PlanStep struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// PlanDraft is the model's answer to a plan consultation.
type PlanDraft struct {
	Goal  string     `json:"goal"`
	Steps []PlanStep `json:"steps"`
}

// Snapshot is the read-only situational frame handed to consultations.
// It is assembled under the mind lock and carried by value so the
// consultation can run unlocked.
type Snapshot struct {
	Name         string
	Location     string
	Description  string
	Objects      []string
	Exits        []string
	Mood         string
	PsychState   string
	Energy       float64
	Satiety      float64
	TimeOfDay    string
	Weather      string
	Goal         string
	LastSpeaker  string
	RecentChat   []string
	RecentEvents []string
}

// Cognition is the consultation surface the mind depends on. A nil or
// disabled implementation leaves the agent on reflexive behavior only.
type Cognition interface {
	// Consult asks for the next deliberate action given a stimulus.
	Consult(ctx context.Context, snap Snapshot, stimulus string) (Decision, error)
	// ProposePlan asks for a multi-step plan toward a goal.
	ProposePlan(ctx context.Context, snap Snapshot, goal string) (PlanDraft, error)
	// Freeform asks for unstructured prose, used for reflections and
	// spoken replies.
	Freeform(ctx context.Context, prompt string) (string, error)
}

// IsQuotaErr reports whether an error looks like provider throttling.
// Two consecutive quota errors put the agent into dormancy.
func IsQuotaErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource exhausted")
}

// extractJSON pulls the outermost JSON object or array out of model
// prose, tolerating markdown fences and leading chatter.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "```"); i >= 0 {
		raw = raw[i+3:]
		raw = strings.TrimPrefix(raw, "json")
		if j := strings.Index(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start, closer := objStart, "}"
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(raw, closer)
	if end <= start {
		return ""
	}
	return raw[start : end+1]
}
