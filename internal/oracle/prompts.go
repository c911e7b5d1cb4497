package oracle

import (
	"fmt"
	"strings"
)

// actionMenu describes the actions the model may choose from, with the
// parameters each accepts.
const actionMenu = `Available actions:
- respond {"text": "..."}               reply to the person talking to you
- move {"direction": "north|south|east|west|up|down"}
- examine {"target": "object_or_location"}
- interact {"target": "object_id", "verb": "open|unlock|take|use"}
- eat {"target": "food_object_id"}
- read {}
- journal {}
- paint {}
- work {}
- sleep {}
- research {"topic": "..."}
- search {"target": "object_or_place"}
- idle {}`

func consultPrompt(snap Snapshot, stimulus string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a young woman living alone in a small city. You decide what she does next.\n\n", snap.Name)
	writeSituation(&b, snap)
	if stimulus != "" {
		fmt.Fprintf(&b, "\nJust now: %s\n", stimulus)
	}
	b.WriteString("\n" + actionMenu + "\n")
	b.WriteString(`
Respond ONLY with a JSON object:
{
  "monologue": "one sentence of private inner thought",
  "action": "action_name",
  "params": {"key": "value"},
  "goal": "optional short goal if this starts something larger"
}
Set "action" to null when thinking it over is the whole response.`)
	return b.String()
}

func planPrompt(snap Snapshot, goal string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, planning how to accomplish something. Plans are short ordered queues of concrete steps.\n\n", snap.Name)
	writeSituation(&b, snap)
	fmt.Fprintf(&b, "\nGoal: %s\n", goal)
	b.WriteString("\n" + actionMenu + "\n")
	b.WriteString(`
Respond ONLY with a JSON object:
{
  "goal": "restated goal",
  "steps": [
    {"kind": "action_name", "params": {"key": "value"}}
  ]
}

Rules:
- 1 to 6 steps, each an available action
- movement is one step per direction; repeat steps to travel further
- if the goal is impossible from here, return an empty steps array`)
	return b.String()
}

func writeSituation(b *strings.Builder, snap Snapshot) {
	fmt.Fprintf(b, "Location: %s. %s\n", snap.Location, snap.Description)
	if len(snap.Objects) > 0 {
		fmt.Fprintf(b, "You can see: %s.\n", strings.Join(snap.Objects, ", "))
	}
	if len(snap.Exits) > 0 {
		fmt.Fprintf(b, "Exits: %s.\n", strings.Join(snap.Exits, ", "))
	}
	fmt.Fprintf(b, "It is %s, %s outside.\n", strings.ToLower(snap.TimeOfDay), strings.ToLower(snap.Weather))
	fmt.Fprintf(b, "You feel %s (energy %.0f%%, satiety %.0f%%), mood %s.\n",
		strings.ToLower(snap.PsychState), snap.Energy*100, snap.Satiety*100, snap.Mood)
	if snap.Goal != "" {
		fmt.Fprintf(b, "Current goal: %s.\n", snap.Goal)
	}
	if len(snap.RecentChat) > 0 {
		fmt.Fprintf(b, "Recent conversation with %s:\n", snap.LastSpeaker)
		for _, line := range snap.RecentChat {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
	if len(snap.RecentEvents) > 0 {
		b.WriteString("Recent happenings:\n")
		for _, ev := range snap.RecentEvents {
			fmt.Fprintf(b, "  %s\n", ev)
		}
	}
}
