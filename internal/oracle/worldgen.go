package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

// GenerateLocation invents a descriptor for an unmapped coordinate,
// satisfying the world's Generator contract.
func (c *Client) GenerateLocation(ctx context.Context, gc world.GenContext) (world.GeneratedLocation, error) {
	prompt := genPrompt(gc)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return world.GeneratedLocation{}, err
	}
	payload := extractJSON(raw)
	if payload == "" {
		return world.GeneratedLocation{}, fmt.Errorf("no JSON object in generation reply")
	}
	var loc world.GeneratedLocation
	if err := json.Unmarshal([]byte(payload), &loc); err != nil {
		return world.GeneratedLocation{}, fmt.Errorf("parse location: %w", err)
	}
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" || strings.TrimSpace(loc.Description) == "" {
		return world.GeneratedLocation{}, fmt.Errorf("generated location missing name or description")
	}
	for i, id := range loc.Objects {
		loc.Objects[i] = normalizeObjectID(id)
	}
	return loc, nil
}

// normalizeObjectID lowers and underscores a model-suggested object id.
func normalizeObjectID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.ReplaceAll(id, " ", "_")
}

func genPrompt(gc world.GenContext) string {
	var b strings.Builder
	b.WriteString("You are the hidden architect of a small city simulation.\n")
	fmt.Fprintf(&b, "A resident is walking %s out of %q into unmapped space at grid %s.\n",
		gc.Direction, gc.SourceName, gc.Dest.Key())
	if gc.Theme != "" {
		fmt.Fprintf(&b, "This area belongs to the %q district; the new location must fit that theme.\n", gc.Theme)
	}
	if gc.Instruction != "" {
		b.WriteString(gc.Instruction + "\n")
	}
	if gc.Mood != "" {
		fmt.Fprintf(&b, "The resident's current mood is %q; let it color the description subtly.\n", gc.Mood)
	}
	if len(gc.UsedNames) > 0 {
		fmt.Fprintf(&b, "Do not reuse these existing location names: %s.\n", strings.Join(gc.UsedNames, ", "))
	}
	b.WriteString(`
Respond ONLY with a JSON object:
{
  "name": "Short Location Name",
  "description": "Two or three sentences of grounded, sensory prose.",
  "objects": ["snake_case_object_id", "another_object"],
  "indoor": false
}

Rules:
- name: under 5 words, a plausible city place name
- objects: 0 to 4 ids, lowercase snake_case
- indoor: true only for enclosed interior spaces`)
	return b.String()
}
