package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// genAttempts bounds how many times the generator is consulted for a
// single new location before the move is abandoned.
const genAttempts = 2

// genTimeout bounds one generator consultation.
const genTimeout = 45 * time.Second

// ErrNoGenerator is returned when the world has no generator wired and
// the agent walks toward unmapped space.
var ErrNoGenerator = errors.New("world: no generator configured")

// GenContext is everything the generator gets to invent a location from.
type GenContext struct {
	SourceName   string
	SourceIndoor bool
	Direction    string
	Dest         Coord
	Mood         string
	Theme        string   // zone theme covering the destination, if any
	Instruction  string   // situational steering built from the source
	UsedNames    []string // existing location names to avoid
}

// GeneratedLocation is the descriptor a generator produces.
type GeneratedLocation struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Objects     []string `json:"objects"`
	Indoor      bool     `json:"indoor"`
}

// Generator produces location descriptors for unmapped coordinates.
type Generator interface {
	GenerateLocation(ctx context.Context, gc GenContext) (GeneratedLocation, error)
}

// generate grows the grid one location in the given direction from
// source. On success the forward and reverse edges both exist; on any
// failure the grid and registry are left byte-for-byte unchanged.
func (w *World) generate(source Coord, direction string, mood string) error {
	if w.Gen == nil {
		return ErrNoGenerator
	}
	src := w.At(source)
	if src == nil {
		return fmt.Errorf("generate from unmapped coordinate %s", source.Key())
	}
	dest, ok := source.Step(direction)
	if !ok {
		return fmt.Errorf("unknown direction %q", direction)
	}

	gc := GenContext{
		SourceName:   src.Name,
		SourceIndoor: src.Indoor,
		Direction:    direction,
		Dest:         dest,
		Mood:         mood,
		Theme:        w.ThemeAt(dest),
		Instruction:  w.genInstruction(src, direction),
		UsedNames:    w.UsedNames(),
	}

	slog.Info("undiscovered territory", "from", source.Key(), "direction", direction, "theme", gc.Theme)

	var desc GeneratedLocation
	var err error
	for attempt := 0; attempt < genAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
		desc, err = w.Gen.GenerateLocation(ctx, gc)
		cancel()
		if err == nil && desc.Name != "" && desc.Description != "" {
			if !w.nameInUse(desc.Name) {
				break
			}
			err = fmt.Errorf("generator reused the name %q", desc.Name)
			continue
		}
		if err == nil {
			err = errors.New("generator returned an incomplete location")
		}
	}
	if err != nil {
		return fmt.Errorf("all generation attempts failed: %w", err)
	}

	for _, id := range desc.Objects {
		w.Register(id)
	}

	// Forward and reverse edges land in the same step so traveled
	// edges are always bidirectional.
	newLoc := &Location{
		Name:        desc.Name,
		Description: desc.Description,
		Objects:     append([]string(nil), desc.Objects...),
		Connections: map[string]Coord{Opposite(direction): source},
		Indoor:      desc.Indoor,
	}
	if src.Connections == nil {
		src.Connections = make(map[string]Coord)
	}
	src.Connections[direction] = dest
	w.Grid[dest] = newLoc
	w.Dirty = true

	slog.Info("discovery solidified", "at", dest.Key(), "name", newLoc.Name)
	return nil
}

// genInstruction builds the situational steering text for generation,
// based on where the agent is coming from.
func (w *World) genInstruction(src *Location, direction string) string {
	vertical := direction == "up" || direction == "down"
	switch {
	case vertical:
		return "I am in a building, moving vertically. The new location should be another floor, a lobby, a basement, or a rooftop."
	case src.HasObject("main_door") && src.Name == "Apartment Hallway":
		return "I am leaving my apartment building through the main entrance. The new location must be an outdoor, street-level area like a 'Sidewalk', 'Street Corner', or 'Alleyway'."
	case !src.Indoor:
		return "I am already outside and walking down the street. The new location should be another plausible outdoor area or the entrance to a public building (e.g., 'Park Entrance', 'Storefront', 'Bus Stop')."
	default:
		return "I am moving horizontally. The new location should be a plausible adjacent area."
	}
}
