// Package world provides the spatial model: a sparse 3D grid of
// locations joined by directional edges, an object registry, zone
// themes, pathfinding, and on-demand procedural growth.
package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a position on the integer grid: x east, y north, z up.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Key returns the canonical "x,y,z" form used for storage keys.
func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// ParseCoord parses the "x,y,z" storage form back into a Coord.
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Coord{}, fmt.Errorf("parse coord %q: want 3 components", s)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Coord{}, fmt.Errorf("parse coord %q: %w", s, err)
		}
		vals[i] = v
	}
	return Coord{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// Manhattan returns the L1 distance to another coordinate.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y) + abs(c.Z-o.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// directionDeltas maps a travel direction to its coordinate offset.
var directionDeltas = map[string]Coord{
	"north": {Y: 1},
	"south": {Y: -1},
	"east":  {X: 1},
	"west":  {X: -1},
	"up":    {Z: 1},
	"down":  {Z: -1},
}

// oppositeDirections maps each direction to its mechanical reverse.
var oppositeDirections = map[string]string{
	"north": "south", "south": "north",
	"east": "west", "west": "east",
	"up": "down", "down": "up",
}

// Step returns the coordinate one move away in the given direction.
// ok is false for an unknown direction.
func (c Coord) Step(direction string) (Coord, bool) {
	d, ok := directionDeltas[direction]
	if !ok {
		return Coord{}, false
	}
	return Coord{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}, true
}

// Opposite returns the reverse of a direction, or "" when unknown.
func Opposite(direction string) string {
	return oppositeDirections[direction]
}

// Location is a single room or outdoor spot on the grid.
type Location struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Objects     []string         `json:"objects"`
	Connections map[string]Coord `json:"connections"`
	Indoor      bool             `json:"indoor"`
}

// HasObject reports whether an object id is present at the location.
func (l *Location) HasObject(id string) bool {
	for _, o := range l.Objects {
		if o == id {
			return true
		}
	}
	return false
}

// RemoveObject drops an object id from the location. Reports whether it
// was present.
func (l *Location) RemoveObject(id string) bool {
	for i, o := range l.Objects {
		if o == id {
			l.Objects = append(l.Objects[:i], l.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// Exits returns the outgoing direction labels, unordered.
func (l *Location) Exits() []string {
	exits := make([]string, 0, len(l.Connections))
	for d := range l.Connections {
		exits = append(exits, d)
	}
	return exits
}
