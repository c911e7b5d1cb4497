package world

import (
	"log/slog"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// World holds the full spatial state: the location grid, the object
// registry, ambient conditions, and the generator used to grow the map.
type World struct {
	Grid    map[Coord]*Location `json:"grid"`
	Objects map[string]*Object  `json:"objects"`

	// Home marks the coordinates the agent considers safe ground.
	Home []Coord `json:"home"`

	TimeOfDay string `json:"time_of_day"`
	Weather   string `json:"weather"`

	// Gen supplies new locations when the agent walks off the known
	// map. Nil disables growth: moves into the unknown simply fail.
	Gen Generator `json:"-"`

	// Zones theme generated locations by region.
	Zones []Zone `json:"-"`

	// Dirty is set on any mutation and cleared by the save path.
	Dirty bool `json:"-"`

	weatherNoise opensimplex.Noise
}

// New creates an empty world with seeded weather drift.
func New(seed int64) *World {
	return &World{
		Grid:         make(map[Coord]*Location),
		Objects:      make(map[string]*Object),
		TimeOfDay:    "Afternoon",
		Weather:      "Sunny",
		weatherNoise: opensimplex.NewNormalized(seed),
	}
}

// At returns the location at a coordinate, or nil when unmapped.
func (w *World) At(c Coord) *Location {
	return w.Grid[c]
}

// IsHome reports whether a coordinate is part of the agent's home.
func (w *World) IsHome(c Coord) bool {
	for _, h := range w.Home {
		if h == c {
			return true
		}
	}
	return false
}

// UsedNames returns every location name currently on the grid, for
// steering generation away from duplicates.
func (w *World) UsedNames() []string {
	seen := make(map[string]bool, len(w.Grid))
	names := make([]string, 0, len(w.Grid))
	for _, loc := range w.Grid {
		if !seen[loc.Name] {
			seen[loc.Name] = true
			names = append(names, loc.Name)
		}
	}
	return names
}

// nameInUse reports whether a location with this name already exists.
func (w *World) nameInUse(name string) bool {
	for _, loc := range w.Grid {
		if strings.EqualFold(loc.Name, name) {
			return true
		}
	}
	return false
}

// MoveResult reports what happened on a movement attempt.
type MoveResult struct {
	Moved     bool
	Dest      Coord
	Generated bool // a new location was created to complete the move
}

// Move resolves a one-step move from a coordinate. A missing edge
// triggers on-demand generation; if generation fails the world is left
// untouched and the move reports failure.
func (w *World) Move(from Coord, direction string, mood string) MoveResult {
	loc := w.At(from)
	if loc == nil {
		slog.Warn("move from unmapped coordinate", "from", from.Key())
		return MoveResult{}
	}

	generated := false
	if _, ok := loc.Connections[direction]; !ok {
		if err := w.generate(from, direction, mood); err != nil {
			slog.Info("no path opened", "from", from.Key(), "direction", direction, "error", err)
			return MoveResult{}
		}
		generated = true
	}

	dest := loc.Connections[direction]
	return MoveResult{Moved: true, Dest: dest, Generated: generated}
}
