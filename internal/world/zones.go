package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bounds is an inclusive axis-aligned box region.
type Bounds struct {
	X [2]int `yaml:"x" json:"x"`
	Y [2]int `yaml:"y" json:"y"`
	Z [2]int `yaml:"z" json:"z"`
}

// Contains reports whether the coordinate falls inside the box.
func (b Bounds) Contains(c Coord) bool {
	return b.X[0] <= c.X && c.X <= b.X[1] &&
		b.Y[0] <= c.Y && c.Y <= b.Y[1] &&
		b.Z[0] <= c.Z && c.Z <= b.Z[1]
}

// Zone themes a region of the grid for generation. Exclude carves
// sub-regions out of the box, e.g. a park inside a downtown block.
type Zone struct {
	Name    string   `yaml:"name" json:"name"`
	Theme   string   `yaml:"theme" json:"theme"`
	Bounds  Bounds   `yaml:"bounds" json:"bounds"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

type zoneFile struct {
	Zones []Zone `yaml:"zones"`
}

// LoadZones reads the zone catalog from a YAML file.
func LoadZones(path string) ([]Zone, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones: %w", err)
	}
	var zf zoneFile
	if err := yaml.Unmarshal(raw, &zf); err != nil {
		return nil, fmt.Errorf("parse zones: %w", err)
	}
	return zf.Zones, nil
}

// ThemeAt returns the theme of the first zone covering the coordinate,
// honoring exclusion sub-regions, or "" when no zone applies.
func (w *World) ThemeAt(c Coord) string {
	byName := make(map[string]*Zone, len(w.Zones))
	for i := range w.Zones {
		byName[w.Zones[i].Name] = &w.Zones[i]
	}

	for i := range w.Zones {
		z := &w.Zones[i]
		if !z.Bounds.Contains(c) {
			continue
		}
		excluded := false
		for _, name := range z.Exclude {
			if ex, ok := byName[name]; ok && ex.Bounds.Contains(c) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		return z.Theme
	}
	return ""
}
