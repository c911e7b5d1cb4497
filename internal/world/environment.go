package world

import (
	"log/slog"
	"strings"
	"time"
)

// weatherLadder orders conditions by severity; the smoothed noise value
// walks this ladder so weather drifts rather than teleports.
var weatherLadder = []string{"Sunny", "Cloudy", "Misty", "Windy", "Rainy", "Stormy"}

// weatherNoiseFreq controls how fast the weather index drifts per beat.
const weatherNoiseFreq = 0.002

// UpdateEnvironment advances time of day, weather, and weather-driven
// object behavior. It returns narration-worthy change descriptions.
func (w *World) UpdateEnvironment(now time.Time, beat uint64) []string {
	var events []string

	if tod := timeOfDay(now); tod != w.TimeOfDay {
		w.TimeOfDay = tod
		w.Dirty = true
		events = append(events, "The time has shifted. It is now "+tod+".")
	}

	// Normalized noise yields [0,1); scale onto the ladder.
	n := w.weatherNoise.Eval2(float64(beat)*weatherNoiseFreq, 0)
	idx := int(n * float64(len(weatherLadder)))
	if idx >= len(weatherLadder) {
		idx = len(weatherLadder) - 1
	}
	if idx < 0 {
		idx = 0
	}
	if next := weatherLadder[idx]; next != w.Weather {
		w.Weather = next
		w.Dirty = true
		events = append(events, "The weather has changed. It is now "+next+".")
		slog.Info("weather shift", "weather", next)
	}

	events = append(events, w.updateDynamicObjects()...)

	if win, ok := w.Objects["window"]; ok {
		win.View = windowView(w.TimeOfDay, w.Weather)
	}
	return events
}

func windowView(tod, weather string) string {
	t := strings.ToLower(tod)
	switch weather {
	case "Rainy", "Stormy":
		return "rain streaking the glass against a gray " + t
	case "Misty":
		return "a " + t + " street half-dissolved in mist"
	case "Sunny":
		return "a bright, sunny " + t
	default:
		return "an ordinary " + strings.ToLower(weather) + " " + t
	}
}

// updateDynamicObjects applies ambient rules: street lamps follow the
// light, puddles follow the rain.
func (w *World) updateDynamicObjects() []string {
	var events []string

	if lamp, ok := w.Objects["street_lamp"]; ok {
		shouldBeOn := w.TimeOfDay == "Evening" || w.TimeOfDay == "Night"
		isOn := lamp.State == "on"
		if isOn != shouldBeOn {
			lamp.State = "off"
			if shouldBeOn {
				lamp.State = "on"
			}
			w.Dirty = true
			events = append(events, "A nearby street lamp flickers and turns "+lamp.State+".")
		}
	}

	switch w.Weather {
	case "Sunny":
		for _, loc := range w.Grid {
			if loc.RemoveObject("puddle") {
				w.Dirty = true
				events = append(events, "The warmth of the sun has dried up a nearby puddle.")
				break
			}
		}
	case "Rainy", "Stormy":
		for _, loc := range w.Grid {
			if !loc.Indoor && !loc.HasObject("puddle") {
				loc.Objects = append(loc.Objects, "puddle")
				w.Register("puddle")
				w.Dirty = true
				events = append(events, "Rain begins to collect in a puddle on the ground.")
				break
			}
		}
	}

	return events
}

func timeOfDay(now time.Time) string {
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}
