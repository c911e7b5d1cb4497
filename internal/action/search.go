package action

import (
	"fmt"
	"strings"

	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

const (
	// searchBudget bounds a search in beats before it gives up.
	searchBudget = 30
	// searchDepth bounds how many hops from the start the sweep may
	// reach. The keys are never four rooms away.
	searchDepth = 3
)

// searchHop is one frontier entry: a coordinate and its hop distance
// from the start.
type searchHop struct {
	c     world.Coord
	depth int
}

// searchAction is a breadth-first sweep of the known map for an object
// or a place, one frontier location per beat. A search begun indoors
// stays indoors: the resident will not wander outside just to look for
// her keys. It ends three distinguishable ways: found, frontier
// exhausted, or the beat budget running out mid-sweep.
type searchAction struct {
	base
	target      string
	startIndoor bool
	queue       []searchHop
	visited     map[world.Coord]bool
}

// NewSearch returns an action that looks for target across the map.
func NewSearch(target string) Action {
	return &searchAction{
		base:    base{kind: KindSearch, duration: searchBudget, interruptible: true},
		target:  strings.ToLower(strings.TrimSpace(target)),
		visited: make(map[world.Coord]bool),
	}
}

func (a *searchAction) Start(cx *Ctx) {
	here := cx.Here()
	if here != nil {
		a.startIndoor = here.Indoor
	}
	a.queue = []searchHop{{c: cx.Agent.Coord}}
	a.visited[cx.Agent.Coord] = true
	cx.emit("search", fmt.Sprintf("She starts looking around for %s.", world.DisplayName(a.target)))
}

func (a *searchAction) Update(cx *Ctx) {
	a.elapsed++
	if a.finished {
		return
	}
	if a.target == "" {
		a.finish(false)
		return
	}
	if len(a.queue) == 0 {
		cx.think(fmt.Sprintf("I've looked everywhere I can. No %s.", world.DisplayName(a.target)))
		a.finish(false)
		return
	}
	if a.elapsed >= a.duration {
		// The budget ran out with frontier left; that is giving up,
		// not a clean miss.
		cx.think(fmt.Sprintf("I can't keep looking for %s right now. Another time.", world.DisplayName(a.target)))
		a.finish(false)
		return
	}

	// One location per beat keeps a long search interruptible between
	// rooms.
	hop := a.queue[0]
	a.queue = a.queue[1:]
	loc := cx.World.At(hop.c)
	if loc == nil {
		return
	}

	if a.matches(loc) {
		cx.emit("search", fmt.Sprintf("She finds %s at %s.", world.DisplayName(a.target), loc.Name))
		a.finish(true)
		return
	}

	if hop.depth >= searchDepth {
		return
	}
	for _, next := range loc.Connections {
		if a.visited[next] {
			continue
		}
		dest := cx.World.At(next)
		if dest == nil {
			continue
		}
		// An indoor search stops at the door. The reverse is allowed:
		// searching outside may lead back in.
		if a.startIndoor && !dest.Indoor {
			continue
		}
		a.visited[next] = true
		a.queue = append(a.queue, searchHop{c: next, depth: hop.depth + 1})
	}
}

func (a *searchAction) matches(loc *world.Location) bool {
	if strings.Contains(strings.ToLower(loc.Name), a.target) {
		return true
	}
	for _, id := range loc.Objects {
		if id == a.target || strings.Contains(strings.ToLower(world.DisplayName(id)), a.target) {
			return true
		}
	}
	return false
}
