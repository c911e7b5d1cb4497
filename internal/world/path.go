package world

import (
	"container/heap"
	"errors"
)

// ErrNoPath is returned when no connected route exists between two
// mapped coordinates. Distinct from the empty path returned when start
// and goal coincide.
var ErrNoPath = errors.New("world: no path")

// FindPath runs A* over the connection graph with unit edge cost and a
// Manhattan heuristic. It returns the route as direction labels, in
// travel order. An empty slice means the agent is already at the goal.
func (w *World) FindPath(start, goal Coord) ([]string, error) {
	if start == goal {
		return []string{}, nil
	}

	open := &coordHeap{}
	heap.Init(open)
	heap.Push(open, coordCost{coord: start, cost: 0})

	cameFrom := make(map[Coord]Coord)
	gScore := map[Coord]int{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(coordCost).coord

		if current == goal {
			return w.backtrack(cameFrom, current), nil
		}

		loc := w.At(current)
		if loc == nil {
			continue
		}

		for _, neighbor := range loc.Connections {
			tentative := gScore[current] + 1
			if prev, seen := gScore[neighbor]; !seen || tentative < prev {
				cameFrom[neighbor] = current
				gScore[neighbor] = tentative
				heap.Push(open, coordCost{
					coord: neighbor,
					cost:  tentative + neighbor.Manhattan(goal),
				})
			}
		}
	}

	return nil, ErrNoPath
}

// backtrack rebuilds the route from the predecessor map, re-deriving
// the direction label traversed at each hop.
func (w *World) backtrack(cameFrom map[Coord]Coord, end Coord) []string {
	var reversed []string
	current := end
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		if loc := w.At(prev); loc != nil {
			for direction, dest := range loc.Connections {
				if dest == current {
					reversed = append(reversed, direction)
					break
				}
			}
		}
		current = prev
	}

	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

type coordCost struct {
	coord Coord
	cost  int
}

type coordHeap []coordCost

func (h coordHeap) Len() int            { return len(h) }
func (h coordHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h coordHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *coordHeap) Push(x any) { *h = append(*h, x.(coordCost)) }
func (h *coordHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
