// Package pathfind implements A* search over the partially observed map,
// in both a plain form and a tick-indexed form used to keep two players
// from colliding on the same cell at the same moment.
//
// Grounded on original_source/src/pathfinding.rs: same Manhattan
// heuristic, same 5000-expansion safety cap against unreachable targets,
// same open/closed-set structure. container/heap replaces Rust's
// BinaryHeap.
package pathfind

import (
	"container/heap"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/worldmap"
)

// MaxExpansions bounds how many nodes A* will pop from the open set
// before giving up on an unreachable goal.
const MaxExpansions = 5000

type node struct {
	pos    model.Position
	fScore int
	index  int
}

type openSet []*node

func (s openSet) Len() int            { return len(s) }
func (s openSet) Less(i, j int) bool  { return s[i].fScore < s[j].fScore }
func (s openSet) Swap(i, j int)       { s[i], s[j] = s[j], s[i]; s[i].index = i; s[j].index = j }
func (s *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*s)
	*s = append(*s, n)
}
func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return item
}

func heuristic(a, b model.Position) int {
	return a.Distance(b)
}

func reconstructPath(cameFrom map[model.Position]model.Position, current model.Position) []model.Position {
	path := []model.Position{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IsWalkable decides whether neighbor may be entered while searching
// towards goal.
type IsWalkable func(neighbor, goal model.Position) bool

// FindPath runs A* from start to goal over m, expanding 4-neighbours that
// pass isWalkable. It returns the path including both start and goal, or
// nil if no path is found within MaxExpansions node expansions.
func FindPath(m *worldmap.Map, start, goal model.Position, isWalkable IsWalkable) []model.Position {
	open := &openSet{}
	heap.Init(open)

	cameFrom := make(map[model.Position]model.Position)
	gScore := map[model.Position]int{start: 0}
	closed := make(map[model.Position]struct{})

	heap.Push(open, &node{pos: start, fScore: heuristic(start, goal)})

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node).pos

		if current == goal {
			return reconstructPath(cameFrom, current)
		}

		if _, done := closed[current]; done {
			continue
		}
		closed[current] = struct{}{}

		expansions++
		if expansions > MaxExpansions {
			return nil
		}

		for _, neighbor := range current.Neighbors() {
			if _, done := closed[neighbor]; done {
				continue
			}
			if !m.InBounds(neighbor) {
				continue
			}
			if !isWalkable(neighbor, goal) {
				continue
			}

			tentativeG := gScore[current] + 1
			if best, ok := gScore[neighbor]; !ok || tentativeG < best {
				cameFrom[neighbor] = current
				gScore[neighbor] = tentativeG
				heap.Push(open, &node{pos: neighbor, fScore: tentativeG + heuristic(neighbor, goal)})
			}
		}
	}

	return nil
}

// IsWalkableAtTick decides whether neighbor may be entered at the given
// number of ticks from the search's start, while searching towards goal.
// It is used to avoid stepping onto a cell another player's planned path
// will occupy at that same tick.
type IsWalkableAtTick func(neighbor, goal model.Position, tick int) bool

// FindPathWithTick is FindPath's tick-aware counterpart: g-score doubles
// as elapsed-tick count, and isWalkableAtTick is consulted with the tick
// at which a neighbor would be reached.
func FindPathWithTick(m *worldmap.Map, start, goal model.Position, isWalkableAtTick IsWalkableAtTick) []model.Position {
	open := &openSet{}
	heap.Init(open)

	cameFrom := make(map[model.Position]model.Position)
	gScore := map[model.Position]int{start: 0}
	closed := make(map[model.Position]struct{})

	heap.Push(open, &node{pos: start, fScore: heuristic(start, goal)})

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node).pos

		if current == goal {
			return reconstructPath(cameFrom, current)
		}

		if _, done := closed[current]; done {
			continue
		}
		closed[current] = struct{}{}

		expansions++
		if expansions > MaxExpansions {
			return nil
		}

		currentTick := gScore[current]

		for _, neighbor := range current.Neighbors() {
			if _, done := closed[neighbor]; done {
				continue
			}
			if !m.InBounds(neighbor) {
				continue
			}

			nextTick := currentTick + 1
			if !isWalkableAtTick(neighbor, goal, nextTick) {
				continue
			}

			tentativeG := nextTick
			if best, ok := gScore[neighbor]; !ok || tentativeG < best {
				cameFrom[neighbor] = current
				gScore[neighbor] = tentativeG
				heap.Push(open, &node{pos: neighbor, fScore: tentativeG + heuristic(neighbor, goal)})
			}
		}
	}

	return nil
}
