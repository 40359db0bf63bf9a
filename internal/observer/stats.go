package observer

import (
	"sync"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/transport"
	"github.com/rcaelers/swoqbot/internal/world"
)

// StatsObserver accumulates simple per-game counters that a caller can
// read once a game ends, such as tests that want to assert on behavior
// without parsing console output. Nothing in the game loop reads them.
type StatsObserver struct {
	mu sync.Mutex

	Ticks        int
	Levels       int
	GoalCounts   map[model.GoalType]int
	ActionCounts int
	Rejections   int
	LastStatus   string
	FinalTick    int
}

// NewStatsObserver returns a zeroed StatsObserver ready to use.
func NewStatsObserver() *StatsObserver {
	return &StatsObserver{GoalCounts: make(map[model.GoalType]int)}
}

func (s *StatsObserver) OnGameStart(gameID string, seed int64, mapWidth, mapHeight, visibilityRange int) {
}

func (s *StatsObserver) OnNewLevel(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Levels++
}

func (s *StatsObserver) OnStateUpdate(state transport.WireState, w *world.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Ticks++
}

func (s *StatsObserver) OnGoalSelected(playerIndex int, goal model.GoalSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GoalCounts[goal.Type]++
}

func (s *StatsObserver) OnActionSelected(playerIndex int, action model.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ActionCounts++
}

func (s *StatsObserver) OnActionResult(action, action2 model.Action, hasAction2 bool, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result != "Ok" {
		s.Rejections++
	}
}

func (s *StatsObserver) OnGameFinished(status string, finalTick int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastStatus = status
	s.FinalTick = finalTick
}

// GoalCount returns how many times goal has been selected for any
// player so far.
func (s *StatsObserver) GoalCount(goal model.GoalType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.GoalCounts[goal]
}
