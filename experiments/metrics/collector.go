package metrics

import (
	"sync/atomic"
	"time"

	"trilines/game"
)

// AgentConfig describes one agent taking part in an experiment.
type AgentConfig struct {
	ID         int
	Kind       string // "minimax" or "random"
	Depth      int
	Goroutines int
	Pruning    bool
	Seed       uint64
}

type SearchMetric struct {
	Depth      int
	Goroutines int
	Pruning    bool
	Duration   time.Duration
	Nodes      int // boards expanded, root children included
	Candidates int // legal moves at the root
	Score      float64
}

type MoveMetric struct {
	Step            int
	Player          game.Player
	Move            game.Line
	TrianglesFormed int
	Hash            game.StateHash
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer game.Player
	Winner         game.Player
	HasWinner      bool
	Score1         int
	Score2         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth, goroutines int, pruning bool)
	AddNode()
	SetCandidates(n int)
	SetScore(score float64)
	Complete() SearchMetric
}

type collector struct {
	depth      int
	goroutines int
	pruning    bool
	startTime  time.Time
	nodes      atomic.Int64
	candidates int
	score      float64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, goroutines int, pruning bool) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
	m.pruning = pruning
	m.nodes.Store(0)
	m.candidates = 0
	m.score = 0
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) SetCandidates(n int) {
	m.candidates = n
}

func (m *collector) SetScore(score float64) {
	m.score = score
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Pruning:    m.pruning,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Candidates: m.candidates,
		Score:      m.score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, goroutines int, pruning bool) {}
func (m *dummyCollector) AddNode()                                  {}
func (m *dummyCollector) SetCandidates(n int)                       {}
func (m *dummyCollector) SetScore(score float64)                    {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }
