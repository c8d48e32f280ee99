package t2048

import (
	"math/rand"
	"time"
)

const (
	// DefaultWinTile is the tile value that marks a game as won.
	DefaultWinTile = 2048
	// DefaultSpawn4Probability is the chance a spawned tile is a 4 instead of a 2.
	DefaultSpawn4Probability = 0.10
)

// Random is the source used for tile spawns. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// State is a snapshot of one game.
type State struct {
	Board       Board
	Score       int
	MoveCount   int
	MaxTileSeen int
	Won         bool
	Over        bool
}

// Finished reports whether the game ended after at least one move.
// Only finished games go into the score history.
func (s State) Finished() bool {
	return s.Over && s.MoveCount > 0
}

// Tile is a value placed at a cell.
type Tile struct {
	Cell
	Value int
}

// MoveResult describes the outcome of ApplyMove.
type MoveResult struct {
	Moved   bool
	Gained  int
	Merged  []Cell // cells holding a tile produced by a merge
	Spawned *Tile  // nil when the board had no empty cell after the slide
}

// Option configures an Engine.
type Option func(*Engine)

// WithWinTile sets the tile value that marks the game as won.
func WithWinTile(v int) Option {
	return func(e *Engine) {
		if v > 0 {
			e.winTile = v
		}
	}
}

// WithSpawn4Probability sets the chance that a spawned tile is a 4.
func WithSpawn4Probability(p float64) Option {
	return func(e *Engine) {
		if p >= 0 && p <= 1 {
			e.spawn4Prob = p
		}
	}
}

// Engine owns one board and applies moves to it.
// It is not safe for concurrent use; callers serialise access.
type Engine struct {
	rng        Random
	winTile    int
	spawn4Prob float64

	state   State
	prev    State
	hasPrev bool
}

// NewEngine creates an engine and starts a new game.
// A nil rng falls back to a time-seeded source.
func NewEngine(rng Random, opts ...Option) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		rng:        rng,
		winTile:    DefaultWinTile,
		spawn4Prob: DefaultSpawn4Probability,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.NewGame()
	return e
}

// NewGame clears the board, score and history, then spawns two tiles.
func (e *Engine) NewGame() {
	e.state = State{}
	e.prev = State{}
	e.hasPrev = false

	e.spawn()
	e.spawn()
	e.refresh()
}

// ApplyMove slides the board in the given direction.
// Nothing changes when the game is over or when no line would move.
func (e *Engine) ApplyMove(dir Direction) MoveResult {
	if e.state.Over || !dir.Valid() {
		return MoveResult{}
	}

	board, gained, merged := slide(e.state.Board, dir)
	if board == e.state.Board {
		return MoveResult{}
	}

	e.prev = e.state
	e.hasPrev = true

	e.state.Board = board
	e.state.Score += gained
	e.state.MoveCount++
	spawned := e.spawn()
	e.refresh()

	return MoveResult{
		Moved:   true,
		Gained:  gained,
		Merged:  merged,
		Spawned: spawned,
	}
}

// Undo restores the state from before the last accepted move.
// Only one level is kept: a second Undo in a row does nothing.
// Returns false when there was nothing to undo.
func (e *Engine) Undo() bool {
	if !e.CanUndo() {
		return false
	}
	e.state = e.prev
	e.prev = State{}
	e.hasPrev = false
	return true
}

// CanUndo reports whether Undo would change the state.
// A finished game cannot be undone; only NewGame leaves it.
func (e *Engine) CanUndo() bool {
	return e.hasPrev && !e.state.Over
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// WinTile returns the tile value that marks the game as won.
func (e *Engine) WinTile() int {
	return e.winTile
}

// Restore replaces the current state, dropping undo history.
// Over, Won and MaxTileSeen are derived again from the board.
func (e *Engine) Restore(s State) {
	e.state = s
	e.prev = State{}
	e.hasPrev = false
	e.refresh()
}

// spawn places a 2 or a 4 in a random empty cell.
func (e *Engine) spawn() *Tile {
	empty := EmptyCells(e.state.Board)
	if len(empty) == 0 {
		return nil
	}

	cell := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < e.spawn4Prob {
		value = 4
	}

	e.state.Board[cell.Y][cell.X] = value
	return &Tile{Cell: cell, Value: value}
}

// refresh recomputes the derived fields after the board changed.
func (e *Engine) refresh() {
	top := MaxTile(e.state.Board)
	e.state.MaxTileSeen = max(e.state.MaxTileSeen, top)
	if top >= e.winTile {
		e.state.Won = true
	}
	e.state.Over = IsGameOver(e.state.Board)
}
