package t2048

import (
	"context"
	"math/rand"

	"github.com/vovakirdan/t2048/internal/core"
)

// GameID is the identifier used for score storage.
const GameID = "2048"

// BestScore is the host that remembers the best score across games.
type BestScore interface {
	// Observe reports a score and returns the best score after it.
	Observe(ctx context.Context, score int) int
	Best() int
}

// Game adapts an Engine to the core.Game loop.
type Game struct {
	engine *Engine
	opts   []Option
	best   BestScore
	tick   uint64

	// Screen dimensions
	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	winTicks  int // remaining ticks of the win overlay
	highlight highlight
}

var _ core.Game = (*Game)(nil)

// New creates a 2048 game. best may be nil.
func New(best BestScore, opts ...Option) *Game {
	return &Game{
		best: best,
		opts: opts,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine = NewEngine(rand.New(rand.NewSource(cfg.Seed)), g.opts...)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.winTicks = 0
	g.highlight.clear()

	g.checkScreenSize()
}

// Resize updates the screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Engine exposes the underlying board engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one tick. At most one action is applied per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.highlight.step()
	if g.winTicks > 0 {
		g.winTicks--
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	changed := false
	switch {
	case in.Has(core.ActionRestart):
		g.engine.NewGame()
		g.highlight.clear()
		g.winTicks = 0
		changed = true
	case in.Has(core.ActionUndo):
		if g.engine.Undo() {
			g.highlight.clear()
			changed = true
		}
	default:
		if dir, ok := moveDirection(in); ok {
			changed = g.move(dir)
		}
	}

	if changed {
		g.observeScore()
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// moveDirection picks the first directional action in the frame.
func moveDirection(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

func (g *Game) move(dir Direction) bool {
	wasWon := g.engine.State().Won
	res := g.engine.ApplyMove(dir)
	if !res.Moved {
		return false
	}

	g.highlight.start(res)
	if !wasWon && g.engine.State().Won {
		g.winTicks = winBannerDuration
	}
	return true
}

func (g *Game) observeScore() {
	if g.best == nil {
		return
	}
	g.best.Observe(context.Background(), g.engine.State().Score)
}

func (g *Game) bestScore() int {
	score := g.engine.State().Score
	if g.best == nil {
		return score
	}
	return max(g.best.Best(), score)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.engine.State()
	return core.GameState{
		Score:    s.Score,
		Best:     g.bestScore(),
		GameOver: s.Over,
		Paused:   g.paused || g.tooSmall,
	}
}
