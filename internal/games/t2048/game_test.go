package t2048

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/t2048/internal/core"
)

type fakeBest struct {
	best     int
	observed []int
}

func (f *fakeBest) Observe(_ context.Context, score int) int {
	f.observed = append(f.observed, score)
	f.best = max(f.best, score)
	return f.best
}

func (f *fakeBest) Best() int { return f.best }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := New(nil)
	g1.Reset(testConfig())

	g2 := New(nil)
	g2.Reset(testConfig())

	if g1.Snapshot().Board != g2.Snapshot().Board {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v",
			g1.Snapshot().Board, g2.Snapshot().Board)
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		g1.Step(frame(a))
		g2.Step(frame(a))
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Error("Same seed and inputs should produce the same snapshot")
	}
}

func TestStepAppliesMove(t *testing.T) {
	best := &fakeBest{best: 10}
	g := New(best)
	g.Reset(testConfig())
	g.Engine().Restore(State{Board: Board{{2, 2, 0, 0}}})

	res := g.Step(frame(core.ActionLeft))
	if !res.Changed {
		t.Fatal("left should change the board")
	}
	if res.State.Score != 4 {
		t.Errorf("score = %d, want 4", res.State.Score)
	}
	if res.State.Best != 10 {
		t.Errorf("best = %d, want 10", res.State.Best)
	}
	if len(best.observed) != 1 || best.observed[0] != 4 {
		t.Errorf("observed scores = %v, want [4]", best.observed)
	}

	snap := g.Snapshot()
	if snap.Moves != 1 || !snap.CanUndo || snap.State != StatePlaying {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestStepOneActionPerTick(t *testing.T) {
	g := New(nil)
	g.Reset(testConfig())
	g.Engine().Restore(State{Board: Board{{2, 2, 0, 0}}})

	g.Step(frame(core.ActionLeft, core.ActionRight))
	if moves := g.Snapshot().Moves; moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
}

func TestStepUndoAndRestart(t *testing.T) {
	g := New(nil)
	g.Reset(testConfig())
	g.Engine().Restore(State{Board: Board{{2, 2, 0, 0}}})

	g.Step(frame(core.ActionLeft))
	res := g.Step(frame(core.ActionUndo))
	if !res.Changed || res.State.Score != 0 {
		t.Errorf("undo result = %+v, want score 0", res)
	}
	if g.Step(frame(core.ActionUndo)).Changed {
		t.Error("second undo should not change anything")
	}

	g.Step(frame(core.ActionLeft))
	res = g.Step(frame(core.ActionRestart))
	if !res.Changed || res.State.Score != 0 {
		t.Errorf("restart result = %+v", res)
	}
	if snap := g.Snapshot(); snap.Moves != 0 || snap.CanUndo {
		t.Errorf("restart should reset moves and history, got %+v", snap)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := New(nil)
	g.Reset(testConfig())
	before := g.Snapshot().Board

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause action should pause the game")
	}
	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionRight))
	if g.Snapshot().Board != before {
		t.Error("moves while paused should be ignored")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("state = %s, want paused", g.Snapshot().State)
	}

	if g.Step(frame(core.ActionPause)).State.Paused {
		t.Error("second pause should resume")
	}
}

func TestWinOverlayAndState(t *testing.T) {
	g := New(nil)
	g.Reset(testConfig())
	g.Engine().Restore(State{Board: Board{{1024, 1024, 0, 0}}})

	g.Step(frame(core.ActionLeft))
	if g.Snapshot().State != StateWon {
		t.Errorf("state = %s, want won", g.Snapshot().State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You win! Keep going") {
		t.Error("win overlay should be shown right after reaching 2048")
	}

	for range winBannerDuration {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	if strings.Contains(screen.String(), "You win!") {
		t.Error("win overlay should disappear after a while")
	}
}

func TestGameOverState(t *testing.T) {
	g := New(nil)
	g.Reset(testConfig())
	g.Engine().Restore(State{Board: Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}})

	res := g.Step(frame(core.ActionUp))
	if res.Changed || !res.State.GameOver {
		t.Errorf("step on finished board = %+v", res)
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s, want game_over", g.Snapshot().State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay should be drawn")
	}
}

func TestWindowTooSmall(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenW = 20
	cfg.ScreenH = 8

	g := New(nil)
	g.Reset(cfg)
	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected resize message")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("state after resize = %s, want playing", g.Snapshot().State)
	}
}

func TestRenderBoard(t *testing.T) {
	g := New(&fakeBest{best: 512})
	g.Reset(testConfig())
	g.Engine().Restore(State{Board: Board{{2, 2, 0, 0}, {0, 0, 0, 128}}, Score: 40})
	g.Step(frame(core.ActionLeft))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Score: 44", "Best: 512", "Moves: 1", "128", "┌", "┘", "U: undo"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q:\n%s", want, out)
		}
	}

	// merged tile is bracketed while highlighted
	boardX := (80 - boardW) / 2
	cellY := hudHeight + 2
	if r := screen.Get(boardX+1, cellY); r != '[' {
		t.Errorf("merged tile marker = %q, want '['", r)
	}
	if c := screen.GetCell(boardX+3, cellY).Color; c != core.TileColor(4) {
		t.Errorf("merged tile color = %d, want %d", c, core.TileColor(4))
	}
}
