package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	Best    int
	Moves   int
	MaxTile int // Highest tile seen this game
	Board   Board
	CanUndo bool
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.engine.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case s.Over:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case s.Won:
		state = StateWon
	}

	return Snapshot{
		Tick:    g.tick,
		Score:   s.Score,
		Best:    g.bestScore(),
		Moves:   s.MoveCount,
		MaxTile: s.MaxTileSeen,
		Board:   s.Board,
		CanUndo: g.engine.CanUndo(),
		State:   state,
	}
}
