package core

// Game is the interface the platform drives. Implementations contain pure
// logic with no Bubble Tea dependency; the platform handles input mapping,
// timing and display.
type Game interface {
	// ID returns a stable identifier used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the game with the given screen size and seed.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// Resize informs the game of a new screen size without restarting it.
	Resize(width, height int)

	// State returns the current game state.
	State() GameState
}
