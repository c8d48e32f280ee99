package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
)

// ScoreRecorder stores finished games. *storage.Store satisfies it.
type ScoreRecorder interface {
	SaveScore(ctx context.Context, gameID string, score, maxTile int) (int64, error)
}

var _ ScoreRecorder = (*storage.Store)(nil)

// Options configures a Model.
type Options struct {
	// Scores records finished games. May be nil.
	Scores ScoreRecorder
	Logger *log.Logger
	// ScreenshotDir is where ctrl+s writes text dumps of the screen.
	ScreenshotDir string
}

// Model is the Bubble Tea model running a 2048 game.
type Model struct {
	game       *t2048.Game
	screen     *core.Screen
	scores     ScoreRecorder
	logger     *log.Logger
	shotDir    string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	swipe      core.Swipe
	width      int
	height     int
	quitting   bool
	scoreSaved bool // whether the current finished game has been recorded
}

// NewModel creates a model for game.
func NewModel(game *t2048.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		scores:     opts.Scores,
		logger:     opts.Logger,
		shotDir:    opts.ScreenshotDir,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       help.New(),
		swipe:      core.Swipe{MinDistance: core.DefaultSwipeDistance},
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	m.config.ScreenH = m.boardHeight()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		m.step()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns a left-button drag into a directional action.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.swipe.Begin(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		if a := m.swipe.End(msg.X, msg.Y); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
	}
	return m
}

// step runs one simulation tick with the input collected since the last one.
func (m *Model) step() {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	state := m.game.Engine().State()
	if m.scores == nil || !state.Finished() {
		return
	}
	if _, err := m.scores.SaveScore(context.Background(), m.game.ID(), state.Score, state.MaxTileSeen); err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// layout splits the terminal between the game screen and the help bar.
func (m *Model) layout() {
	h := m.boardHeight()
	m.config.ScreenW = m.width
	m.config.ScreenH = h
	m.screen.Resize(m.width, h)
	m.game.Resize(m.width, h)
}

func (m Model) boardHeight() int {
	return max(m.height-lipgloss.Height(m.helpView()), 0)
}

func (m Model) helpView() string {
	return m.help.View(m.keys.Keys())
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		expanded, err := storage.ExpandPath("~/.t2048/screenshots")
		if err != nil {
			return "", err
		}
		dir = expanded
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the game screen followed by the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.helpView())
}

// Snapshot returns the game's current snapshot.
func (m Model) Snapshot() t2048.Snapshot {
	return m.game.Snapshot()
}

// Run starts the Bubble Tea program for game and blocks until it quits.
func Run(game *t2048.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
