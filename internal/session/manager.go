// Package session keeps one board engine per HTTP client. Each engine is
// only touched while its session lock is held; idle sessions are evicted.
package session

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

var (
	// ErrGameNotFound is returned for unknown or evicted session IDs.
	ErrGameNotFound = errors.New("session: game not found")
	// ErrTooManySessions is returned when the session limit is reached.
	ErrTooManySessions = errors.New("session: too many sessions")
)

// ScoreRecorder stores finished games.
type ScoreRecorder interface {
	SaveScore(ctx context.Context, gameID string, score, maxTile int) (int64, error)
}

// Config configures a Manager.
type Config struct {
	// TTL is how long a session may stay idle before eviction.
	TTL time.Duration
	// MaxSessions caps live sessions; zero means unlimited.
	MaxSessions int
	// EngineOptions are passed to every new engine.
	EngineOptions []t2048.Option
	// NewRandom returns the random source for a new session.
	NewRandom func() t2048.Random
	// Now overrides the clock (tests).
	Now func() time.Time
	// Recorder, if set, receives the score of every finished game.
	Recorder ScoreRecorder
}

// View is a read-only copy of a session's game.
type View struct {
	ID      string
	State   t2048.State
	CanUndo bool
	Best    int
	WinTile int
}

type session struct {
	mu       sync.Mutex
	engine   *t2048.Engine
	lastSeen time.Time
	recorded bool // finished game already sent to the recorder
}

// Manager owns all live sessions.
type Manager struct {
	cfg    Config
	best   t2048.BestScore
	logger *log.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewManager creates a manager. best may be nil.
func NewManager(cfg Config, best t2048.BestScore, logger *log.Logger) *Manager {
	if cfg.NewRandom == nil {
		cfg.NewRandom = func() t2048.Random {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		cfg:      cfg,
		best:     best,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Create starts a new game in a new session.
func (m *Manager) Create(ctx context.Context) (View, error) {
	s := &session{
		engine:   t2048.NewEngine(m.cfg.NewRandom(), m.cfg.EngineOptions...),
		lastSeen: m.cfg.Now(),
	}
	id := uuid.NewString()

	m.mu.Lock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return View{}, ErrTooManySessions
	}
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "id", id)

	s.mu.Lock()
	defer s.mu.Unlock()
	return m.view(id, s), nil
}

// Get returns the current game of a session.
func (m *Manager) Get(ctx context.Context, id string) (View, error) {
	return m.with(ctx, id, func(*session) {})
}

// Move applies a move. The returned bool reports whether the board moved.
func (m *Manager) Move(ctx context.Context, id string, dir t2048.Direction) (View, bool, error) {
	var moved bool
	v, err := m.with(ctx, id, func(s *session) {
		moved = s.engine.ApplyMove(dir).Moved
	})
	return v, moved, err
}

// Undo reverts the last move. The returned bool reports whether anything changed.
func (m *Manager) Undo(ctx context.Context, id string) (View, bool, error) {
	var undone bool
	v, err := m.with(ctx, id, func(s *session) {
		undone = s.engine.Undo()
	})
	return v, undone, err
}

// NewGame restarts the game of an existing session.
func (m *Manager) NewGame(ctx context.Context, id string) (View, error) {
	return m.with(ctx, id, func(s *session) {
		s.engine.NewGame()
		s.recorded = false
	})
}

// Delete ends a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Best returns the best score known to the manager.
func (m *Manager) Best() int {
	if m.best == nil {
		return 0
	}
	return m.best.Best()
}

// with runs fn on a session under its lock and returns the resulting view.
func (m *Manager) with(ctx context.Context, id string, fn func(*session)) (View, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return View{}, ErrGameNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s)
	s.lastSeen = m.cfg.Now()

	state := s.engine.State()
	if m.best != nil {
		m.best.Observe(ctx, state.Score)
	}
	m.record(ctx, s)
	return m.view(id, s), nil
}

// record sends a finished game to the recorder once.
// Callers hold s.mu.
func (m *Manager) record(ctx context.Context, s *session) {
	state := s.engine.State()
	if m.cfg.Recorder == nil || s.recorded || !state.Finished() {
		return
	}
	s.recorded = true
	if _, err := m.cfg.Recorder.SaveScore(ctx, t2048.GameID, state.Score, state.MaxTileSeen); err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

func (m *Manager) view(id string, s *session) View {
	state := s.engine.State()
	best := state.Score
	if m.best != nil {
		best = max(best, m.best.Best())
	}
	return View{
		ID:      id,
		State:   state,
		CanUndo: s.engine.CanUndo(),
		Best:    best,
		WinTile: s.engine.WinTile(),
	}
}

// Evict removes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Evict(ctx context.Context) int {
	if m.cfg.TTL <= 0 {
		return 0
	}
	cutoff := m.cfg.Now().Add(-m.cfg.TTL)

	m.mu.Lock()
	evicted := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			evicted++
		}
	}
	m.mu.Unlock()

	if evicted > 0 {
		m.logger.Info("evicted idle sessions", "count", evicted)
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict(ctx)
		}
	}
}
