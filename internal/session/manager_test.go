package session

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vovakirdan/t2048/internal/bestscore"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recorderFunc func(ctx context.Context, gameID string, score, maxTile int) (int64, error)

func (f recorderFunc) SaveScore(ctx context.Context, gameID string, score, maxTile int) (int64, error) {
	return f(ctx, gameID, score, maxTile)
}

func seededRandom() func() t2048.Random {
	var seed int64
	var mu sync.Mutex
	return func() t2048.Random {
		mu.Lock()
		defer mu.Unlock()
		seed++
		return rand.New(rand.NewSource(seed))
	}
}

func newTestManager(t *testing.T, cfg Config) (*Manager, *bestscore.Tracker) {
	t.Helper()
	if cfg.NewRandom == nil {
		cfg.NewRandom = seededRandom()
	}
	best := bestscore.New(memory.New(), "", nil)
	return NewManager(cfg, best, nil), best
}

// firstMove returns a direction that changes the board.
func firstMove(t *testing.T, s t2048.State) t2048.Direction {
	t.Helper()
	for _, d := range []t2048.Direction{t2048.DirLeft, t2048.DirRight, t2048.DirUp, t2048.DirDown} {
		if _, _, changed := t2048.Slide(s.Board, d); changed {
			return d
		}
	}
	t.Fatal("no legal move on a fresh board")
	return 0
}

func TestCreateAndGet(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	ctx := context.Background()

	v, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, 2, t2048.TileCount(v.State.Board))
	assert.False(t, v.CanUndo)
	assert.Equal(t, t2048.DefaultWinTile, v.WinTile)

	got, err := m.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.State, got.State)
	assert.Equal(t, 1, m.Len())
}

func TestUnknownSession(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, _, err = m.Move(ctx, "missing", t2048.DirLeft)
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, _, err = m.Undo(ctx, "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = m.NewGame(ctx, "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)

	assert.ErrorIs(t, m.Delete(ctx, "missing"), ErrGameNotFound)
}

func TestMoveAndUndo(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	ctx := context.Background()

	v, err := m.Create(ctx)
	require.NoError(t, err)
	before := v.State

	v, moved, err := m.Move(ctx, v.ID, firstMove(t, before))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, v.State.MoveCount)
	assert.True(t, v.CanUndo)

	v, undone, err := m.Undo(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, undone)
	assert.Equal(t, before, v.State)

	_, undone, err = m.Undo(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, undone)
}

func TestNewGameResets(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	ctx := context.Background()

	v, _ := m.Create(ctx)
	v, _, _ = m.Move(ctx, v.ID, firstMove(t, v.State))

	v, err := m.NewGame(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, v.State.MoveCount)
	assert.Equal(t, 0, v.State.Score)
	assert.False(t, v.CanUndo)
}

func TestBestScoreFollowsPlay(t *testing.T) {
	m, best := newTestManager(t, Config{})
	ctx := context.Background()

	v, _ := m.Create(ctx)
	dirs := []t2048.Direction{t2048.DirLeft, t2048.DirUp, t2048.DirRight, t2048.DirDown}
	for i := range 200 {
		v, _, _ = m.Move(ctx, v.ID, dirs[i%len(dirs)])
		if v.State.Over {
			break
		}
	}

	assert.Greater(t, v.State.Score, 0)
	assert.Equal(t, v.State.Score, best.Best())
	assert.Equal(t, best.Best(), m.Best())
	assert.Equal(t, best.Best(), v.Best)
}

func TestMaxSessions(t *testing.T) {
	m, _ := newTestManager(t, Config{MaxSessions: 2})
	ctx := context.Background()

	_, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = m.Create(ctx)
	require.NoError(t, err)

	_, err = m.Create(ctx)
	assert.ErrorIs(t, err, ErrTooManySessions)
}

// playToEnd cycles through the directions until the game is over.
func playToEnd(t *testing.T, m *Manager, v View) View {
	t.Helper()
	ctx := context.Background()
	dirs := []t2048.Direction{t2048.DirLeft, t2048.DirUp, t2048.DirRight, t2048.DirDown}
	for i := 0; !v.State.Over; i++ {
		require.Less(t, i, 1_000_000, "game did not end")
		var err error
		v, _, err = m.Move(ctx, v.ID, dirs[i%len(dirs)])
		require.NoError(t, err)
	}
	return v
}

func TestRecordsOnlyFinishedGames(t *testing.T) {
	var saved []int
	rec := recorderFunc(func(_ context.Context, gameID string, score, _ int) (int64, error) {
		assert.Equal(t, t2048.GameID, gameID)
		saved = append(saved, score)
		return int64(len(saved)), nil
	})
	m, _ := newTestManager(t, Config{Recorder: rec})
	ctx := context.Background()

	untouched, _ := m.Create(ctx)
	require.NoError(t, m.Delete(ctx, untouched.ID))

	abandoned, _ := m.Create(ctx)
	abandoned, _, _ = m.Move(ctx, abandoned.ID, firstMove(t, abandoned.State))
	_, err := m.NewGame(ctx, abandoned.ID)
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, abandoned.ID))
	assert.Empty(t, saved, "unfinished games are not recorded")

	v, _ := m.Create(ctx)
	v = playToEnd(t, m, v)
	require.Len(t, saved, 1)
	assert.Equal(t, v.State.Score, saved[0])

	// Further requests on the finished game do not record it again.
	_, err = m.Get(ctx, v.ID)
	require.NoError(t, err)
	_, _, err = m.Move(ctx, v.ID, t2048.DirLeft)
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, v.ID))
	assert.Len(t, saved, 1)
	assert.Equal(t, 0, m.Len())
}

func TestEvictIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m, _ := newTestManager(t, Config{TTL: 10 * time.Minute, Now: clock.Now})
	ctx := context.Background()

	idle, _ := m.Create(ctx)
	clock.Advance(6 * time.Minute)
	active, _ := m.Create(ctx)

	clock.Advance(6 * time.Minute)
	_, err := m.Get(ctx, active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Evict(ctx))
	_, err = m.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = m.Get(ctx, active.ID)
	assert.NoError(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m, _ := newTestManager(t, Config{TTL: time.Minute, Now: clock.Now})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := m.Create(ctx)
	require.NoError(t, err)
	clock.Advance(time.Hour)

	done := make(chan struct{})
	go func() {
		m.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestConcurrentMovesOnOneSession(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	ctx := context.Background()
	v, _ := m.Create(ctx)

	var wg sync.WaitGroup
	dirs := []t2048.Direction{t2048.DirLeft, t2048.DirUp, t2048.DirRight, t2048.DirDown}
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = m.Move(ctx, v.ID, dirs[i%len(dirs)])
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, v.ID)
	require.NoError(t, err)
	for _, row := range got.State.Board {
		for _, val := range row {
			assert.True(t, val == 0 || val&(val-1) == 0, "tile %d is not a power of two", val)
		}
	}
}
