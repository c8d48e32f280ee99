// Package response holds the JSON shapes returned by the API.
package response

import (
	"github.com/vovakirdan/t2048/internal/session"
)

// Game represents a game in API responses
type Game struct {
	ID          string  `json:"id"`
	Board       [][]int `json:"board"`
	Score       int     `json:"score"`
	Best        int     `json:"best"`
	MoveCount   int     `json:"move_count"`
	MaxTileSeen int     `json:"max_tile_seen"`
	WinTile     int     `json:"win_tile"`
	Won         bool    `json:"won"`
	Over        bool    `json:"over"`
	CanUndo     bool    `json:"can_undo"`

	Moved  *bool `json:"moved,omitempty"`
	Undone *bool `json:"undone,omitempty"`
}

// GameFromView converts a session.View to a response Game
func GameFromView(v session.View) Game {
	board := make([][]int, len(v.State.Board))
	for y, row := range v.State.Board {
		board[y] = append([]int(nil), row[:]...)
	}
	return Game{
		ID:          v.ID,
		Board:       board,
		Score:       v.State.Score,
		Best:        v.Best,
		MoveCount:   v.State.MoveCount,
		MaxTileSeen: v.State.MaxTileSeen,
		WinTile:     v.WinTile,
		Won:         v.State.Won,
		Over:        v.State.Over,
		CanUndo:     v.CanUndo,
	}
}

// Best is the response for GET /best
type Best struct {
	Best int `json:"best"`
}

// Health is the response for GET /health
type Health struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
