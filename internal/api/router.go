// Package api serves the board engine over HTTP as JSON.
package api

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/t2048/internal/api/apierr"
	"github.com/vovakirdan/t2048/internal/api/handler"
	"github.com/vovakirdan/t2048/internal/api/middleware"
	"github.com/vovakirdan/t2048/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *log.Logger
	Sessions *session.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	gameHandler := handler.NewGameHandler(cfg.Sessions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(logger))
	api.Use(middleware.Logging(logger))

	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/undo", gameHandler.Undo).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/new", gameHandler.NewGame).Methods(http.MethodPost)

	api.HandleFunc("/best", gameHandler.Best).Methods(http.MethodGet)
	api.HandleFunc("/health", gameHandler.Health).Methods(http.MethodGet)

	return r
}
