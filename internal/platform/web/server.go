// Package web exposes the SameGame engine over HTTP: board listing, batch
// simulation, stored scores and a websocket stream of replayed moves.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/samegame/internal/config"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/storage"
)

// maxBodyBytes bounds request bodies accepted by the simulate endpoints.
const maxBodyBytes = 1 << 20

// Deps holds what the handlers need. Store may be nil, which disables the
// score endpoints and saving.
type Deps struct {
	Config config.Config
	Boards []boards.Board
	Store  *storage.Store
	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	cfg      config.Config
	boards   map[string]boards.Board
	ids      []string
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   chi.Router
}

// NewServer builds the server and its routes.
func NewServer(deps Deps) *Server {
	s := &Server{
		cfg:    deps.Config,
		boards: make(map[string]boards.Board, len(deps.Boards)),
		store:  deps.Store,
		logger: deps.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, b := range deps.Boards {
		s.boards[b.ID] = b
		s.ids = append(s.ids, b.ID)
	}
	sort.Strings(s.ids)

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/simulate", s.handleSimulate)

	r.Route("/boards", func(rr chi.Router) {
		rr.Get("/", s.handleListBoards)
		rr.Get("/{id}", s.handleGetBoard)
		rr.Post("/{id}/simulate", s.handleSimulateBoard)
		rr.Get("/{id}/stream", s.handleStream)
	})

	r.Get("/scores/{id}", s.handleScores)
	r.Get("/runs/{id}/moves", s.handleRunMoves)

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs every request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr, "boards", len(s.ids))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
