package web

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/samegame/internal/config"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
	"github.com/vovakirdan/samegame/internal/storage"
)

const (
	defaultParallel = 4
	maxParallel     = 16
	maxDimension    = 64 // Largest accepted ?rows= or ?cols=
	defaultLimit    = 10
	maxLimit        = 100
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "boards": len(s.ids)})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	out := make([]BoardSummary, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, toSummary(s.boards[id]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDetail(b))
}

// board looks up the {id} path parameter, answering 404 when it is unknown.
func (s *Server) board(w http.ResponseWriter, r *http.Request) (boards.Board, bool) {
	id := chi.URLParam(r, "id")
	b, ok := s.boards[id]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("board %q not found", id))
	}
	return b, ok
}

// rules applies the optional ?preset= query to the configured rules.
// The returned variant names the registry entry the rules correspond to.
func (s *Server) rules(r *http.Request) (core.Rules, string, error) {
	cfg := s.cfg
	if err := config.ApplyPreset(&cfg, config.RulesPreset(r.URL.Query().Get("preset"))); err != nil {
		return core.Rules{}, "", err
	}
	rules := cfg.CoreRules()
	if rules.LegacyEdgeScan {
		return rules, "samegame_legacy", nil
	}
	return rules, "samegame", nil
}

func (s *Server) handleSimulateBoard(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w, r)
	if !ok {
		return
	}
	rules, variant, err := s.rules(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := b.NewGame(rules)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, formats.Message(err))
		return
	}
	game.Run()

	resp := BoardRunResponse{
		Result:  formats.NewResult(1, b.ID, game),
		Variant: variant,
		Final:   formats.CellLines(game.Grid().Cells()),
	}

	if r.URL.Query().Get("save") == "true" {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "score storage is disabled")
			return
		}
		id, err := s.store.SaveRun(storage.Run{
			BoardID:   b.ID,
			Variant:   variant,
			Score:     resp.Score,
			Remaining: resp.Remaining,
			End:       resp.End,
			Moves:     resp.Moves,
		})
		if err != nil {
			s.logger.Error("could not save run", "board", b.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "could not save run")
			return
		}
		resp.RunID = id
	}

	s.logger.Debug("board simulated", "board", b.ID, "variant", variant, "score", resp.Score)
	writeJSON(w, http.StatusOK, resp)
}

// handleSimulate runs a batch of boards sent in the body. A text/plain body
// uses the text board format (dimensions from ?rows= and ?cols=); anything
// else is decoded as a SimulateRequest. With Accept: text/plain the text
// report is returned instead of JSON.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	rules, variant, err := s.rules(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var list []formats.Board
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		list, err = s.parseTextBody(r)
	} else {
		list, err = parseJSONBody(r)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, formats.Message(err))
		return
	}

	parallel := min(intQuery(r, "parallel", defaultParallel), maxParallel)
	results, err := boards.Simulate(r.Context(), list, rules, parallel)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, formats.Message(err))
		return
	}
	s.logger.Debug("batch simulated", "boards", len(list), "variant", variant)

	if strings.HasPrefix(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // Client may have gone away
		formats.WriteReport(w, results)
		return
	}
	writeJSON(w, http.StatusOK, SimulateResponse{Variant: variant, Results: results})
}

func (s *Server) parseTextBody(r *http.Request) ([]formats.Board, error) {
	rows := intQuery(r, "rows", s.cfg.Board.Rows)
	cols := intQuery(r, "cols", s.cfg.Board.Cols)
	if rows > maxDimension || cols > maxDimension {
		return nil, fmt.Errorf("board dimensions %dx%d exceed %dx%d", rows, cols, maxDimension, maxDimension)
	}
	return formats.ParseText(r.Body, rows, cols)
}

func parseJSONBody(r *http.Request) ([]formats.Board, error) {
	req, err := decode[SimulateRequest](r.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if len(req.Boards) == 0 {
		return nil, formats.ErrInvalidGameCount
	}

	list := make([]formats.Board, 0, len(req.Boards))
	for i, sb := range req.Boards {
		id := sb.ID
		if id == "" {
			id = fmt.Sprintf("game-%d", i+1)
		}
		if len(sb.Rows) == 0 {
			return nil, fmt.Errorf("board %s has no rows", id)
		}
		b, err := formats.FromRows(id, id, sb.Rows, len(sb.Rows), len([]rune(sb.Rows[0])))
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, nil
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage is disabled")
		return
	}
	id := chi.URLParam(r, "id")
	limit := min(intQuery(r, "limit", defaultLimit), maxLimit)

	entries, err := s.store.TopScores(id, limit)
	if err != nil {
		s.logger.Error("could not load scores", "board", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scores")
		return
	}
	stats, err := s.store.GetBoardStats(id)
	if err != nil {
		s.logger.Error("could not load stats", "board", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scores")
		return
	}

	writeJSON(w, http.StatusOK, ScoresResponse{
		BoardID: id,
		Stats:   toStats(stats),
		Scores:  toScores(entries),
	})
}

func (s *Server) handleRunMoves(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage is disabled")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "run id must be a number")
		return
	}

	moves, err := s.store.RunMoves(id)
	switch {
	case errors.Is(err, storage.ErrRunNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("run %d not found", id))
		return
	case err != nil:
		s.logger.Error("could not load moves", "run", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load moves")
		return
	}
	writeJSON(w, http.StatusOK, moves)
}

// intQuery reads a positive integer query parameter, falling back to def.
func intQuery(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
