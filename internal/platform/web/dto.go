package web

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/storage"
)

// BoardSummary describes a board in listings.
type BoardSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Balls int    `json:"balls"`
}

// BoardDetail is a board with its cells.
type BoardDetail struct {
	BoardSummary
	Lines    []string          `json:"lines"` // Top row first, '.' for empty
	Metadata map[string]string `json:"metadata,omitempty"`
}

func toSummary(b boards.Board) BoardSummary {
	return BoardSummary{ID: b.ID, Name: b.Name, Rows: b.Rows, Cols: b.Cols, Balls: b.Balls()}
}

func toDetail(b boards.Board) BoardDetail {
	return BoardDetail{BoardSummary: toSummary(b), Lines: b.Lines(), Metadata: b.Metadata}
}

// SimulateBoard is one board in a JSON simulate request.
type SimulateBoard struct {
	ID   string   `json:"id"`
	Rows []string `json:"rows"` // Top row first, '.' for empty
}

// SimulateRequest is the JSON body of POST /simulate.
type SimulateRequest struct {
	Boards []SimulateBoard `json:"boards"`
}

// SimulateResponse carries batch results in input order.
type SimulateResponse struct {
	Variant string           `json:"variant"`
	Results []formats.Result `json:"results"`
}

// BoardRunResponse is the outcome of simulating one stored board.
type BoardRunResponse struct {
	formats.Result
	Variant string   `json:"variant"`
	Final   []string `json:"final"`
	RunID   int64    `json:"run_id,omitempty"`
}

// ScoreDTO is a stored run.
type ScoreDTO struct {
	ID        int64     `json:"id"`
	Variant   string    `json:"variant"`
	Score     int       `json:"score"`
	Moves     int       `json:"moves"`
	Remaining int       `json:"remaining"`
	End       string    `json:"end"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsDTO aggregates the stored runs of a board.
type StatsDTO struct {
	Runs       int       `json:"runs"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	Cleared    int       `json:"cleared"`
	LastPlayed time.Time `json:"last_played"`
}

// ScoresResponse is the body of GET /scores/{id}.
type ScoresResponse struct {
	BoardID string     `json:"board_id"`
	Stats   StatsDTO   `json:"stats"`
	Scores  []ScoreDTO `json:"scores"`
}

func toScores(entries []storage.ScoreEntry) []ScoreDTO {
	out := make([]ScoreDTO, len(entries))
	for i, e := range entries {
		out[i] = ScoreDTO{
			ID:        e.ID,
			Variant:   e.Variant,
			Score:     e.Score,
			Moves:     e.MoveCount,
			Remaining: e.Remaining,
			End:       e.End,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}

func toStats(st *storage.BoardStats) StatsDTO {
	return StatsDTO{
		Runs:       st.RunsCount,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		Cleared:    st.Cleared,
		LastPlayed: st.LastPlayed,
	}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// decode reads a JSON body into T, rejecting unknown fields.
func decode[T any](r io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	err := dec.Decode(&v)
	return v, err
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
