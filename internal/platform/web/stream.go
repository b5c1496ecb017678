package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// Stream event types.
const (
	EventStart = "start"
	EventMove  = "move"
	EventEnd   = "end"
)

const writeWait = 5 * time.Second

// StreamEvent is one websocket message of a replay stream.
type StreamEvent struct {
	Type      string     `json:"type"`
	Move      *core.Move `json:"move,omitempty"`
	Lines     []string   `json:"lines"` // Board after the event, top row first
	Score     int        `json:"score"`
	Remaining int        `json:"remaining"`
	End       string     `json:"end,omitempty"`
}

func snapshotEvent(typ string, g *core.Game) StreamEvent {
	snap := g.Snapshot()
	return StreamEvent{
		Type:      typ,
		Move:      snap.LastMove,
		Lines:     formats.CellLines(snap.Cells),
		Score:     snap.Score,
		Remaining: snap.Remaining,
		End:       string(snap.End),
	}
}

// handleStream upgrades to a websocket and replays the board one move at a
// time, ?step_millis= apart (0 sends every move at once).
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w, r)
	if !ok {
		return
	}
	rules, variant, err := s.rules(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	delay := s.cfg.Replay.StepMillis
	if v, err := strconv.Atoi(r.URL.Query().Get("step_millis")); err == nil && v >= 0 {
		delay = v
	}

	game, err := b.NewGame(rules)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, formats.Message(err))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readUntilClosed(conn, cancel)

	s.logger.Info("stream started", "board", b.ID, "variant", variant, "remote", r.RemoteAddr)
	if err := streamGame(ctx, conn, game, time.Duration(delay)*time.Millisecond); err != nil {
		s.logger.Debug("stream ended early", "board", b.ID, "error", err)
		return
	}

	deadline := time.Now().Add(writeWait)
	//nolint:errcheck // Best-effort close handshake
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay finished"), deadline)
}

// readUntilClosed drains client frames so control messages are handled, and
// cancels the stream once the client goes away.
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// streamGame sends the start position, every move and the final state.
func streamGame(ctx context.Context, conn *websocket.Conn, game *core.Game, delay time.Duration) error {
	if err := send(conn, snapshotEvent(EventStart, game)); err != nil {
		return err
	}

	for {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if _, ok := game.Step(); !ok {
			break
		}
		if err := send(conn, snapshotEvent(EventMove, game)); err != nil {
			return err
		}
	}

	ev := snapshotEvent(EventEnd, game)
	ev.Move = nil
	return send(conn, ev)
}

func send(conn *websocket.Conn, ev StreamEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
