package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream message types.
const (
	MessageRect       = "rect"
	MessageDiagnostic = "diagnostic"
	MessageFinished   = "finished"
	MessageError      = "error"
)

// StreamMessage is one websocket frame of /v1/tilings/stream.
type StreamMessage struct {
	Type    string     `json:"type"`
	Rect    *grid.Rect `json:"rect,omitempty"`
	Reason  string     `json:"reason,omitempty"`
	Steps   int        `json:"steps,omitempty"`
	Message string     `json:"message,omitempty"`
}

// handleStream runs a session and sends each rectangle as it is placed,
// pausing delay_ms between steps. The session stops early when the client
// disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	delay, err := streamDelay(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var pending []StreamMessage
	listener := tiling.ListenerFuncs{
		OnDiagnostic: func(d tiling.Diagnostic) {
			pending = append(pending, StreamMessage{Type: MessageDiagnostic, Message: d.String()})
		},
	}
	sess, err := tiling.NewSession(opts.Config(), tiling.WithLogger(s.logger), tiling.WithListener(listener))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readPump(conn, cancel)

	send := func(m StreamMessage) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(m)
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var pace <-chan time.Time
	if delay > 0 {
		t := time.NewTicker(delay)
		defer t.Stop()
		pace = t.C
	}

	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
				continue
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return
		}

		rect, ok := sess.Next()
		for _, m := range pending {
			if err := send(m); err != nil {
				return
			}
		}
		pending = pending[:0]
		if !ok {
			break
		}
		if err := send(StreamMessage{Type: MessageRect, Rect: &rect}); err != nil {
			return
		}
	}

	final := StreamMessage{Type: MessageFinished, Reason: string(sess.Reason()), Steps: sess.Steps()}
	if err := sess.Err(); err != nil {
		final = StreamMessage{Type: MessageError, Reason: string(sess.Reason()), Steps: sess.Steps(), Message: err.Error()}
	}
	if err := send(final); err != nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump drains control frames and cancels the stream when the peer goes
// away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
