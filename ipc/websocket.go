package ipc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

type wsTransport struct {
	conn *websocket.Conn
}

// NewWebSocketTransport carries one envelope per websocket text message.
func NewWebSocketTransport(conn *websocket.Conn) Transport {
	return &wsTransport{conn: conn}
}

func (t *wsTransport) Read() (Envelope, error) {
	_, msg, err := t.conn.ReadMessage()
	if err != nil {
		return Envelope{}, fmt.Errorf("read message: %w", err)
	}
	if len(msg) > maxFrame {
		return Envelope{}, fmt.Errorf("invalid message length: %d", len(msg))
	}
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

func (t *wsTransport) Write(env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	_ = t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := t.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (t *wsTransport) Close() error { return t.conn.Close() }

// WebSocketServer upgrades HTTP requests and runs a Connection per client.
type WebSocketServer struct {
	upgrader  websocket.Upgrader
	onConnect func(*Connection)
}

// NewWebSocketServer calls onConnect to register handlers on each new
// connection before its read loop starts.
func NewWebSocketServer(onConnect func(*Connection)) *WebSocketServer {
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		onConnect: onConnect,
	}
}

func (s *WebSocketServer) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("websocket connection accepted", "remote", r.RemoteAddr)
		c := NewConnection(NewWebSocketTransport(conn), nil)
		s.onConnect(c)
		c.ReadLoop()
	}
}
