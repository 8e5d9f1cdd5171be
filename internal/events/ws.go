package events

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

const (
	// Time allowed to write a message to the peer
	wsWriteWait = 10 * time.Second

	// A ping is sent after this long without any other write
	wsIdlePingInterval = 30 * time.Second
)

// wsMessage is the envelope for every WebSocket frame
type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and streams the hub's events as
// {"type": ..., "payload": <WireEvent>} frames. Clients may send
// {"type":"ping"} and receive {"type":"pong"}.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient("ws")
	hub.Register(client)

	replies := make(chan wsMessage, 4)
	go func() {
		defer func() { _ = conn.Close() }()
		if err := writeWSWithHeartbeat(conn, client.send, replies); err != nil {
			hub.logger.Debug("websocket write ended", slog.Any("error", err))
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			select {
			case replies <- wsMessage{Type: "pong"}:
			default:
			}
		}
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, events <-chan model.Event, replies <-chan wsMessage) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	write := func(msg wsMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		lastWrite = time.Now()
		return conn.WriteJSON(msg)
	}

	if err := write(wsMessage{Type: "connected"}); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(wsWriteWait))
				return nil
			}
			data, err := Encode(event)
			if err != nil {
				return err
			}
			if err := write(wsMessage{Type: string(event.Type), Payload: data}); err != nil {
				return err
			}
		case reply := <-replies:
			if err := write(reply); err != nil {
				return err
			}
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := write(wsMessage{Type: "ping"}); err != nil {
				return err
			}
		}
	}
}
