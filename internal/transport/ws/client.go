package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pokerhub/holdem-room/internal/model"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

// client is the write side of one websocket connection. Frames are queued
// on a buffered channel and drained by writePump; a full queue drops
// frames rather than block the sender.
type client struct {
	id     model.PlayerID
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger
}

func newClient(id model.PlayerID, conn *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: logger,
	}
}

// writePump drains the send queue until it is closed or a write fails.
func (c *client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			c.logger.Debug("websocket write failed",
				slog.String("player_id", string(c.id)),
				slog.String("error", err.Error()))
			return
		}
	}
}

// trySend queues a frame, dropping it if the client is too far behind. The
// next state broadcast supersedes anything dropped.
func (c *client) trySend(frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}
