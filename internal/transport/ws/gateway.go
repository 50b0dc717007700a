// Package ws bridges websocket connections to the room runtime. The
// Gateway is also the runtime's notification sink: events flow out through
// it, frames flow in through the runtime's queue.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/notify"
	"github.com/pokerhub/holdem-room/internal/room"
)

type Gateway struct {
	runtime  *room.Runtime
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[model.PlayerID]*client
}

var _ notify.Sink = (*Gateway)(nil)

func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[model.PlayerID]*client),
	}
}

// Bind attaches the runtime. The gateway and the runtime reference each
// other, so one side has to be wired after construction.
func (g *Gateway) Bind(rt *room.Runtime) {
	g.runtime = rt
}

// ServeHTTP upgrades the connection. The client supplies its identity via
// the playerId query parameter to reconnect as itself; without one it gets
// a fresh generated identity.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(r.URL.Query().Get("playerId"))
	if id == "" {
		id = model.PlayerID(uuid.NewString())
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := newClient(id, conn, g.logger)
	g.register(c)
	g.logger.Info("websocket connected", slog.String("player_id", string(id)))

	go c.writePump()
	g.readPump(c)
}

// readPump feeds inbound frames to the runtime until the connection dies,
// then tears the client down and reports the disconnect.
func (g *Gateway) readPump(c *client) {
	defer func() {
		if g.unregister(c) {
			g.runtime.PlayerDisconnected(c.id)
		}
		close(c.send)
		g.logger.Info("websocket disconnected", slog.String("player_id", string(c.id)))
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		g.runtime.HandleFrame(c.id, raw)
	}
}

// register stores the client, displacing any previous connection for the
// same identity. The displaced connection is closed; its readPump will not
// report a disconnect because it is no longer the registered one.
func (g *Gateway) register(c *client) {
	g.mu.Lock()
	previous := g.clients[c.id]
	g.clients[c.id] = c
	g.mu.Unlock()

	if previous != nil {
		previous.conn.Close()
	}
}

// unregister removes the client if it is still the registered connection
// for its identity, reporting whether it was.
func (g *Gateway) unregister(c *client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.clients[c.id] != c {
		return false
	}
	delete(g.clients, c.id)
	return true
}

// Broadcast implements notify.Sink.
func (g *Gateway) Broadcast(event any) {
	frame, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to encode event", slog.String("error", err.Error()))
		return
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.clients {
		c.trySend(frame)
	}
}

// SendTo implements notify.Sink. The lookup and the send happen under the
// same read lock: unregister takes the write lock before the send channel
// is closed, so a teardown can never interleave with an in-flight send.
func (g *Gateway) SendTo(id model.PlayerID, event any) {
	frame, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to encode event", slog.String("error", err.Error()))
		return
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if c, ok := g.clients[id]; ok {
		c.trySend(frame)
	}
}
