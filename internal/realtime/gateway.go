// Package realtime is the Socket.IO gateway for group chat: it
// authenticates connections, tracks room membership, fans out chat
// messages and presence notifications, and reconciles live delivery with
// persisted history through the message store.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/EnzoPetry/Dice/internal/auth"
	"github.com/EnzoPetry/Dice/internal/config"
	"github.com/EnzoPetry/Dice/internal/logger"
	"github.com/EnzoPetry/Dice/internal/realtime/handlers"
	"github.com/EnzoPetry/Dice/internal/wire"
	"github.com/gin-gonic/gin"
	socket "github.com/zishang520/socket.io/servers/socket/v3"
	sockettypes "github.com/zishang520/socket.io/v3/pkg/types"
)

// SessionValidator resolves connection headers to a validated session.
type SessionValidator interface {
	Validate(ctx context.Context, headers http.Header) (*auth.Session, error)
}

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	// Origin is the allowed CORS origin for the Socket.IO handshake.
	Origin string
	// RoomPolicy controls whether joining a group evicts previous rooms.
	RoomPolicy config.RoomPolicy
	// Rooms overrides the room registry; defaults to the in-memory one.
	Rooms RoomRegistry
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Gateway wraps the Socket.IO server for the chat subsystem.
type Gateway struct {
	server    *socket.Server
	validator SessionValidator
	rooms     RoomRegistry
	ingest    *IngestManager
	deps      handlers.Deps
	policy    config.RoomPolicy
	sockets   sync.Map // socket ID -> *socketState
}

// socketIOPingInterval defines how frequently the server pings clients to
// detect stale/disconnected sockets. This bounds how long a room keeps a
// vanished member before its user_left goes out.
const socketIOPingInterval = 5 * time.Second

// socketIOPingTimeout defines how long the server waits before considering
// a socket dead (no pong received).
const socketIOPingTimeout = 15 * time.Second

// NewGateway creates the Socket.IO gateway. The validator authenticates new
// connections and the appender persists chat messages.
func NewGateway(validator SessionValidator, appender MessageAppender, cfg GatewayConfig) *Gateway {
	opts := socket.DefaultServerOptions()

	origin := cfg.Origin
	if origin == "" {
		origin = "http://localhost:3000"
	}
	opts.SetCors(&sockettypes.Cors{
		Origin:      origin,
		Credentials: true,
	})
	opts.SetPingTimeout(socketIOPingTimeout)
	opts.SetPingInterval(socketIOPingInterval)
	opts.SetPath("/socket.io")

	policy := cfg.RoomPolicy
	if policy == "" {
		policy = config.RoomPolicyExclusive
	}
	rooms := cfg.Rooms
	if rooms == nil {
		rooms = NewMemoryRegistry()
	}

	g := &Gateway{
		server:    socket.NewServer(nil, opts),
		validator: validator,
		rooms:     rooms,
		deps:      handlers.NewDeps(cfg.Now),
		policy:    policy,
	}
	g.ingest = NewIngestManager(appender, g)

	g.server.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		g.handleConnection(client)
	})

	return g
}

// Rooms exposes the room registry, mainly for tests and diagnostics.
func (g *Gateway) Rooms() RoomRegistry {
	return g.rooms
}

// EmitToGroup broadcasts an event to every socket currently in a group's
// room. HTTP handlers use this to push store-confirmed messages.
func (g *Gateway) EmitToGroup(groupID int64, event wire.OutboundEvent, payload any) {
	g.rooms.Broadcast(groupID, event, payload, "")
}

// BroadcastToGroup implements IngestEmitter.
func (g *Gateway) BroadcastToGroup(groupID int64, event wire.OutboundEvent, payload any) {
	g.rooms.Broadcast(groupID, event, payload, "")
}

// EmitToSocket implements IngestEmitter.
func (g *Gateway) EmitToSocket(socketID string, event wire.OutboundEvent, payload any) {
	state := g.getState(socketID)
	if state == nil {
		return // Sender already disconnected.
	}
	state.Emit(event, payload)
}

// HandleSocketIO creates a Gin handler for the Socket.IO endpoint.
func (g *Gateway) HandleSocketIO() gin.HandlerFunc {
	httpHandler := g.server.ServeHandler(nil)

	return func(c *gin.Context) {
		logger.Tracef("Socket.IO request: %s %s", c.Request.Method, c.Request.URL.Path)
		httpHandler.ServeHTTP(c.Writer, c.Request)
	}
}

// Close shuts down the Socket.IO server.
func (g *Gateway) Close() error {
	g.server.Close(nil)
	return nil
}

func (g *Gateway) getState(socketID string) *socketState {
	if data, ok := g.sockets.Load(socketID); ok {
		if state, ok := data.(*socketState); ok {
			return state
		}
	}
	return nil
}
