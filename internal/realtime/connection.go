package realtime

import (
	"context"
	"errors"
	"net/http"

	"github.com/EnzoPetry/Dice/internal/auth"
	"github.com/EnzoPetry/Dice/internal/logger"
	"github.com/EnzoPetry/Dice/internal/wire"
	socket "github.com/zishang520/socket.io/servers/socket/v3"
)

func (g *Gateway) handleConnection(client *socket.Socket) {
	socketID := string(client.Id())

	logger.Infof("Socket.IO connection attempt (socket ID: %s)", socketID)

	// The browser sends its session cookie with the handshake request;
	// validate it before any other event is processed.
	session, errPayload := g.authenticateConnection(client.Handshake().Headers.Header())
	if errPayload != nil {
		logger.Warnf("Socket.IO connection rejected (socket %s): %s", socketID, errPayload.Message)
		client.Emit(string(wire.EventAuthError), *errPayload)
		client.Disconnect(true)
		return
	}

	state := newSocketState(session.UserID, session.DisplayName(), session.Email, client)
	g.sockets.Store(socketID, state)

	logger.Infof("User connected: %s (%s, socket %s)", session.DisplayName(), session.UserID, socketID)

	client.Emit(string(wire.EventAuthSuccess), wire.AuthSuccessPayload{
		User: wire.AuthUser{
			ID:    session.UserID,
			Name:  session.Name,
			Email: session.Email,
		},
	})

	g.registerClientHandlers(client, socketID)
}

// authenticateConnection resolves handshake headers to a session. On
// rejection it returns the auth_error payload for the client; no session
// means no event handlers are ever registered for the socket.
func (g *Gateway) authenticateConnection(headers http.Header) (*auth.Session, *wire.ErrorPayload) {
	session, err := g.validator.Validate(context.Background(), headers)
	if err != nil {
		return nil, &wire.ErrorPayload{Message: authErrorMessage(err)}
	}
	return session, nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrSessionExpired):
		return "Sessão expirada"
	case errors.Is(err, auth.ErrInvalidSession):
		return "Sessão inválida"
	default:
		return "Erro de autenticação"
	}
}
