package handlers

// AuthContext carries authenticated socket identity information into handler
// functions. It intentionally excludes transport-specific types.
type AuthContext struct {
	userID      string
	displayName string
	socketID    string
}

// NewAuthContext constructs an AuthContext for a single socket event.
func NewAuthContext(userID, displayName, socketID string) AuthContext {
	return AuthContext{
		userID:      userID,
		displayName: displayName,
		socketID:    socketID,
	}
}

// UserID returns the authenticated user id.
func (a AuthContext) UserID() string {
	return a.userID
}

// DisplayName returns the name shown in presence notifications.
func (a AuthContext) DisplayName() string {
	return a.displayName
}

// SocketID returns the caller socket id.
func (a AuthContext) SocketID() string {
	return a.socketID
}
