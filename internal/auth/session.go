// Package auth validates browser session credentials against the shared
// session store. Login, registration and session issuance belong to the web
// application; this package only answers "who is this connection?".
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "better-auth.session_token"

var (
	// ErrInvalidSession covers a missing cookie, a bad signature and an
	// unknown token. Callers treat all three the same way.
	ErrInvalidSession = errors.New("invalid session")
	// ErrSessionExpired is returned when the session exists but is past
	// its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// Session is a validated, time-bounded proof of user identity.
type Session struct {
	UserID    string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// DisplayName returns the user's name, falling back to the email address
// when no name is set.
func (s *Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Validator resolves connection headers to a Session.
type Validator struct {
	db     *sql.DB
	secret []byte
	now    func() time.Time
}

// NewValidator creates a Validator backed by the given database. The secret
// must match the one the web application signs session cookies with.
func NewValidator(db *sql.DB, secret string) *Validator {
	return &Validator{
		db:     db,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// NewValidatorAt is NewValidator with an injectable clock, for tests.
func NewValidatorAt(db *sql.DB, secret string, now func() time.Time) *Validator {
	v := NewValidator(db, secret)
	v.now = now
	return v
}

// Validate extracts the session cookie from the request headers, verifies
// its signature and resolves it to a live session. It returns
// ErrInvalidSession or ErrSessionExpired on rejection; any other error is a
// database failure.
func (v *Validator) Validate(ctx context.Context, headers http.Header) (*Session, error) {
	token, err := v.tokenFromHeaders(headers)
	if err != nil {
		return nil, err
	}

	row := v.db.QueryRowContext(ctx, `
		SELECT s.user_id, u.name, u.email, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
	`, token)

	var (
		session Session
		name    sql.NullString
	)
	if err := row.Scan(&session.UserID, &name, &session.Email, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	session.Name = name.String

	if !session.ExpiresAt.After(v.now()) {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// tokenFromHeaders parses the Cookie header and returns the verified raw
// session token.
func (v *Validator) tokenFromHeaders(headers http.Header) (string, error) {
	req := http.Request{Header: headers}
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrInvalidSession
	}

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ErrInvalidSession
	}

	// Cookie value format: <token>.<base64url signature>.
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", ErrInvalidSession
	}

	want := signToken(v.secret, token)
	if subtle.ConstantTimeCompare([]byte(sig), []byte(want)) != 1 {
		return "", ErrInvalidSession
	}

	return token, nil
}

// SignSessionToken returns the signed cookie value for a raw session token.
// The web application does this at login; it is exported for test fixtures.
func SignSessionToken(secret, token string) string {
	return token + "." + signToken([]byte(secret), token)
}

func signToken(secret []byte, token string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
