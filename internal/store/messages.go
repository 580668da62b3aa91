// Package store persists group chat messages. It is the sole writer of the
// messages table and the authority on membership authorization and
// server-assigned ordering timestamps.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyContent is returned for empty or whitespace-only content.
	ErrEmptyContent = errors.New("message content is required")
	// ErrGroupNotFound is returned when the target group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotAMember is returned when the sender is not a member of the
	// target group.
	ErrNotAMember = errors.New("not a member of this group")
)

// DefaultRole is assigned when a member has no explicit group role.
const DefaultRole = "common"

// StoredMessage is the canonical record of a persisted chat message.
type StoredMessage struct {
	ID         string    `json:"id"`
	GroupID    int64     `json:"groupId"`
	UserID     string    `json:"userId"`
	Content    string    `json:"content"`
	SenderName string    `json:"senderName"`
	SenderRole string    `json:"senderRole"`
	SendAt     time.Time `json:"sendAt"`
}

// Store reads and writes chat messages.
type Store struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// New creates a message store.
func New(db *sql.DB) *Store {
	return &Store{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewWithClock is New with injectable clock and id generator, for tests.
func NewWithClock(db *sql.DB, now func() time.Time, newID func() string) *Store {
	return &Store{db: db, now: now, newID: newID}
}

// Append durably stores a message for a (user, group) pair and returns the
// canonical record. Content is trimmed before storage. It returns
// ErrEmptyContent, ErrGroupNotFound or ErrNotAMember on rejection.
func (s *Store) Append(ctx context.Context, userID string, groupID int64, content string) (StoredMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return StoredMessage{}, ErrEmptyContent
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups WHERE id = ?", groupID).Scan(&exists)
	if err != nil {
		return StoredMessage{}, fmt.Errorf("failed to look up group: %w", err)
	}
	if exists == 0 {
		return StoredMessage{}, ErrGroupNotFound
	}

	var (
		role  sql.NullString
		name  sql.NullString
		email string
	)
	err = s.db.QueryRowContext(ctx, `
		SELECT ug.role, u.name, u.email
		FROM user_groups ug
		JOIN users u ON u.id = ug.user_id
		WHERE ug.user_id = ? AND ug.group_id = ?
	`, userID, groupID).Scan(&role, &name, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredMessage{}, ErrNotAMember
	}
	if err != nil {
		return StoredMessage{}, fmt.Errorf("failed to check membership: %w", err)
	}

	msg := StoredMessage{
		ID:         s.newID(),
		GroupID:    groupID,
		UserID:     userID,
		Content:    content,
		SenderName: name.String,
		SenderRole: role.String,
		SendAt:     s.now().UTC(),
	}
	if msg.SenderRole == "" {
		msg.SenderRole = DefaultRole
	}
	if msg.SenderName == "" {
		msg.SenderName = email
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, group_id, user_id, content, send_at)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.GroupID, msg.UserID, msg.Content, msg.SendAt)
	if err != nil {
		return StoredMessage{}, fmt.Errorf("failed to store message: %w", err)
	}

	return msg, nil
}

// ListGroupMessages returns the most recent messages of a group ordered by
// time ascending. A limit of zero or less applies the default of 1000.
func (s *Store) ListGroupMessages(ctx context.Context, groupID int64, limit int) ([]StoredMessage, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.group_id, m.user_id, m.content, u.name, u.email, COALESCE(ug.role, ?), m.send_at
		FROM messages m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN user_groups ug ON ug.user_id = m.user_id AND ug.group_id = m.group_id
		WHERE m.group_id = ?
		ORDER BY m.send_at DESC, m.id DESC
		LIMIT ?
	`, DefaultRole, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []StoredMessage
	for rows.Next() {
		var (
			msg   StoredMessage
			name  sql.NullString
			email string
		)
		if err := rows.Scan(&msg.ID, &msg.GroupID, &msg.UserID, &msg.Content, &name, &email, &msg.SenderRole, &msg.SendAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.SenderName = name.String
		if msg.SenderName == "" {
			msg.SenderName = email
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	// Rows come newest-first so the LIMIT keeps the tail; present oldest-first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
