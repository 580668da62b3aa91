// Package handlers contains the HTTP surface of the chat core: group
// message history and message creation. Account and group CRUD belong to
// the web application and are not served here.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/EnzoPetry/Dice/internal/api/middleware"
	"github.com/EnzoPetry/Dice/internal/logger"
	"github.com/EnzoPetry/Dice/internal/realtime"
	"github.com/EnzoPetry/Dice/internal/store"
	"github.com/EnzoPetry/Dice/internal/wire"
	"github.com/gin-gonic/gin"
)

// GroupNotifier pushes store-confirmed messages to a group's live room.
// *realtime.Gateway implements it.
type GroupNotifier interface {
	EmitToGroup(groupID int64, event wire.OutboundEvent, payload any)
}

var _ GroupNotifier = (*realtime.Gateway)(nil)

// MessageHandler serves group message history and creation.
type MessageHandler struct {
	store   *store.Store
	gateway GroupNotifier
}

// NewMessageHandler creates the handler. The gateway is used to push
// store-confirmed messages to the group's live room.
func NewMessageHandler(messages *store.Store, gateway GroupNotifier) *MessageHandler {
	return &MessageHandler{
		store:   messages,
		gateway: gateway,
	}
}

// MessageResponse is a chat message in API responses.
type MessageResponse struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName"`
	SendAt     time.Time `json:"sendAt"`
}

func toMessageResponse(msg store.StoredMessage) MessageResponse {
	return MessageResponse{
		ID:         msg.ID,
		Message:    msg.Content,
		Type:       msg.SenderRole,
		Sender:     msg.UserID,
		SenderName: msg.SenderName,
		SendAt:     msg.SendAt,
	}
}

// CreateMessageRequest is the body of POST /api/groups/:groupId/messages.
type CreateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListGroupMessages handles GET /api/groups/:groupId/messages
func (h *MessageHandler) ListGroupMessages(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}

	messages, err := h.store.ListGroupMessages(c.Request.Context(), groupID, 0)
	if err != nil {
		logger.Errorf("Failed to list messages for group %d: %v", groupID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, toMessageResponse(msg))
	}

	c.JSON(http.StatusOK, responses)
}

// CreateGroupMessage handles POST /api/groups/:groupId/messages. On success
// the stored message is broadcast to the group's live room, sender included.
func (h *MessageHandler) CreateGroupMessage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	msg, err := h.store.Append(c.Request.Context(), userID, groupID, req.Content)
	if err != nil {
		status, message := appendErrorResponse(err)
		if status == http.StatusInternalServerError {
			logger.Errorf("Failed to store message for group %d: %v", groupID, err)
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	h.gateway.EmitToGroup(groupID, wire.EventChatMessage, msg)

	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func appendErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrEmptyContent):
		return http.StatusBadRequest, "Message content is required"
	case errors.Is(err, store.ErrGroupNotFound):
		return http.StatusNotFound, "Group not found"
	case errors.Is(err, store.ErrNotAMember):
		return http.StatusForbidden, "Forbidden - Not a member of this group"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func groupIDParam(c *gin.Context) (int64, bool) {
	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil || groupID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group id"})
		return 0, false
	}
	return groupID, true
}
